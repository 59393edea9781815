package markdown

// Parse parses a whole markdown document. Reference definitions may
// appear anywhere in the source; after the block scan every reference
// link is rewritten with the url of its definition, first definition
// wins. A label with no definition aborts the parse with
// UnresolvedReferenceError.
func Parse(src string) (*Document, error) {
	blocks, refs, err := parseBlocks(src)
	if err != nil {
		return nil, err
	}
	doc := &Document{Blocks: blocks, Refs: refs}
	if err := resolveRefs(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// resolveRefs fills in RefLink.Url by label lookup. The tree is still
// exclusively owned by the parse at this point, so the links are
// patched in place.
func resolveRefs(doc *Document) error {
	var unresolved error
	Query(doc, func(rl *RefLink) WalkResult {
		url, ok := doc.Ref(rl.Label)
		if !ok {
			unresolved = &UnresolvedReferenceError{Label: rl.Label, Pos: rl.Pos}
			return WalkStop
		}
		rl.Url = url
		return WalkContinue
	})
	return unresolved
}
