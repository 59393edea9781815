package markdown

// WalkResult is the result of a walk operation.
type WalkResult int

// WalkContinue indicates that the walk operation should continue.
const WalkContinue = 0

// WalkReplace indicates that the current element should be replaced with the
// elements returned by the function.
const WalkReplace = 1

// WalkSkip indicates that the current element should be skipped and
// no children should be processed.
const WalkSkip = 2

// WalkStop indicates that the walk operation should stop immediately.
const WalkStop = 3

// Filter applies the specified function 'fun' to each child element of the
// provided element 'elt'. The function 'fun' is not applied to 'elt' itself,
// even if 'elt's type matches the parameter type of 'fun'.
//
// The parameter type P should be the same as or implement the return type R.
// This relationship is not enforced by the type system. If this condition is
// not met, the filter operation will still execute, but the intended
// modifications may not be applied.
//
// The behavior of the filter depends on the WalkResult returned by 'fun':
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips processing of the current element.
//   - WalkReplace: Replaces the current element with the elements returned by 'fun'.
//   - WalkContinue: Continues without replacing the current element.
//
// To remove an element, 'fun' should return an empty slice of elements along
// with WalkReplace.
//
// The function returns an updated version of 'elt' after applying 'fun'.
// Untouched subtrees are shared with the input, touched lists are copied
// before modification.
//
// Example:
//
//	doc = markdown.Filter(doc, func(t *markdown.Text) ([]markdown.Inline, markdown.WalkResult) {
//	    return []markdown.Inline{&markdown.Bold{
//	            Inlines: markdown.RichText{&markdown.Text{Text: t.Text}},
//	        }}, markdown.WalkReplace
//	})
func Filter[P any, E Element, R Element](elt E, fun func(P) ([]R, WalkResult)) E {
	elt, _, _ = walkChildren(elt, fun)
	return elt
}

type queryResult struct{}

func (queryResult) element()       {}
func (queryResult) clone() Element { return queryResult{} }

// Query applies the specified function 'fun' to each child element of the
// provided element 'elt'. The function 'fun' is not applied to 'elt' itself,
// regardless of whether 'elt's type matches the parameter type of 'fun'.
//
// Unlike Filter, Query does not modify 'elt' or its children. It strictly
// performs read-only operations as defined in 'fun', which makes it the tool
// for searching, counting and validation.
//
// The function 'fun' returns a WalkResult to control the traversal process:
//
//   - WalkStop: Terminates the traversal process immediately.
//   - WalkSkip: Skips processing of the current element's children.
//   - WalkContinue: Continues to the next element without any special action.
//
// Example:
//
//	var images int
//	markdown.Query(doc, func(img *markdown.Image) markdown.WalkResult {
//	    images++
//	    return markdown.WalkSkip
//	})
func Query[P any, E Element](elt E, fun func(P) WalkResult) {
	walkChildren(elt, func(e P) ([]queryResult, WalkResult) {
		return nil, fun(e)
	})
}

func walkChildren[P any, E Element, R Element](e E, fun func(P) ([]R, WalkResult)) (E, bool, WalkResult) {
	switch e := any(e).(type) {
	case *Document:
		blocks, updated, result := walkList(e.Blocks, fun)
		if updated {
			e = &Document{Blocks: blocks, Refs: e.Refs}
		}
		return any(e).(E), updated, result

	// Inlines
	case *Bold:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Bold{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Italic:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Italic{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Link:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Link{Inlines: lst, Url: e.Url}
		}
		return any(e).(E), updated, result
	case *RefLink:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &RefLink{Inlines: lst, Label: e.Label, Url: e.Url, Pos: e.Pos}
		}
		return any(e).(E), updated, result
	case *Image:
		lst, updated, result := walkList(e.Alt, fun)
		if updated {
			e = &Image{Alt: lst, Url: e.Url, Tags: e.Tags}
		}
		return any(e).(E), updated, result

	// following have no children
	//
	case *Text:
	case *Literal:
	case *InlineCode:
	case *LineBreak:

	// Blocks
	case *Header:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Header{Level: e.Level, Inlines: lst}
		}
		return any(e).(E), updated, result
	case *Comment:
		lst, updated, result := walkList(e.Inlines, fun)
		if updated {
			e = &Comment{Inlines: lst}
		}
		return any(e).(E), updated, result
	case *List:
		items, updated, result := walkListOfLists(e.Items, fun)
		if updated {
			e = &List{Items: items}
		}
		return any(e).(E), updated, result
	case *Quote:
		lines, updated, result := walkListOfLists(e.Lines, fun)
		if updated {
			e = &Quote{Lines: lines}
		}
		return any(e).(E), updated, result
	case *Paragraph:
		lines, updated, result := walkListOfLists(e.Lines, fun)
		if updated {
			e = &Paragraph{Lines: lines}
		}
		return any(e).(E), updated, result

	// following have no children
	case *CodeBlock:
	case *HorizontalRule:
	}
	return e, false, WalkContinue
}

func walkListOfLists[P any, S Element, R Element](source [][]S, fun func(P) ([]R, WalkResult)) ([][]S, bool, WalkResult) {
	var updated bool
	for i := range source {
		newList, listUpdated, result := walkList(source[i], fun)
		if listUpdated {
			if !updated {
				updated = true
				source = append([][]S(nil), source...)
			}
			source[i] = newList
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
	}
	return source, updated, WalkContinue
}

func walkList[P any, S Element, R Element](source []S, fun func(P) ([]R, WalkResult)) ([]S, bool, WalkResult) {
	var (
		replace                   []R
		result                    WalkResult
		updated                   = false
		update                    bool
		sameInOut, coercibleInOut bool
	)
	if _, ok := any(source).(P); ok { // special case, func handles lists and works down-top
		for i := range source {
			var item S
			item, update, result = walkChildren(source[i], fun)
			if update {
				if !updated {
					updated = true
					source = append([]S(nil), source...)
				}
				source[i] = item
			}
			if result == WalkStop {
				return source, updated, WalkStop
			}
		}
		list := any(source).(P)
		replace, result = fun(list)
		switch result {
		case WalkReplace:
			return any(replace).([]S), true, WalkContinue
		case WalkStop:
			return source, updated, WalkStop
		}
		return source, updated, WalkContinue
	}
	_, sameInOut = any(replace).([]S)
	if !sameInOut {
		var item R
		_, coercibleInOut = any(item).(S)
		if !coercibleInOut {
			_, coercibleInOut = any(replace).([]Element)
		}
	}
	for i := 0; i < len(source); {
		if v, ok := any(source[i]).(P); ok {
			replace, result = fun(v)
			switch result {
			case WalkStop:
				return source, updated, WalkStop
			case WalkSkip:
				i++
				continue
			case WalkReplace:
				if sameInOut || coercibleInOut {
					if !updated {
						updated = true
						source = append([]S(nil), source...)
					}
					if len(replace) == 0 {
						source = append(source[:i], source[i+1:]...)
						continue
					} else if len(replace) == 1 {
						source[i] = any(replace[0]).(S)
					} else if sameInOut {
						source = append(source[:i], append(any(replace).([]S), source[i+1:]...)...)
					} else {
						source = append(source[:i], append(make([]S, len(replace)), source[i+1:]...)...)
						for j := range replace {
							source[i+j] = any(replace[j]).(S)
						}
					}
					i += len(replace)
				} else {
					i++
				}
				continue
			case WalkContinue:
			}
		}
		var item S
		item, update, result = walkChildren(source[i], fun)
		if update {
			if !updated {
				updated = true
				source = append([]S(nil), source...)
			}
			source[i] = item
		}
		if result == WalkStop {
			return source, updated, WalkStop
		}
		i++
	}
	return source, updated, WalkContinue
}
