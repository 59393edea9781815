// Package markdown implements a grammar-driven Markdown parser paired
// with a two-phase, pluggable transformation engine.
//
// Parse builds an immutable document tree from raw Markdown text and
// resolves reference-style links against the definitions collected
// anywhere in the document. A Transformer is then driven over the tree
// twice: a read-only peek pass over every node, followed by a transform
// pass that rewrites the document to text. The peek pass always
// completes in full before the first transform call, so a transformer
// can compute document-wide aggregates (say, "image 2 of 7") before
// rendering any single element.
package markdown

// Position of a construct in the source text. Offset is a byte offset,
// Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if markdown.Is[*markdown.Bold](elt) {
//	    ...
//
//	if markdown.Is[markdown.Inline](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(*P)
	return ok
}

// Returns a shallow copy of an element. Intended for use in Filter.
func Clone[P Element](elt P) P {
	return elt.clone().(P)
}

// AST element interface
type Element interface {
	element()
	clone() Element
}

type inlinesContainer interface {
	inlines() []Inline
}

type blocksContainer interface {
	blocks() []Block
}

// AST object tag
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// AST object with tag
type Tagged interface {
	Tag() Tag
}

// Inline element: a unit inside a line of rich text.
type Inline interface {
	Element
	Tagged
	inline()
}

// Block element: a top-level structural unit of a document.
type Block interface {
	Element
	Tagged
	block()
}

// RichText is an ordered sequence of inline nodes. Plain text runs are
// themselves an inline variant.
type RichText = []Inline

// A key/value pair of an image tag list. Tag order is preserved and
// duplicate keys are retained in encounter order.
type KV struct {
	Key   string
	Value string
}

// A reference-style link definition ("[label]: url"). Definitions are
// collected document-wide and are not part of the visible block tree.
type RefDef struct {
	Label string
	Url   string
	Pos   Pos
}

// A parsed document: the root of the tree. It owns all nodes and is
// immutable once Parse returns.
type Document struct {
	Blocks []Block
	Refs   []RefDef
}

func (d *Document) element() {}
func (d *Document) clone() Element {
	c := *d
	return &c
}
func (d *Document) blocks() []Block { return d.Blocks }

// Ref returns the url a label resolves to. When a label is defined more
// than once the first definition wins.
func (d *Document) Ref(label string) (string, bool) {
	for _, r := range d.Refs {
		if r.Label == label {
			return r.Url, true
		}
	}
	return "", false
}

// Links returns all hyperlink nodes in document order.
func (d *Document) Links() []*Link {
	var links []*Link
	Query(d, func(l *Link) WalkResult {
		links = append(links, l)
		return WalkContinue
	})
	return links
}

// Images returns all image nodes in document order.
func (d *Document) Images() []*Image {
	var images []*Image
	Query(d, func(i *Image) WalkResult {
		images = append(images, i)
		return WalkContinue
	})
	return images
}

// ----------- inlines -------------

// Plain text run (string)
type Text struct {
	Text string
}

const TextTag = Tag("Text")

func (t *Text) Tag() Tag { return TextTag }
func (t *Text) clone() Element {
	c := *t
	return &c
}
func (t *Text) inline()  {}
func (t *Text) element() {}

// A punctuation character that failed to start any inline construct
// and is emitted as itself.
type Literal struct {
	Char rune
}

const LiteralTag = Tag("Literal")

func (l *Literal) Tag() Tag { return LiteralTag }
func (l *Literal) clone() Element {
	c := *l
	return &c
}
func (l *Literal) inline()  {}
func (l *Literal) element() {}

// Bold text (list of inlines). Its content never directly contains
// another Bold node; bold inside italic inside bold remains legal.
type Bold struct {
	Inlines RichText
}

const BoldTag = Tag("Bold")

func (b *Bold) Tag() Tag          { return BoldTag }
func (b *Bold) inlines() []Inline { return b.Inlines }
func (b *Bold) clone() Element {
	c := *b
	return &c
}
func (b *Bold) inline()  {}
func (b *Bold) element() {}

// Italic text (list of inlines). Same nesting rule as Bold, with the
// roles swapped.
type Italic struct {
	Inlines RichText
}

const ItalicTag = Tag("Italic")

func (i *Italic) Tag() Tag          { return ItalicTag }
func (i *Italic) inlines() []Inline { return i.Inlines }
func (i *Italic) clone() Element {
	c := *i
	return &c
}
func (i *Italic) inline()  {}
func (i *Italic) element() {}

// Inline code span (literal, never re-parsed for inline constructs)
type InlineCode struct {
	Text string
}

const InlineCodeTag = Tag("InlineCode")

func (c *InlineCode) Tag() Tag { return InlineCodeTag }
func (c *InlineCode) clone() Element {
	c1 := *c
	return &c1
}
func (c *InlineCode) inline()  {}
func (c *InlineCode) element() {}

// Hyperlink: text (list of inlines) and target url
type Link struct {
	Inlines RichText
	Url     string
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag          { return LinkTag }
func (l *Link) inlines() []Inline { return l.Inlines }
func (l *Link) clone() Element {
	c := *l
	return &c
}
func (l *Link) inline()  {}
func (l *Link) element() {}

// Reference-style link: text plus a label resolved against the
// document's reference definitions. Url is filled in by the assembly
// pass; an unresolvable label fails the parse.
type RefLink struct {
	Inlines RichText
	Label   string
	Url     string
	Pos     Pos
}

const RefLinkTag = Tag("RefLink")

func (l *RefLink) Tag() Tag          { return RefLinkTag }
func (l *RefLink) inlines() []Inline { return l.Inlines }
func (l *RefLink) clone() Element {
	c := *l
	return &c
}
func (l *RefLink) inline()  {}
func (l *RefLink) element() {}

// Image: alt text, target url, and an optional ordered tag list
type Image struct {
	Alt  RichText
	Url  string
	Tags []KV
}

const ImageTag = Tag("Image")

func (i *Image) Tag() Tag          { return ImageTag }
func (i *Image) inlines() []Inline { return i.Alt }
func (i *Image) clone() Element {
	c := *i
	return &c
}
func (i *Image) inline()  {}
func (i *Image) element() {}

var LB = &LineBreak{}

// Hard line break, produced by a two-trailing-space marker
type LineBreak struct{}

const LineBreakTag = Tag("LineBreak")

func (*LineBreak) Tag() Tag       { return LineBreakTag }
func (*LineBreak) clone() Element { return LB }
func (*LineBreak) inline()        {}
func (*LineBreak) element()       {}

// ----------- blocks -------------

// Header - level (1..6) and content (inlines)
type Header struct {
	Level   int
	Inlines RichText
}

const HeaderTag = Tag("Header")

func (h *Header) Tag() Tag          { return HeaderTag }
func (h *Header) inlines() []Inline { return h.Inlines }
func (h *Header) clone() Element {
	c := *h
	return &c
}
func (h *Header) block()   {}
func (h *Header) element() {}

// Bullet list (list of items, each a rich text; continuation lines are
// folded into the item they follow)
type List struct {
	Items []RichText
}

const ListTag = Tag("List")

func (l *List) Tag() Tag { return ListTag }
func (l *List) clone() Element {
	c := *l
	return &c
}
func (l *List) block()   {}
func (l *List) element() {}

// Block quote (list of lines)
type Quote struct {
	Lines []RichText
}

const QuoteTag = Tag("Quote")

func (q *Quote) Tag() Tag { return QuoteTag }
func (q *Quote) clone() Element {
	c := *q
	return &c
}
func (q *Quote) block()   {}
func (q *Quote) element() {}

// Fenced code block (literal). Text is preserved verbatim, including
// internal blank lines, and is never re-parsed for inline constructs.
// An empty Lang means no language slug; the fence grammar cannot
// produce a present-but-empty one.
type CodeBlock struct {
	Lang string
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) clone() Element {
	c := *b
	return &c
}
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

// HTML-style comment. Internal whitespace and newlines are collapsed
// to single spaces around the content.
type Comment struct {
	Inlines RichText
}

const CommentTag = Tag("Comment")

func (c *Comment) Tag() Tag          { return CommentTag }
func (c *Comment) inlines() []Inline { return c.Inlines }
func (c *Comment) clone() Element {
	c1 := *c
	return &c1
}
func (c *Comment) block()   {}
func (c *Comment) element() {}

var HR = &HorizontalRule{}

// Horizontal rule
type HorizontalRule struct{}

const HorizontalRuleTag = Tag("HorizontalRule")

func (*HorizontalRule) Tag() Tag       { return HorizontalRuleTag }
func (*HorizontalRule) clone() Element { return HR }
func (*HorizontalRule) block()         {}
func (*HorizontalRule) element()       {}

// Paragraph (list of lines). A line ending in a hard break carries a
// trailing LineBreak inline.
type Paragraph struct {
	Lines []RichText
}

const ParagraphTag = Tag("Paragraph")

func (p *Paragraph) Tag() Tag { return ParagraphTag }
func (p *Paragraph) clone() Element {
	c := *p
	return &c
}
func (p *Paragraph) block()   {}
func (p *Paragraph) element() {}
