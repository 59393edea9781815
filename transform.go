package markdown

import (
	"fmt"
	"io"
)

// Transformer is the visitor contract of the engine. For every node
// kind there is a Peek method, called during the first read-only pass,
// and a Transform method, called during the second pass to produce the
// node's output text. Both receive the node's fields already decoded
// to strings. Peek methods see the canonical markdown of nested
// content; Transform methods see the output of the already-transformed
// children, so a Bold transform receives its inner italic or link
// content rendered by the host itself.
//
// Hosts embed BaseTransformer and override only the methods they care
// about. The whole peek pass completes before the first Transform call
// runs, so totals accumulated while peeking are available to every
// Transform call.
type Transformer interface {
	PeekText(text string)
	PeekHeader(level int, text string)
	PeekBold(text string)
	PeekItalic(text string)
	PeekInlineCode(code string)
	PeekLineBreak()
	PeekLink(text, url string)
	PeekRefLink(text, label, url string)
	PeekRefDef(label, url string)
	PeekImage(alt, url string, tags []KV)
	PeekList(items []string)
	PeekQuote(lines []string)
	PeekCodeBlock(lang, body string)
	PeekComment(text string)
	PeekHorizontalRule()
	PeekParagraph(lines []string)

	TransformText(text string) string
	TransformHeader(level int, text string) string
	TransformBold(text string) string
	TransformItalic(text string) string
	TransformInlineCode(code string) string
	TransformLineBreak() string
	TransformLink(text, url string) string
	TransformRefLink(text, label, url string) string
	TransformRefDef(label, url string) string
	TransformImage(alt, url string, tags []KV) string
	TransformList(items []string) string
	TransformQuote(lines []string) string
	TransformCodeBlock(lang, body string) string
	TransformComment(text string) string
	TransformHorizontalRule() string
	TransformParagraph(lines []string) string
}

// Fallible is an optional extension of Transformer. A host whose Err
// method returns non-nil after a pass aborts the transformation with a
// TransformerError wrapping that error.
type Fallible interface {
	Err() error
}

// BaseTransformer implements Transformer with identity behavior: peek
// methods do nothing, transform methods re-serialize the node as
// canonical markdown. Transforming a document with it reproduces the
// document's canonical text.
type BaseTransformer struct{}

func (BaseTransformer) PeekText(string)               {}
func (BaseTransformer) PeekHeader(int, string)        {}
func (BaseTransformer) PeekBold(string)               {}
func (BaseTransformer) PeekItalic(string)             {}
func (BaseTransformer) PeekInlineCode(string)         {}
func (BaseTransformer) PeekLineBreak()                {}
func (BaseTransformer) PeekLink(string, string)       {}
func (BaseTransformer) PeekRefLink(_, _, _ string)    {}
func (BaseTransformer) PeekRefDef(_, _ string)        {}
func (BaseTransformer) PeekImage(_, _ string, _ []KV) {}
func (BaseTransformer) PeekList([]string)             {}
func (BaseTransformer) PeekQuote([]string)            {}
func (BaseTransformer) PeekCodeBlock(_, _ string)     {}
func (BaseTransformer) PeekComment(string)            {}
func (BaseTransformer) PeekHorizontalRule()           {}
func (BaseTransformer) PeekParagraph([]string)        {}

func (BaseTransformer) TransformText(text string) string { return text }

func (BaseTransformer) TransformHeader(level int, text string) string {
	return headerMarkdown(level, text)
}

func (BaseTransformer) TransformBold(text string) string   { return boldMarkdown(text) }
func (BaseTransformer) TransformItalic(text string) string { return italicMarkdown(text) }

func (BaseTransformer) TransformInlineCode(code string) string {
	return codeSpanMarkdown(code)
}

func (BaseTransformer) TransformLineBreak() string { return lineBreakMarkdown }

func (BaseTransformer) TransformLink(text, url string) string {
	return linkMarkdown(text, url)
}

func (BaseTransformer) TransformRefLink(text, label, _ string) string {
	return refLinkMarkdown(text, label)
}

func (BaseTransformer) TransformRefDef(label, url string) string {
	return refDefMarkdown(label, url)
}

func (BaseTransformer) TransformImage(alt, url string, tags []KV) string {
	return imageMarkdown(alt, url, tags)
}

func (BaseTransformer) TransformList(items []string) string { return listMarkdown(items) }

func (BaseTransformer) TransformQuote(lines []string) string { return quoteMarkdown(lines) }

func (BaseTransformer) TransformCodeBlock(lang, body string) string {
	return fenceMarkdown(lang, body)
}

func (BaseTransformer) TransformComment(text string) string { return commentMarkdown(text) }

func (BaseTransformer) TransformHorizontalRule() string { return ruleMarkdown }

func (BaseTransformer) TransformParagraph(lines []string) string {
	return paragraphMarkdown(lines)
}

// TransformString parses the input and runs the two transformation
// passes, returning the concatenated output of the transform pass.
// The transformer must not be shared with a concurrent call.
func TransformString(input string, t Transformer) (string, error) {
	doc, err := Parse(input)
	if err != nil {
		return "", err
	}
	return doc.Transform(t)
}

// TransformReader is TransformString over streams. The reader is
// consumed fully before parsing starts.
func TransformReader(r io.Reader, w io.Writer, t Transformer) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("markdown: reading input: %w", err)
	}
	out, err := TransformString(string(src), t)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("markdown: writing output: %w", err)
	}
	return nil
}

// Transform runs the peek pass over the whole document, then the
// transform pass, and concatenates the per-block outputs with the
// transformed reference definitions last. The tree is not modified.
func (d *Document) Transform(t Transformer) (string, error) {
	peekDocument(d, t)
	if err := hostErr(t, "peek"); err != nil {
		return "", err
	}
	out := transformDocument(d, t)
	if err := hostErr(t, "transform"); err != nil {
		return "", err
	}
	return out, nil
}

func hostErr(t Transformer, pass string) error {
	if f, ok := t.(Fallible); ok {
		if err := f.Err(); err != nil {
			return &TransformerError{Pass: pass, Err: err}
		}
	}
	return nil
}

// ----------- peek pass -------------

// peekDocument visits every node exactly once, depth-first in document
// order, parents before children. Reference definitions are announced
// first so link-related peeks can rely on the full label map.
func peekDocument(d *Document, t Transformer) {
	for _, rd := range d.Refs {
		t.PeekRefDef(rd.Label, rd.Url)
	}
	for _, blk := range d.Blocks {
		peekBlock(blk, t)
	}
}

func peekBlock(blk Block, t Transformer) {
	switch blk := blk.(type) {
	case *Header:
		t.PeekHeader(blk.Level, markdownOf(blk.Inlines))
		peekInlines(blk.Inlines, t)
	case *List:
		items := make([]string, len(blk.Items))
		for i, it := range blk.Items {
			items[i] = markdownOf(it)
		}
		t.PeekList(items)
		for _, it := range blk.Items {
			peekInlines(it, t)
		}
	case *Quote:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = markdownOf(ln)
		}
		t.PeekQuote(lines)
		for _, ln := range blk.Lines {
			peekInlines(ln, t)
		}
	case *CodeBlock:
		t.PeekCodeBlock(blk.Lang, blk.Text)
	case *Comment:
		t.PeekComment(markdownOf(blk.Inlines))
		peekInlines(blk.Inlines, t)
	case *HorizontalRule:
		t.PeekHorizontalRule()
	case *Paragraph:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = markdownOf(ln)
		}
		t.PeekParagraph(lines)
		for _, ln := range blk.Lines {
			peekInlines(ln, t)
		}
	}
}

func peekInlines(rt RichText, t Transformer) {
	for _, n := range rt {
		switch n := n.(type) {
		case *Text:
			t.PeekText(n.Text)
		case *Literal:
			t.PeekText(string(n.Char))
		case *Bold:
			t.PeekBold(markdownOf(n.Inlines))
			peekInlines(n.Inlines, t)
		case *Italic:
			t.PeekItalic(markdownOf(n.Inlines))
			peekInlines(n.Inlines, t)
		case *InlineCode:
			t.PeekInlineCode(n.Text)
		case *Link:
			t.PeekLink(markdownOf(n.Inlines), n.Url)
			peekInlines(n.Inlines, t)
		case *RefLink:
			t.PeekRefLink(markdownOf(n.Inlines), n.Label, n.Url)
			peekInlines(n.Inlines, t)
		case *Image:
			t.PeekImage(markdownOf(n.Alt), n.Url, n.Tags)
			peekInlines(n.Alt, t)
		case *LineBreak:
			t.PeekLineBreak()
		}
	}
}

// ----------- transform pass -------------

func transformDocument(d *Document, t Transformer) string {
	var out []byte
	for _, blk := range d.Blocks {
		out = append(out, transformBlock(blk, t)...)
	}
	for _, rd := range d.Refs {
		out = append(out, t.TransformRefDef(rd.Label, rd.Url)...)
	}
	return string(out)
}

func transformBlock(blk Block, t Transformer) string {
	switch blk := blk.(type) {
	case *Header:
		return t.TransformHeader(blk.Level, transformInlines(blk.Inlines, t))
	case *List:
		items := make([]string, len(blk.Items))
		for i, it := range blk.Items {
			items[i] = transformInlines(it, t)
		}
		return t.TransformList(items)
	case *Quote:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = transformInlines(ln, t)
		}
		return t.TransformQuote(lines)
	case *CodeBlock:
		return t.TransformCodeBlock(blk.Lang, blk.Text)
	case *Comment:
		return t.TransformComment(transformInlines(blk.Inlines, t))
	case *HorizontalRule:
		return t.TransformHorizontalRule()
	case *Paragraph:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = transformInlines(ln, t)
		}
		return t.TransformParagraph(lines)
	}
	return ""
}

// transformInlines composes each node's output from its already
// transformed children before handing it to the node's own method.
func transformInlines(rt RichText, t Transformer) string {
	var b []byte
	for _, n := range rt {
		switch n := n.(type) {
		case *Text:
			b = append(b, t.TransformText(n.Text)...)
		case *Literal:
			b = append(b, t.TransformText(string(n.Char))...)
		case *Bold:
			b = append(b, t.TransformBold(transformInlines(n.Inlines, t))...)
		case *Italic:
			b = append(b, t.TransformItalic(transformInlines(n.Inlines, t))...)
		case *InlineCode:
			b = append(b, t.TransformInlineCode(n.Text)...)
		case *Link:
			b = append(b, t.TransformLink(transformInlines(n.Inlines, t), n.Url)...)
		case *RefLink:
			b = append(b, t.TransformRefLink(transformInlines(n.Inlines, t), n.Label, n.Url)...)
		case *Image:
			b = append(b, t.TransformImage(transformInlines(n.Alt, t), n.Url, n.Tags)...)
		case *LineBreak:
			b = append(b, t.TransformLineBreak()...)
		}
	}
	return string(b)
}
