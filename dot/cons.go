// Package dot provides terse constructors for building markdown
// document trees, meant to be dot-imported in tests and filters.
package dot

import "github.com/growler/go-markdown"

const (
	Continue = markdown.WalkContinue
	Replace  = markdown.WalkReplace
	Skip     = markdown.WalkSkip
	Stop     = markdown.WalkStop
)

func Blocks(b ...markdown.Block) []markdown.Block {
	return b
}

func Inlines(i ...markdown.Inline) markdown.RichText {
	return i
}

// Plain text run.
func Text(s string) markdown.Inline {
	return &markdown.Text{Text: s}
}

// Literal symbol that failed to start any construct.
func Lit(r rune) markdown.Inline {
	return &markdown.Literal{Char: r}
}

// Bold text (list of inlines).
func Bold(i ...markdown.Inline) *markdown.Bold {
	return &markdown.Bold{Inlines: i}
}

// Italic text (list of inlines).
func Italic(i ...markdown.Inline) *markdown.Italic {
	return &markdown.Italic{Inlines: i}
}

// Inline code (literal).
func Code(text string) *markdown.InlineCode {
	return &markdown.InlineCode{Text: text}
}

// Link (list of inlines as link text).
func Link(url string, i ...markdown.Inline) *markdown.Link {
	return &markdown.Link{Inlines: i, Url: url}
}

// Reference-style link. Url is filled in during parse; tests building
// resolved trees set it with RefLinkTo.
func RefLink(label string, i ...markdown.Inline) *markdown.RefLink {
	return &markdown.RefLink{Inlines: i, Label: label}
}

// Reference-style link with the resolved target.
func RefLinkTo(label, url string, i ...markdown.Inline) *markdown.RefLink {
	return &markdown.RefLink{Inlines: i, Label: label, Url: url}
}

// Image (list of inlines as alternate text).
func Image(url string, alt ...markdown.Inline) *markdown.Image {
	return &markdown.Image{Alt: alt, Url: url}
}

// Image with a tag list.
func ImageTags(url string, tags []markdown.KV, alt ...markdown.Inline) *markdown.Image {
	return &markdown.Image{Alt: alt, Url: url, Tags: tags}
}

// KVs builds a tag list from alternating keys and values.
func KVs(kvs ...string) []markdown.KV {
	var res = make([]markdown.KV, 0, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		res = append(res, markdown.KV{Key: kvs[i], Value: kvs[i+1]})
	}
	return res
}

// Hard line break
func LineBreak() markdown.Inline { return markdown.LB }

// Header (level, list of inlines).
func H(level int, i ...markdown.Inline) *markdown.Header {
	return &markdown.Header{Level: level, Inlines: i}
}

// A single rich-text line.
func Line(i ...markdown.Inline) markdown.RichText {
	return i
}

func Para(lines ...markdown.RichText) *markdown.Paragraph {
	return &markdown.Paragraph{Lines: lines}
}

func Quote(lines ...markdown.RichText) *markdown.Quote {
	return &markdown.Quote{Lines: lines}
}

func List(items ...markdown.RichText) *markdown.List {
	return &markdown.List{Items: items}
}

func CodeBlock(lang, text string) *markdown.CodeBlock {
	return &markdown.CodeBlock{Lang: lang, Text: text}
}

func Comment(i ...markdown.Inline) *markdown.Comment {
	return &markdown.Comment{Inlines: i}
}

// Horizontal rule.
func HorizontalRule() markdown.Block {
	return markdown.HR
}

func Ref(label, url string) markdown.RefDef {
	return markdown.RefDef{Label: label, Url: url}
}

func Doc(b ...markdown.Block) *markdown.Document {
	return &markdown.Document{Blocks: b}
}

func DocRefs(refs []markdown.RefDef, b ...markdown.Block) *markdown.Document {
	return &markdown.Document{Blocks: b, Refs: refs}
}

func Filter[P any, E markdown.Element, R markdown.Element](elt E, fun func(P) ([]R, markdown.WalkResult)) E {
	return markdown.Filter[P, E, R](elt, fun)
}

func Query[P any, E markdown.Element](elt E, fun func(P) markdown.WalkResult) {
	markdown.Query[P, E](elt, fun)
}
