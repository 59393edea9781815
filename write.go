package markdown

import "strings"

// Canonical markdown rendering. These helpers are the identity
// transform and also the decoder producing the string fields handed to
// peek and transform calls, so both views of a node agree. Rendering
// then reparsing a canonical document yields the same tree.

const (
	lineBreakMarkdown = "  "
	ruleMarkdown      = "---\n\n"
)

// markdownOf renders rich text back to its canonical markdown form.
func markdownOf(rt RichText) string {
	var b strings.Builder
	for _, n := range rt {
		inlineMarkdown(&b, n)
	}
	return b.String()
}

func inlineMarkdown(b *strings.Builder, n Inline) {
	switch n := n.(type) {
	case *Text:
		b.WriteString(n.Text)
	case *Literal:
		b.WriteRune(n.Char)
	case *Bold:
		b.WriteString(boldMarkdown(markdownOf(n.Inlines)))
	case *Italic:
		b.WriteString(italicMarkdown(markdownOf(n.Inlines)))
	case *InlineCode:
		b.WriteString(codeSpanMarkdown(n.Text))
	case *Link:
		b.WriteString(linkMarkdown(markdownOf(n.Inlines), n.Url))
	case *RefLink:
		b.WriteString(refLinkMarkdown(markdownOf(n.Inlines), n.Label))
	case *Image:
		b.WriteString(imageMarkdown(markdownOf(n.Alt), n.Url, n.Tags))
	case *LineBreak:
		b.WriteString(lineBreakMarkdown)
	}
}

func boldMarkdown(text string) string   { return "**" + text + "**" }
func italicMarkdown(text string) string { return "*" + text + "*" }

func codeSpanMarkdown(code string) string {
	return "`" + strings.ReplaceAll(code, "`", "\\`") + "`"
}

func linkMarkdown(text, url string) string {
	return "[" + text + "](" + url + ")"
}

func refLinkMarkdown(text, label string) string {
	return "[" + text + "][" + label + "]"
}

func imageMarkdown(alt, url string, tags []KV) string {
	return "![" + alt + "](" + url + ")" + tagsMarkdown(tags)
}

// tagsMarkdown renders an image tag list, quoting values that are not
// plain alphanumeric runs.
func tagsMarkdown(tags []KV) string {
	if len(tags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, kv := range tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kv.Key)
		b.WriteString(": ")
		b.WriteString(tagValueMarkdown(kv.Value))
	}
	b.WriteByte(']')
	return b.String()
}

func tagValueMarkdown(v string) string {
	bare := v != ""
	for _, r := range v {
		if !isWordRune(r) {
			bare = false
			break
		}
	}
	if bare {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

func headerMarkdown(level int, text string) string {
	return strings.Repeat("#", level) + " " + text + "\n\n"
}

func listMarkdown(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func quoteMarkdown(lines []string) string {
	var b strings.Builder
	for _, ln := range lines {
		if ln == "" {
			b.WriteString(">\n")
			continue
		}
		b.WriteString("> ")
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func fenceMarkdown(lang, body string) string {
	return "```" + lang + "\n" + body + "\n```\n\n"
}

func commentMarkdown(text string) string {
	return "<!-- " + text + " -->\n\n"
}

func paragraphMarkdown(lines []string) string {
	return strings.Join(lines, "\n") + "\n\n"
}

func refDefMarkdown(label, url string) string {
	return "[" + label + "]: " + url + "\n"
}

// Markdown returns the canonical serialization of the document, the
// same text the identity transformer produces. Reference definitions
// come last regardless of where the source declared them.
func (d *Document) Markdown() string {
	var b strings.Builder
	for _, blk := range d.Blocks {
		b.WriteString(blockMarkdown(blk))
	}
	for _, rd := range d.Refs {
		b.WriteString(refDefMarkdown(rd.Label, rd.Url))
	}
	return b.String()
}

func blockMarkdown(blk Block) string {
	switch blk := blk.(type) {
	case *Header:
		return headerMarkdown(blk.Level, markdownOf(blk.Inlines))
	case *List:
		items := make([]string, len(blk.Items))
		for i, it := range blk.Items {
			items[i] = markdownOf(it)
		}
		return listMarkdown(items)
	case *Quote:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = markdownOf(ln)
		}
		return quoteMarkdown(lines)
	case *CodeBlock:
		return fenceMarkdown(blk.Lang, blk.Text)
	case *Comment:
		return commentMarkdown(markdownOf(blk.Inlines))
	case *HorizontalRule:
		return ruleMarkdown
	case *Paragraph:
		lines := make([]string, len(blk.Lines))
		for i, ln := range blk.Lines {
			lines[i] = markdownOf(ln)
		}
		return paragraphMarkdown(lines)
	}
	return ""
}
