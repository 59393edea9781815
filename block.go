package markdown

import "strings"

// Block grammar. The input is split into lines once, and a state
// machine tries block starters in fixed priority order at each line:
// header, quote, code fence, comment, list, horizontal rule, reference
// definition, paragraph. Reference definitions are collected aside and
// never appear in the block sequence.

type srcLine struct {
	text string
	num  int // 1-based line number
	off  int // byte offset of the line start in the source
}

type blockParser struct {
	lines []srcLine
	idx   int
}

func (p *blockParser) more() bool    { return p.idx < len(p.lines) }
func (p *blockParser) peek() srcLine { return p.lines[p.idx] }

func splitLines(src string) []srcLine {
	var out []srcLine
	off, num := 0, 1
	for off < len(src) {
		end := strings.IndexByte(src[off:], '\n')
		if end < 0 {
			out = append(out, srcLine{text: src[off:], num: num, off: off})
			break
		}
		out = append(out, srcLine{text: src[off : off+end], num: num, off: off})
		off += end + 1
		num++
	}
	return out
}

func isBlank(text string) bool {
	return strings.Trim(text, " \t") == ""
}

// headerLevel returns 1..6 for a "#"-run header line with exactly one
// space after the hashes, 0 otherwise.
func headerLevel(text string) int {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n < 1 || n > 6 || n >= len(text) || text[n] != ' ' {
		return 0
	}
	return n
}

// isRuleLine reports a line that is three or more '-' alone, modulo
// surrounding whitespace.
func isRuleLine(text string) bool {
	t := strings.Trim(text, " \t")
	if len(t) < 3 {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != '-' {
			return false
		}
	}
	return true
}

// parseRefDefLine matches "[" slug "]:" url with nothing else on the
// line.
func parseRefDefLine(ln srcLine) (RefDef, bool) {
	s := lineScanner(ln.text, ln.num, ln.off, 0)
	pos := s.loc()
	if !s.lit("[") {
		return RefDef{}, false
	}
	label, ok := parseSlug(s)
	if !ok || !s.lit("]") || !s.lit(":") {
		return RefDef{}, false
	}
	s.skipSpaces()
	url, ok := parseURL(s)
	if !ok {
		return RefDef{}, false
	}
	s.skipSpaces()
	if !s.eof() {
		return RefDef{}, false
	}
	return RefDef{Label: label, Url: url, Pos: pos}, true
}

// blockStarts reports whether a line opens any block other than a
// paragraph. Paragraph, quote and list accumulation stop at such
// lines.
func (p *blockParser) blockStarts(text string) bool {
	if headerLevel(text) > 0 {
		return true
	}
	if strings.HasPrefix(text, "> ") || text == ">" {
		return true
	}
	if strings.HasPrefix(text, "```") || strings.HasPrefix(text, "<!--") {
		return true
	}
	if strings.HasPrefix(text, "- ") || isRuleLine(text) {
		return true
	}
	if _, ok := parseRefDefLine(srcLine{text: text, num: 1}); ok {
		return true
	}
	return false
}

// parseBlocks runs the state machine over the whole input, collecting
// blocks and reference definitions in one left-to-right scan.
func parseBlocks(src string) ([]Block, []RefDef, error) {
	p := &blockParser{lines: splitLines(src)}
	var (
		blocks []Block
		refs   []RefDef
	)
	for p.more() {
		ln := p.peek()
		switch text := ln.text; {
		case isBlank(text):
			p.idx++
		case headerLevel(text) > 0:
			blocks = append(blocks, p.parseHeader())
		case strings.HasPrefix(text, "> ") || text == ">":
			blocks = append(blocks, p.parseQuote())
		case strings.HasPrefix(text, "```"):
			b, err := p.parseFence()
			if err != nil {
				return nil, nil, err
			}
			blocks = append(blocks, b)
		case strings.HasPrefix(text, "<!--"):
			b, err := p.parseComment()
			if err != nil {
				return nil, nil, err
			}
			blocks = append(blocks, b)
		case strings.HasPrefix(text, "- "):
			blocks = append(blocks, p.parseList())
		case isRuleLine(text):
			blocks = append(blocks, HR)
			p.idx++
		default:
			if rd, ok := parseRefDefLine(ln); ok {
				refs = append(refs, rd)
				p.idx++
				break
			}
			blocks = append(blocks, p.parseParagraph())
		}
	}
	return blocks, refs, nil
}

func (p *blockParser) parseHeader() Block {
	ln := p.peek()
	level := headerLevel(ln.text)
	s := lineScanner(ln.text[level+1:], ln.num, ln.off+level+1, level+1)
	p.idx++
	return &Header{Level: level, Inlines: parseInlines(s, inlineCtx{})}
}

// parseQuote collects "> "-prefixed lines plus unprefixed continuation
// lines that do not open another block. Each source line becomes one
// entry in Lines.
func (p *blockParser) parseQuote() Block {
	var lines []RichText
	for p.more() {
		ln := p.peek()
		text, col := ln.text, 0
		switch {
		case strings.HasPrefix(text, "> "):
			text, col = text[2:], 2
		case text == ">":
			text, col = "", 1
		default:
			if len(lines) == 0 || isBlank(text) || p.blockStarts(text) {
				return &Quote{Lines: lines}
			}
		}
		s := lineScanner(text, ln.num, ln.off+col, col)
		lines = append(lines, parseInlines(s, inlineCtx{}))
		p.idx++
	}
	return &Quote{Lines: lines}
}

// parseFence reads a "```" fence with an optional language slug,
// keeping the body verbatim up to the closing fence. An unterminated
// fence is a syntax error, never an implicit close at end of input.
func (p *blockParser) parseFence() (Block, error) {
	open := p.peek()
	lang := strings.TrimSpace(open.text[3:])
	p.idx++
	var body []string
	for p.more() {
		ln := p.peek()
		p.idx++
		if strings.TrimRight(ln.text, " \t") == "```" {
			return &CodeBlock{Lang: lang, Text: strings.Join(body, "\n")}, nil
		}
		body = append(body, ln.text)
	}
	return nil, &SyntaxError{
		Pos:      Pos{Offset: open.off, Line: open.num, Col: 1},
		Expected: "```",
	}
}

// parseComment reads "<!--" up to "-->", possibly across several
// lines. Runs of whitespace and the line joins collapse to single
// spaces before the body is parsed as inline content.
func (p *blockParser) parseComment() (Block, error) {
	open := p.peek()
	rest := open.text[len("<!--"):]
	var parts []string
	for {
		if i := strings.Index(rest, "-->"); i >= 0 {
			parts = append(parts, rest[:i])
			p.idx++
			body := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
			s := lineScanner(body, open.num, open.off+4, 4)
			return &Comment{Inlines: parseInlines(s, inlineCtx{})}, nil
		}
		parts = append(parts, rest)
		p.idx++
		if !p.more() {
			return nil, &SyntaxError{
				Pos:      Pos{Offset: open.off, Line: open.num, Col: 1},
				Expected: "-->",
			}
		}
		rest = p.peek().text
	}
}

// parseList reads "- " items. Non-blank lines after an item that do
// not start a new item or another block fold into it, joined with a
// single space.
func (p *blockParser) parseList() Block {
	var items []RichText
	for p.more() && strings.HasPrefix(p.peek().text, "- ") {
		ln := p.peek()
		item := ln.text[2:]
		p.idx++
		for p.more() {
			cont := p.peek()
			if isBlank(cont.text) || p.blockStarts(cont.text) {
				break
			}
			item += " " + strings.Trim(cont.text, " \t")
			p.idx++
		}
		s := lineScanner(item, ln.num, ln.off+2, 2)
		items = append(items, parseInlines(s, inlineCtx{}))
	}
	return &List{Items: items}
}

// parseParagraph accumulates consecutive lines until a blank line,
// another block starter, or end of input. A line ending in two spaces
// gets a trailing LineBreak instead of ending the paragraph.
func (p *blockParser) parseParagraph() Block {
	var lines []RichText
	for p.more() {
		ln := p.peek()
		if isBlank(ln.text) || p.blockStarts(ln.text) {
			break
		}
		text := ln.text
		hard := strings.HasSuffix(text, "  ")
		if hard {
			text = strings.TrimRight(text, " ")
		}
		s := lineScanner(text, ln.num, ln.off, 0)
		rt := parseInlines(s, inlineCtx{})
		if hard {
			rt = append(rt, LB)
		}
		lines = append(lines, rt)
		p.idx++
	}
	return &Paragraph{Lines: lines}
}
