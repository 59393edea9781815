package markdown

import "strings"

// Inline grammar. Bold and italic are deliberately asymmetric: each
// one's content may contain the other but never itself, so adjacent
// delimiters always have a single reading. Both are handled by one
// rich-text loop parameterized by the emphasis delimiter it is inside.

type emphasis int8

const (
	emphNone emphasis = iota
	emphBold
	emphItalic
)

type inlineCtx struct {
	emph    emphasis
	bracket bool // inside [ ... ] link or image text
}

func (c inlineCtx) key() int8 {
	k := int8(c.emph)
	if c.bracket {
		k |= 4
	}
	return k
}

var noStar = not(litr("*"))

// parseInlines consumes inline content until the stop condition of the
// enclosing context holds or the input ends. It cannot fail: a trigger
// symbol that starts no construct is emitted as a Literal and scanning
// resumes one character later.
func parseInlines(s *scanner, ctx inlineCtx) RichText {
	var out RichText
	for !s.eof() && !stopsInlines(s, ctx) {
		m := s.mark()
		if n, ok := parseInline(s, ctx); ok {
			out = append(out, n)
			continue
		}
		s.rewind(m)
		out = append(out, &Literal{Char: s.nextRune()})
	}
	return out
}

// stopsInlines reports whether the cursor sits on the closing delimiter
// of the enclosing construct. Inside bold a "**" closes; inside italic
// a single "*" closes but "**" opens a nested bold.
func stopsInlines(s *scanner, ctx inlineCtx) bool {
	if ctx.bracket && s.peekByte() == ']' {
		return true
	}
	switch ctx.emph {
	case emphBold:
		return s.peekLit("**")
	case emphItalic:
		return s.peekLit("*") && !s.peekLit("**")
	}
	return false
}

func parseInline(s *scanner, ctx inlineCtx) (Inline, bool) {
	switch s.peekByte() {
	case '!':
		if s.peekLit("![") {
			return parseImage(s)
		}
		return parseTextRun(s, ctx)
	case '[':
		return parseAnyLink(s, ctx)
	case '`':
		return parseInlineCode(s)
	case '*':
		return parseEmphasis(s, ctx)
	default:
		return parseTextRun(s, ctx)
	}
}

// parseTextRun consumes a maximal run of word characters, spaces and
// ordinary punctuation, stopping before anything that may start or
// close a construct in the current context.
func parseTextRun(s *scanner, ctx inlineCtx) (Inline, bool) {
	start := s.mark()
	for !s.eof() {
		r := s.peekRune()
		if r == '*' || r == '`' || r == '[' {
			break
		}
		if r == ']' && ctx.bracket {
			break
		}
		if r == '!' && s.peekLit("![") {
			break
		}
		s.nextRune()
	}
	if s.pos == start {
		return nil, false
	}
	return &Text{Text: s.src[start:s.pos]}, true
}

// ----------- emphasis -------------

func parseEmphasis(s *scanner, ctx inlineCtx) (Inline, bool) {
	if s.peekLit("**") {
		if ctx.emph == emphBold {
			return nil, false
		}
		return parseBold(s, ctx)
	}
	if ctx.emph == emphItalic {
		return nil, false
	}
	return parseItalic(s, ctx)
}

// Bold: "**" content "**". Content may be empty and never contains a
// directly nested Bold.
func parseBold(s *scanner, ctx inlineCtx) (Inline, bool) {
	start := s.mark()
	if s.failedBefore(start, ruleBold, ctx.key()) {
		return nil, false
	}
	if !s.enter() {
		return nil, false
	}
	defer s.leave()
	s.lit("**")
	inner := ctx
	inner.emph = emphBold
	content := parseInlines(s, inner)
	if !s.lit("**") {
		s.fail(start, ruleBold, ctx.key())
		return nil, false
	}
	return &Bold{Inlines: content}, true
}

// Italic: a single "*" not immediately followed by a second one (that
// combination belongs to Bold), content, closing "*".
func parseItalic(s *scanner, ctx inlineCtx) (Inline, bool) {
	start := s.mark()
	if s.failedBefore(start, ruleItalic, ctx.key()) {
		return nil, false
	}
	if !s.enter() {
		return nil, false
	}
	defer s.leave()
	if !s.lit("*") || !noStar(s) {
		return nil, false
	}
	inner := ctx
	inner.emph = emphItalic
	content := parseInlines(s, inner)
	if !s.lit("*") {
		s.fail(start, ruleItalic, ctx.key())
		return nil, false
	}
	return &Italic{Inlines: content}, true
}

// ----------- code span -------------

// InlineCode: a single backtick not followed by another backtick, raw
// content up to the matching unescaped backtick. The content is never
// re-parsed for inline constructs.
func parseInlineCode(s *scanner) (Inline, bool) {
	s.lit("`")
	if s.peekByte() == '`' {
		return nil, false
	}
	var b strings.Builder
	for !s.eof() {
		r := s.nextRune()
		if r == '\\' && s.peekByte() == '`' {
			s.nextRune()
			b.WriteByte('`')
			continue
		}
		if r == '`' {
			return &InlineCode{Text: b.String()}, true
		}
		b.WriteRune(r)
	}
	return nil, false
}

// ----------- links -------------

func parseAnyLink(s *scanner, ctx inlineCtx) (Inline, bool) {
	return choice(
		func(s *scanner) (Inline, bool) { return parseLink(s, ctx) },
		func(s *scanner) (Inline, bool) { return parseRefLink(s, ctx) },
	)(s)
}

// Link: "[" text "](" url ")".
func parseLink(s *scanner, ctx inlineCtx) (Inline, bool) {
	if !s.enter() {
		return nil, false
	}
	defer s.leave()
	if !s.lit("[") {
		return nil, false
	}
	inner := ctx
	inner.bracket = true
	text := parseInlines(s, inner)
	if !s.lit("]") || !s.lit("(") {
		return nil, false
	}
	url, ok := parseURL(s)
	if !ok || !s.lit(")") {
		return nil, false
	}
	return &Link{Inlines: text, Url: url}, true
}

// RefLink: "[" text "][" label "]". The target url is resolved against
// the document's reference definitions during assembly.
func parseRefLink(s *scanner, ctx inlineCtx) (Inline, bool) {
	if !s.enter() {
		return nil, false
	}
	defer s.leave()
	pos := s.loc()
	if !s.lit("[") {
		return nil, false
	}
	inner := ctx
	inner.bracket = true
	text := parseInlines(s, inner)
	if !s.lit("]") || !s.lit("[") {
		return nil, false
	}
	label, ok := parseSlug(s)
	if !ok || !s.lit("]") {
		return nil, false
	}
	return &RefLink{Inlines: text, Label: label, Pos: pos}, true
}

func parseSlug(s *scanner) (string, bool) {
	slug := s.takeWhile(isSlugRune)
	return slug, slug != ""
}

// parseURL consumes url characters: word runes plus a fixed punctuation
// set. A ')' is part of the url only while an earlier '(' inside it is
// unmatched, so "https://e.org/Go_(language)" parses as one url.
func parseURL(s *scanner) (string, bool) {
	start := s.mark()
	depth := 0
	for !s.eof() {
		r := s.peekRune()
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth == 0 {
				goto done
			}
			depth--
		case !isWordRune(r) && !strings.ContainsRune(urlPunct, r):
			goto done
		}
		s.nextRune()
	}
done:
	if s.pos == start {
		return "", false
	}
	return s.src[start:s.pos], true
}

// ----------- image -------------

// Image: "![" alt "](" url ")" with an optional "[key: value, ...]"
// tag list. A trailing bracket group that does not parse as a tag list
// is left for the regular inline grammar.
func parseImage(s *scanner) (Inline, bool) {
	if !s.enter() {
		return nil, false
	}
	defer s.leave()
	if !s.lit("![") {
		return nil, false
	}
	alt := parseInlines(s, inlineCtx{bracket: true})
	if !s.lit("]") || !s.lit("(") {
		return nil, false
	}
	url, ok := parseURL(s)
	if !ok || !s.lit(")") {
		return nil, false
	}
	img := &Image{Alt: alt, Url: url}
	m := s.mark()
	if tags, ok := parseTagList(s); ok {
		img.Tags = tags
	} else {
		s.rewind(m)
	}
	return img, true
}

// parseTagList: "[" tag ("," tag)* "]". Order is preserved; duplicate
// keys are kept as encountered.
func parseTagList(s *scanner) ([]KV, bool) {
	if !s.lit("[") {
		return nil, false
	}
	first, ok := parseTagPair(s)
	if !ok {
		return nil, false
	}
	rest, _ := many(func(s *scanner) (KV, bool) {
		s.skipSpaces()
		if !s.lit(",") {
			return KV{}, false
		}
		s.skipSpaces()
		return parseTagPair(s)
	})(s)
	if !s.lit("]") {
		return nil, false
	}
	return append([]KV{first}, rest...), true
}

// parseTagPair: slug ":" value, where value is a bare alphanumeric run
// or a double-quoted string.
func parseTagPair(s *scanner) (KV, bool) {
	key, ok := parseSlug(s)
	if !ok || !s.lit(":") {
		return KV{}, false
	}
	s.skipSpaces()
	if s.peekByte() == '"' {
		val, ok := parseQuotedValue(s)
		if !ok {
			return KV{}, false
		}
		return KV{Key: key, Value: val}, true
	}
	val := s.takeWhile(isWordRune)
	if val == "" {
		return KV{}, false
	}
	return KV{Key: key, Value: val}, true
}

// parseQuotedValue: any characters except an unescaped '"' or ']',
// with '\"' standing for a literal quote.
func parseQuotedValue(s *scanner) (string, bool) {
	s.lit(`"`)
	var b strings.Builder
	for !s.eof() {
		r := s.peekRune()
		switch r {
		case '"':
			s.nextRune()
			return b.String(), true
		case ']':
			return "", false
		case '\\':
			s.nextRune()
			if s.peekByte() == '"' {
				s.nextRune()
				b.WriteByte('"')
				continue
			}
			b.WriteRune('\\')
		default:
			b.WriteRune(s.nextRune())
		}
	}
	return "", false
}
