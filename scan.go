package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Hand-written backtracking scanner over a cursor position. Grammar
// rules either consume a span and advance the cursor, or fail and leave
// the cursor exactly where it was: mark/rewind is the only state a rule
// needs to restore. Ordered choice, repetition and negative lookahead
// are built on top of that guarantee.

// Accented letters that count as word characters. This is fixed grammar
// policy, not a runtime option.
const wordAccents = "àâäéèêëîïôöùûüçœæÀÂÄÉÈÊËÎÏÔÖÙÛÜÇŒÆ"

// Punctuation allowed in a bare url, besides word characters and
// balanced parentheses.
const urlPunct = "./:_~#?&=%+-!,;@'"

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
		strings.ContainsRune(wordAccents, r)
}

func isSlugRune(r rune) bool {
	return isWordRune(r) || r == '_' || r == '-' || r == '.'
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t'
}

// isTriggerRune reports whether r may start an inline construct. A '!'
// is a trigger only when followed by '[', which the inline grammar
// checks separately.
func isTriggerRune(r rune) bool {
	return r == '`' || r == '[' || r == '*' || r == '!'
}

func isPunctRune(r rune) bool {
	return !isWordRune(r) && !isSpaceRune(r) && !unicode.IsControl(r)
}

// parse rules subject to failure memoization
const (
	ruleBold = iota
	ruleItalic
)

type memoKey struct {
	pos  int
	rule int8
	ctx  int8
}

type scanner struct {
	src    string
	pos    int
	line   int // 1-based line number of src's first byte in the document
	base   int // document byte offset of src's first byte
	col    int // document column of src's first byte, 0-based
	depth  int  // current nesting depth of recursive constructs
	capped bool // true once the depth bound has been hit
	failed map[memoKey]bool
}

func newScanner(src string) *scanner {
	return &scanner{src: src, line: 1}
}

// lineScanner scans a fragment of a single source line, keeping enough
// context to report document positions.
func lineScanner(src string, line, base, col int) *scanner {
	return &scanner{src: src, line: line, base: base, col: col}
}

func (s *scanner) loc() Pos {
	return Pos{Offset: s.base + s.pos, Line: s.line, Col: s.col + s.pos + 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) mark() int {
	return s.pos
}

func (s *scanner) rewind(m int) {
	s.pos = m
}

// peekByte returns the byte at the cursor, or 0 at end of input.
func (s *scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekRune() rune {
	if s.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r
}

func (s *scanner) nextRune() rune {
	r, n := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += n
	return r
}

// lit consumes t if the input starts with it at the cursor.
func (s *scanner) lit(t string) bool {
	if strings.HasPrefix(s.src[s.pos:], t) {
		s.pos += len(t)
		return true
	}
	return false
}

// peekLit reports whether t starts at the cursor, without consuming.
func (s *scanner) peekLit(t string) bool {
	return strings.HasPrefix(s.src[s.pos:], t)
}

// takeWhile consumes the longest run of runes matching pred.
func (s *scanner) takeWhile(pred func(rune) bool) string {
	start := s.pos
	for !s.eof() && pred(s.peekRune()) {
		s.nextRune()
	}
	return s.src[start:s.pos]
}

func (s *scanner) skipSpaces() {
	s.takeWhile(isSpaceRune)
}

// Backtracking bound. Rules that recurse (emphasis, bracketed
// constructs) refuse to nest deeper than this; combined with the
// failure memo it keeps adversarial delimiter runs from blowing up.
const maxNesting = 200

// enter opens one level of recursive nesting; rules that get false back
// must fail without consuming.
func (s *scanner) enter() bool {
	if s.depth >= maxNesting {
		s.capped = true
		return false
	}
	s.depth++
	return true
}

func (s *scanner) leave() {
	s.depth--
}

// failedBefore reports whether rule has already failed at this exact
// position and context.
func (s *scanner) failedBefore(pos int, rule, ctx int8) bool {
	return s.failed[memoKey{pos, rule, ctx}]
}

// fail records a rule failure so the position is never re-explored.
// Failures caused by the depth bound are not recorded: the same rule
// may legitimately succeed at a shallower depth.
func (s *scanner) fail(pos int, rule, ctx int8) {
	if s.capped {
		return
	}
	if s.failed == nil {
		s.failed = make(map[memoKey]bool)
	}
	s.failed[memoKey{pos, rule, ctx}] = true
}

// ----------- combinators -------------

// A grammar rule: match at the cursor and return the parsed value, or
// fail. Rules restore the cursor on failure.
type rule[T any] func(*scanner) (T, bool)

// choice tries alternatives left to right, committing to the first
// success. The cursor is rewound before each attempt.
func choice[T any](alts ...rule[T]) rule[T] {
	return func(s *scanner) (T, bool) {
		for _, alt := range alts {
			m := s.mark()
			if v, ok := alt(s); ok {
				return v, true
			}
			s.rewind(m)
		}
		var zero T
		return zero, false
	}
}

// many applies r zero or more times, collecting the results. It never
// fails; a failing iteration rewinds and stops the repetition.
func many[T any](r rule[T]) rule[[]T] {
	return func(s *scanner) ([]T, bool) {
		var out []T
		for {
			m := s.mark()
			v, ok := r(s)
			if !ok {
				s.rewind(m)
				return out, true
			}
			out = append(out, v)
		}
	}
}

// not is a negative lookahead: it succeeds when r fails, and never
// consumes input either way.
func not[T any](r rule[T]) func(*scanner) bool {
	return func(s *scanner) bool {
		m := s.mark()
		_, ok := r(s)
		s.rewind(m)
		return !ok
	}
}

// litr lifts a literal into a rule, for use with the combinators.
func litr(t string) rule[string] {
	return func(s *scanner) (string, bool) {
		if s.lit(t) {
			return t, true
		}
		return "", false
	}
}
