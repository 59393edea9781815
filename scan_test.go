package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharClasses(t *testing.T) {
	var tests = []struct {
		r                          rune
		word, slug, space, trigger bool
	}{
		{'a', true, true, false, false},
		{'Z', true, true, false, false},
		{'7', true, true, false, false},
		{'é', true, true, false, false},
		{'œ', true, true, false, false},
		{'_', false, true, false, false},
		{'-', false, true, false, false},
		{'.', false, true, false, false},
		{' ', false, false, true, false},
		{'\t', false, false, true, false},
		{'`', false, false, false, true},
		{'[', false, false, false, true},
		{'*', false, false, false, true},
		{'!', false, false, false, true},
		{'(', false, false, false, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.word, isWordRune(tt.r), "isWordRune(%q)", tt.r)
		assert.Equal(t, tt.slug, isSlugRune(tt.r), "isSlugRune(%q)", tt.r)
		assert.Equal(t, tt.space, isSpaceRune(tt.r), "isSpaceRune(%q)", tt.r)
		assert.Equal(t, tt.trigger, isTriggerRune(tt.r), "isTriggerRune(%q)", tt.r)
	}
}

func TestPunctRune(t *testing.T) {
	assert.True(t, isPunctRune('*'))
	assert.True(t, isPunctRune(')'))
	assert.False(t, isPunctRune('x'))
	assert.False(t, isPunctRune(' '))
	assert.False(t, isPunctRune('\n'))
}

func TestScannerBasics(t *testing.T) {
	s := newScanner("abc `def`")
	assert.False(t, s.eof())
	assert.True(t, s.peekLit("abc"))
	assert.Equal(t, 0, s.pos, "peekLit must not consume")
	assert.True(t, s.lit("abc"))
	assert.Equal(t, " ", s.takeWhile(isSpaceRune))
	assert.Equal(t, byte('`'), s.peekByte())

	m := s.mark()
	assert.False(t, s.lit("``"))
	s.rewind(m)
	assert.True(t, s.lit("`"))
	assert.Equal(t, "def", s.takeWhile(isWordRune))
	assert.True(t, s.lit("`"))
	assert.True(t, s.eof())
}

func TestScannerRunes(t *testing.T) {
	s := newScanner("héllo")
	assert.Equal(t, 'h', s.nextRune())
	assert.Equal(t, 'é', s.peekRune())
	assert.Equal(t, 'é', s.nextRune())
	assert.Equal(t, "llo", s.takeWhile(isWordRune))
	assert.True(t, s.eof())
}

func TestScannerLoc(t *testing.T) {
	// a fragment starting at offset 10, line 3, after a 2-column
	// prefix
	s := lineScanner("hello", 3, 10, 2)
	assert.Equal(t, Pos{Offset: 10, Line: 3, Col: 3}, s.loc())
	s.lit("hel")
	assert.Equal(t, Pos{Offset: 13, Line: 3, Col: 6}, s.loc())
}

func TestChoiceRewindsBetweenAlternatives(t *testing.T) {
	r := choice(
		func(s *scanner) (string, bool) {
			s.lit("ab") // consumes, then fails
			return "", false
		},
		litr("abc"),
	)
	s := newScanner("abc")
	v, ok := r(s)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	assert.True(t, s.eof())
}

func TestManyNeverFails(t *testing.T) {
	s := newScanner("aaab")
	out, ok := many(litr("a"))(s)
	assert.True(t, ok)
	assert.Len(t, out, 3)
	assert.Equal(t, byte('b'), s.peekByte())

	out, ok = many(litr("x"))(s)
	assert.True(t, ok)
	assert.Empty(t, out)
	assert.Equal(t, byte('b'), s.peekByte(), "failed repetition must not consume")
}

func TestNegativeLookahead(t *testing.T) {
	s := newScanner("abc")
	assert.False(t, not(litr("ab"))(s))
	assert.Equal(t, 0, s.pos, "lookahead must not consume on failure")
	assert.True(t, not(litr("xy"))(s))
	assert.Equal(t, 0, s.pos, "lookahead must not consume on success")
}

func TestNestingBound(t *testing.T) {
	s := newScanner("")
	for i := 0; i < maxNesting; i++ {
		assert.True(t, s.enter())
	}
	assert.False(t, s.enter())
	assert.True(t, s.capped)
	s.leave()
	assert.True(t, s.enter())
}

func TestFailureMemo(t *testing.T) {
	s := newScanner("**")
	assert.False(t, s.failedBefore(0, ruleBold, 0))
	s.fail(0, ruleBold, 0)
	assert.True(t, s.failedBefore(0, ruleBold, 0))
	assert.False(t, s.failedBefore(0, ruleItalic, 0), "memo is per rule")
	assert.False(t, s.failedBefore(0, ruleBold, 1), "memo is per context")

	s.capped = true
	s.fail(1, ruleBold, 0)
	assert.False(t, s.failedBefore(1, ruleBold, 0), "depth-capped failures are not recorded")
}
