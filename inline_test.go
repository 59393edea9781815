package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRich(t *testing.T, src string) RichText {
	t.Helper()
	s := newScanner(src)
	rt := parseInlines(s, inlineCtx{})
	require.True(t, s.eof(), "inline parse stopped at %q", src[s.pos:])
	return rt
}

func richDiff(t *testing.T, src string, want RichText) {
	t.Helper()
	got := parseRich(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parse %q mismatch (-want +got):\n%s", src, diff)
	}
}

func TestInlineText(t *testing.T) {
	richDiff(t, "hello, wörld.", RichText{&Text{Text: "hello, wörld."}})
}

func TestInlineBoldItalic(t *testing.T) {
	richDiff(t, "**a *b* c**", RichText{
		&Bold{Inlines: RichText{
			&Text{Text: "a "},
			&Italic{Inlines: RichText{&Text{Text: "b"}}},
			&Text{Text: " c"},
		}},
	})
	richDiff(t, "*a **b** c*", RichText{
		&Italic{Inlines: RichText{
			&Text{Text: "a "},
			&Bold{Inlines: RichText{&Text{Text: "b"}}},
			&Text{Text: " c"},
		}},
	})
	richDiff(t, "****", RichText{&Bold{}})
}

func TestInlineUnmatchedEmphasis(t *testing.T) {
	richDiff(t, "a *b", RichText{
		&Text{Text: "a "},
		&Literal{Char: '*'},
		&Text{Text: "b"},
	})
	// the failed bold emits one literal star; the remaining "*b *"
	// then matches as italic
	richDiff(t, "a **b *c", RichText{
		&Text{Text: "a "},
		&Literal{Char: '*'},
		&Italic{Inlines: RichText{&Text{Text: "b "}}},
		&Text{Text: "c"},
	})
}

func TestInlineCodeSpan(t *testing.T) {
	richDiff(t, "a `b *c*` d", RichText{
		&Text{Text: "a "},
		&InlineCode{Text: "b *c*"},
		&Text{Text: " d"},
	})
	richDiff(t, "`a \\` b`", RichText{&InlineCode{Text: "a ` b"}})
	// unterminated code span falls back to a literal backtick
	richDiff(t, "a `b", RichText{
		&Text{Text: "a "},
		&Literal{Char: '`'},
		&Text{Text: "b"},
	})
}

func TestInlineLink(t *testing.T) {
	richDiff(t, "[go](https://go.dev)", RichText{
		&Link{Inlines: RichText{&Text{Text: "go"}}, Url: "https://go.dev"},
	})
	richDiff(t, "[*go*](https://go.dev)", RichText{
		&Link{
			Inlines: RichText{&Italic{Inlines: RichText{&Text{Text: "go"}}}},
			Url:     "https://go.dev",
		},
	})
}

func TestInlineLinkBalancedParens(t *testing.T) {
	richDiff(t, "[w](https://en.wikipedia.org/wiki/Go_(language))", RichText{
		&Link{
			Inlines: RichText{&Text{Text: "w"}},
			Url:     "https://en.wikipedia.org/wiki/Go_(language)",
		},
	})
}

func TestInlineRefLink(t *testing.T) {
	richDiff(t, "[go][go-site]", RichText{
		&RefLink{
			Inlines: RichText{&Text{Text: "go"}},
			Label:   "go-site",
			Pos:     Pos{Offset: 0, Line: 1, Col: 1},
		},
	})
}

func TestInlineImage(t *testing.T) {
	richDiff(t, "![alt](pic.png)", RichText{
		&Image{Alt: RichText{&Text{Text: "alt"}}, Url: "pic.png"},
	})
}

func TestInlineImageTags(t *testing.T) {
	richDiff(t, `![alt](url)[key: "a b", other: 5]`, RichText{
		&Image{
			Alt:  RichText{&Text{Text: "alt"}},
			Url:  "url",
			Tags: []KV{{Key: "key", Value: "a b"}, {Key: "other", Value: "5"}},
		},
	})
	// duplicate keys are preserved in encounter order
	richDiff(t, `![a](u)[k: 1, k: 2]`, RichText{
		&Image{
			Alt:  RichText{&Text{Text: "a"}},
			Url:  "u",
			Tags: []KV{{Key: "k", Value: "1"}, {Key: "k", Value: "2"}},
		},
	})
}

func TestInlineImageBadTagsLeftAlone(t *testing.T) {
	// a trailing bracket group that is not a tag list is ordinary
	// inline content
	got := parseRich(t, "![a](u)[not a tag list]")
	require.NotEmpty(t, got)
	img, ok := got[0].(*Image)
	require.True(t, ok)
	assert.Empty(t, img.Tags)
}

func TestInlineBang(t *testing.T) {
	richDiff(t, "hey!", RichText{&Text{Text: "hey!"}})
	richDiff(t, "hey![x", RichText{
		&Text{Text: "hey"},
		&Literal{Char: '!'},
		&Literal{Char: '['},
		&Text{Text: "x"},
	})
}

func TestInlineAdversarialStars(t *testing.T) {
	src := strings.Repeat("*", 2001)
	rt := parseRich(t, src)
	assert.NotEmpty(t, rt)
}

func TestInlineDeepBrackets(t *testing.T) {
	src := strings.Repeat("[", 500) + "x"
	rt := parseRich(t, src)
	assert.NotEmpty(t, rt)
}

func BenchmarkInlines(b *testing.B) {
	src := "some **bold *and italic* text** with [a](http://link) and `code`"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := newScanner(src)
		parseInlines(s, inlineCtx{})
	}
}
