package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growler/go-markdown"
	"github.com/growler/go-markdown/dot"
)

func TestMarkdownBlocks(t *testing.T) {
	var tests = []struct {
		doc  *markdown.Document
		want string
	}{
		{
			dot.Doc(dot.H(2, dot.Text("toto"))),
			"## toto\n\n",
		},
		{
			dot.Doc(dot.Para(
				dot.Line(dot.Text("a"), dot.LineBreak()),
				dot.Line(dot.Text("b")),
			)),
			"a  \nb\n\n",
		},
		{
			dot.Doc(dot.Quote(dot.Line(dot.Text("q")), dot.Line())),
			"> q\n>\n\n",
		},
		{
			dot.Doc(dot.List(dot.Line(dot.Text("one")), dot.Line(dot.Text("two")))),
			"- one\n- two\n\n",
		},
		{
			dot.Doc(dot.CodeBlock("go", "func main() {}")),
			"```go\nfunc main() {}\n```\n\n",
		},
		{
			dot.Doc(dot.Comment(dot.Text("note"))),
			"<!-- note -->\n\n",
		},
		{
			dot.Doc(dot.HorizontalRule()),
			"---\n\n",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.doc.Markdown())
	}
}

func TestMarkdownInlines(t *testing.T) {
	doc := dot.Doc(dot.Para(dot.Line(
		dot.Bold(dot.Text("a "), dot.Italic(dot.Text("b"))),
		dot.Text(" "),
		dot.Code("x`y"),
		dot.Text(" "),
		dot.Link("u", dot.Text("l")),
		dot.Text(" "),
		dot.ImageTags("p", dot.KVs("k", "a b", "n", "5"), dot.Text("alt")),
		dot.Lit('*'),
	)))
	assert.Equal(t,
		"**a *b*** `x\\`y` [l](u) ![alt](p)[k: \"a b\", n: 5]*\n\n",
		doc.Markdown())
}

func TestMarkdownRefs(t *testing.T) {
	doc := dot.DocRefs(
		[]markdown.RefDef{dot.Ref("a", "http://e.com")},
		dot.Para(dot.Line(dot.RefLinkTo("a", "http://e.com", dot.Text("x")))),
	)
	assert.Equal(t, "[x][a]\n\n[a]: http://e.com\n", doc.Markdown())
}

// The canonical form is a fixed point: parsing it and rendering again
// changes nothing.
func TestMarkdownRoundTrip(t *testing.T) {
	var inputs = []string{
		"# Title\n\npara with **bold *nested*** and `code`\n",
		"hard  \nbreak\n",
		"- a\n  folded\n- b\n",
		"> quoted\ncontinued\n",
		"```rust\nfn main() {}\n\n// blank kept\n```\n",
		"<!-- a\nmulti line\tcomment -->\n",
		"---\n",
		"[x][a] and [y](u)\n\n[a]: http://e.com\n",
		"![alt](url)[key: \"a b\", other: 5]\n",
		"*lone star and stray ] bracket\n",
	}
	for _, src := range inputs {
		doc, err := markdown.Parse(src)
		require.NoError(t, err, "input %q", src)
		once := doc.Markdown()
		doc2, err := markdown.Parse(once)
		require.NoError(t, err, "canonical %q", once)
		assert.Equal(t, once, doc2.Markdown(), "input %q", src)
	}
}
