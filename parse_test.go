package markdown_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growler/go-markdown"
	"github.com/growler/go-markdown/dot"
)

func TestParseDocument(t *testing.T) {
	doc, err := markdown.Parse("# Title\n\nA *quick* test.\n")
	require.NoError(t, err)
	want := dot.Blocks(
		dot.H(1, dot.Text("Title")),
		dot.Para(dot.Line(
			dot.Text("A "),
			dot.Italic(dot.Text("quick")),
			dot.Text(" test."),
		)),
	)
	if diff := cmp.Diff(want, doc.Blocks); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := markdown.Parse("")
	require.NoError(t, err)
	assert.Empty(t, doc.Blocks)
	assert.Empty(t, doc.Refs)
}

func TestParseResolvesForwardReference(t *testing.T) {
	doc, err := markdown.Parse("[x][a]\n\n[a]: http://e.com\n")
	require.NoError(t, err)
	links := refLinks(doc)
	require.Len(t, links, 1)
	assert.Equal(t, "http://e.com", links[0].Url)
}

func TestParseResolvesBackwardReference(t *testing.T) {
	doc, err := markdown.Parse("[a]: http://e.com\n\n[x][a]\n")
	require.NoError(t, err)
	links := refLinks(doc)
	require.Len(t, links, 1)
	assert.Equal(t, "http://e.com", links[0].Url)
}

func TestParseUnresolvedReference(t *testing.T) {
	_, err := markdown.Parse("some [x][missing] link\n")
	var rerr *markdown.UnresolvedReferenceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "missing", rerr.Label)
	assert.Equal(t, 1, rerr.Pos.Line)
	assert.Equal(t, 6, rerr.Pos.Col)
}

func TestParseFirstDefinitionWins(t *testing.T) {
	doc, err := markdown.Parse("[x][a]\n\n[a]: first\n[a]: second\n")
	require.NoError(t, err)
	url, ok := doc.Ref("a")
	require.True(t, ok)
	assert.Equal(t, "first", url)
	assert.Equal(t, "first", refLinks(doc)[0].Url)
}

func TestDocumentLinksAndImages(t *testing.T) {
	doc, err := markdown.Parse("[a](u1) and ![i](u2)\n\n> ![j](u3)\n")
	require.NoError(t, err)
	links := doc.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "u1", links[0].Url)
	images := doc.Images()
	require.Len(t, images, 2)
	assert.Equal(t, "u2", images[0].Url)
	assert.Equal(t, "u3", images[1].Url)
}

func refLinks(doc *markdown.Document) []*markdown.RefLink {
	var out []*markdown.RefLink
	dot.Query(doc, func(l *markdown.RefLink) markdown.WalkResult {
		out = append(out, l)
		return dot.Continue
	})
	return out
}

func FuzzParse(f *testing.F) {
	f.Add("# h\n\npara *i* **b** `c`\n")
	f.Add("[x][a]\n\n[a]: http://e.com\n")
	f.Add("```go\ncode\n```\n")
	f.Add("<!-- c -->\n- a\n- b\n---\n")
	f.Add("![alt](url)[k: \"v v\", j: 1]\n")
	f.Add("****`*[")
	f.Fuzz(func(t *testing.T, src string) {
		doc, err := markdown.Parse(src)
		if err != nil {
			return
		}
		// canonical rendering of a valid parse must reparse cleanly
		out := doc.Markdown()
		if _, err := markdown.Parse(out); err != nil {
			t.Fatalf("canonical output failed to reparse: %v\n%q", err, out)
		}
	})
}

func BenchmarkParse(b *testing.B) {
	src := "# Title\n\nA *quick* **brown** [fox](http://e.com) jumps.  \nOver `the` lazy dog.\n\n- one\n- two\n\n> quoted\n"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := markdown.Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}
