package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
)

func parse(t *testing.T, src []byte) ast.Node {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(pipeline.Default()))
	return md.Parser().Parse(text.NewReader(src))
}

func TestSerialize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node mdast.Node
		want string
	}{
		{"wikilink id only", mdast.NewWikilink("123", ""), "[[123]]"},
		{"wikilink text equals id", mdast.NewWikilink("abc", "abc"), "[[abc]]"},
		{"wikilink with text", mdast.NewWikilink("123", "hello world"), "[[123|hello world]]"},
		{"wikilink reserved id", mdast.NewWikilink("a]b|c", ""), `[[a\]b\|c]]`},
		{"wikilink reserved text", mdast.NewWikilink("x", "a]b|c"), `[[x|a\]b|c]]`},
		{"tag", mdast.NewTag("hello"), "#hello"},
		{"path tag", mdast.NewTag("area/topic"), "#area/topic"},
		{"embed id only", mdast.NewEmbed("pic.png", ""), "![[pic.png]]"},
		{"embed with text", mdast.NewEmbed("pic.png", "A pic"), "![[pic.png|A pic]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render.Serialize(tt.node))
		})
	}
}

func TestSerialize_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	// parse(serialize(parse(s))) == parse(s)
	inputs := []string{
		"[[123]]",
		"[[123|123]]",
		"[[a|b c]]",
		`[[a\|b|c\]d]]`,
		`[[x|p\\]q]]`,
		"#tag",
		"![[pic.png|alt]]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			first := mdast.Collect(parse(t, []byte(input)))
			require.Len(t, first, 1)

			serialized := render.Serialize(first[0])
			second := mdast.Collect(parse(t, []byte(serialized)))
			require.Len(t, second, 1, serialized)

			assert.Equal(t, first[0].Construct(), second[0].Construct())
			assert.Equal(t, render.Serialize(first[0]), render.Serialize(second[0]))
			switch n := first[0].(type) {
			case *mdast.Wikilink:
				assert.Equal(t, n.ID, second[0].(*mdast.Wikilink).ID)
				assert.Equal(t, n.Label, second[0].(*mdast.Wikilink).Label)
			case *mdast.Embed:
				assert.Equal(t, n.ID, second[0].(*mdast.Embed).ID)
				assert.Equal(t, n.Label, second[0].(*mdast.Embed).Label)
			case *mdast.Tag:
				assert.Equal(t, n.Name, second[0].(*mdast.Tag).Name)
			}
		})
	}
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "see [[a]] and #b\n", "see [[a]] and #b\n"},
		{"redundant text", "see [[a|a]] here\n", "see [[a]] here\n"},
		{"embed redundant text", "![[p.png|p.png]]", "![[p.png]]"},
		{"needless escape", `[[x|a\[b]]`, `[[x|a[b]]`},
		{"code untouched", "`[[a|a]]` [[b|b]]\n", "`[[a|a]]` [[b]]\n"},
		{"no constructs", "# Title\n\nplain\n", "# Title\n\nplain\n"},
		{"multiple lines", "- [[a|a]]\n- ![[b|b]] #c\n", "- [[a]]\n- ![[b]] #c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.input)
			assert.Equal(t, tt.want, string(render.Canonicalize(src, parse(t, src))))
		})
	}
}
