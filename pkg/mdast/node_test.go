package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/notemark/pkg/mdast"
)

func TestNodes_AreGoldmarkInlines(t *testing.T) {
	t.Parallel()

	nodes := []ast.Node{
		mdast.NewWikilink("a", "b"),
		mdast.NewTag("t"),
		mdast.NewEmbed("c.png", ""),
	}
	for _, n := range nodes {
		assert.Equal(t, ast.TypeInline, n.Type())
		assert.Empty(t, n.Text([]byte("source")), "leaf nodes have no child text")
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	link := mdast.NewWikilink("note", "")
	assert.Equal(t, "note", link.Label)
	assert.Equal(t, mdast.KindWikilink, link.Kind())
	assert.Equal(t, mdast.ConstructWikilink, link.Construct())

	embed := mdast.NewEmbed("pic.png", "a picture")
	assert.Equal(t, "a picture", embed.Label)
	assert.Equal(t, mdast.KindEmbed, embed.Kind())
	assert.Equal(t, mdast.ConstructEmbed, embed.Construct())

	tag := mdast.NewTag("todo")
	assert.Equal(t, "todo", tag.Name)
	assert.Equal(t, mdast.KindTag, tag.Kind())
	assert.Equal(t, mdast.ConstructTag, tag.Construct())
	assert.True(t, tag.Range().IsEmpty())
}

func TestConstructKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wikilink", mdast.ConstructWikilink.String())
	assert.Equal(t, "tag", mdast.ConstructTag.String())
	assert.Equal(t, "embed", mdast.ConstructEmbed.String())
	assert.Equal(t, "none", mdast.ConstructNone.String())
}

func TestFileSnapshot_PositionOf(t *testing.T) {
	t.Parallel()

	content := []byte("first line\nsee #tag here")
	snapshot := mdast.NewFileSnapshot("note.md", content)

	root := ast.NewDocument()
	builder := mdast.NewBuilder(content, root)
	node, err := builder.Feed([]mdast.Token{
		{Kind: mdast.TokTagMarker, StartOffset: 15, EndOffset: 16},
		{Kind: mdast.TokTagName, StartOffset: 16, EndOffset: 19},
	})
	require.NoError(t, err)
	snapshot.Root = root

	pos := snapshot.PositionOf(node)
	assert.Equal(t, mdast.SourcePosition{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 9}, pos)
	assert.True(t, pos.IsSingleLine())
	assert.Equal(t, "#tag", string(snapshot.SourceText(node)))
	assert.Equal(t, []mdast.Node{node}, snapshot.Nodes())

	assert.False(t, snapshot.PositionOf(mdast.NewTag("x")).IsValid())
}
