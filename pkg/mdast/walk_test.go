package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/notemark/pkg/mdast"
)

// buildTree returns a document with a paragraph holding a wikilink, a tag
// inside an emphasis node, and an embed.
func buildTree(t *testing.T) ast.Node {
	t.Helper()

	doc := ast.NewDocument()
	para := ast.NewParagraph()
	doc.AppendChild(doc, para)

	para.AppendChild(para, mdast.NewWikilink("a", ""))
	emphasis := ast.NewEmphasis(1)
	emphasis.AppendChild(emphasis, mdast.NewTag("b"))
	para.AppendChild(para, emphasis)
	para.AppendChild(para, mdast.NewEmbed("c.png", ""))

	return doc
}

func TestCollect(t *testing.T) {
	t.Parallel()

	nodes := mdast.Collect(buildTree(t))
	require.Len(t, nodes, 3)
	assert.Equal(t, mdast.ConstructWikilink, nodes[0].Construct())
	assert.Equal(t, mdast.ConstructTag, nodes[1].Construct())
	assert.Equal(t, mdast.ConstructEmbed, nodes[2].Construct())

	assert.Empty(t, mdast.Collect(nil))
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	tags := mdast.FindByKind(buildTree(t), mdast.ConstructTag)
	require.Len(t, tags, 1)
	assert.Equal(t, "b", tags[0].(*mdast.Tag).Name)
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	root := buildTree(t)
	found := mdast.FindFirst(root, func(n mdast.Node) bool {
		return n.Construct() != mdast.ConstructWikilink
	})
	require.NotNil(t, found)
	assert.Equal(t, mdast.ConstructTag, found.Construct())

	assert.Nil(t, mdast.FindFirst(root, func(mdast.Node) bool { return false }))
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	visited := 0

	err := mdast.Walk(buildTree(t), func(mdast.Node) error {
		visited++
		return errBoom
	})

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, visited)
}
