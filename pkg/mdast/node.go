package mdast

import (
	"github.com/yuin/goldmark/ast"
)

// ConstructKind identifies one of the note constructs.
type ConstructKind uint8

// Construct kinds.
const (
	ConstructNone ConstructKind = iota
	ConstructWikilink
	ConstructTag
	ConstructEmbed
)

// String returns the lowercase construct name used in output formats.
func (k ConstructKind) String() string {
	switch k {
	case ConstructWikilink:
		return "wikilink"
	case ConstructTag:
		return "tag"
	case ConstructEmbed:
		return "embed"
	default:
		return "none"
	}
}

// Goldmark node kinds for the note constructs.
//
//nolint:gochecknoglobals // Node kinds are registered once, like goldmark's own kinds.
var (
	KindWikilink = ast.NewNodeKind("Wikilink")
	KindTag      = ast.NewNodeKind("Tag")
	KindEmbed    = ast.NewNodeKind("Embed")
)

// Node is implemented by the three construct nodes.
type Node interface {
	ast.Node

	// Construct reports which construct the node represents.
	Construct() ConstructKind

	// Range is the node's source span, markers included.
	Range() SourceRange
}

// Wikilink is an inline [[id]] or [[id|text]] reference.
type Wikilink struct {
	ast.BaseInline

	// ID is the link target. Never empty on a built node.
	ID string

	// Label is the display text; equals ID when no separator was present.
	Label string

	span SourceRange
}

// Tag is an inline #name marker.
type Tag struct {
	ast.BaseInline

	// Name is the tag name without the leading '#'.
	Name string

	span SourceRange
}

// Embed is an inline ![[id]] or ![[id|text]] transclusion.
type Embed struct {
	ast.BaseInline

	// ID is the embedded target. Never empty on a built node.
	ID string

	// Label is the display text; equals ID when no separator was present.
	Label string

	span SourceRange
}

var (
	_ Node = (*Wikilink)(nil)
	_ Node = (*Tag)(nil)
	_ Node = (*Embed)(nil)
)

// NewWikilink returns a wikilink node. An empty text defaults to id.
func NewWikilink(id, text string) *Wikilink {
	if text == "" {
		text = id
	}
	return &Wikilink{ID: id, Label: text}
}

// NewTag returns a tag node.
func NewTag(name string) *Tag {
	return &Tag{Name: name}
}

// NewEmbed returns an embed node. An empty text defaults to id.
func NewEmbed(id, text string) *Embed {
	if text == "" {
		text = id
	}
	return &Embed{ID: id, Label: text}
}

// Kind implements ast.Node.
func (n *Wikilink) Kind() ast.NodeKind { return KindWikilink }

// Kind implements ast.Node.
func (n *Tag) Kind() ast.NodeKind { return KindTag }

// Kind implements ast.Node.
func (n *Embed) Kind() ast.NodeKind { return KindEmbed }

// Construct implements Node.
func (n *Wikilink) Construct() ConstructKind { return ConstructWikilink }

// Construct implements Node.
func (n *Tag) Construct() ConstructKind { return ConstructTag }

// Construct implements Node.
func (n *Embed) Construct() ConstructKind { return ConstructEmbed }

// Range implements Node.
func (n *Wikilink) Range() SourceRange { return n.span }

// Range implements Node.
func (n *Tag) Range() SourceRange { return n.span }

// Range implements Node.
func (n *Embed) Range() SourceRange { return n.span }

// Dump implements ast.Node.
func (n *Wikilink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": n.ID, "Label": n.Label}, nil)
}

// Dump implements ast.Node.
func (n *Tag) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// Dump implements ast.Node.
func (n *Embed) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"ID": n.ID, "Label": n.Label}, nil)
}

// newNode creates an empty node for the given construct.
func newNode(kind ConstructKind) Node {
	switch kind {
	case ConstructWikilink:
		return &Wikilink{}
	case ConstructTag:
		return &Tag{}
	case ConstructEmbed:
		return &Embed{}
	default:
		return nil
	}
}

// setSpan records the node's source span.
func setSpan(n Node, r SourceRange) {
	switch node := n.(type) {
	case *Wikilink:
		node.span = r
	case *Tag:
		node.span = r
	case *Embed:
		node.span = r
	}
}
