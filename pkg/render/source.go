package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/notemark/pkg/mdast"
)

// Serialize returns the canonical source form of a construct node:
// [[id]] when the text equals the id, [[id|text]] otherwise, #name,
// ![[id]] and ![[id|text]]. Reserved runes in values are re-escaped.
//
// A display text that ends in a backslash has no source form that parses
// back to the same text, since the backslash would escape the closing
// bracket.
func Serialize(node mdast.Node) string {
	var sb strings.Builder
	WriteSource(&sb, node)
	return sb.String()
}

// WriteSource writes the canonical source form of node to sb.
func WriteSource(sb *strings.Builder, node mdast.Node) {
	switch n := node.(type) {
	case *mdast.Wikilink:
		writeBracketed(sb, "[[", n.ID, n.Label)
	case *mdast.Embed:
		writeBracketed(sb, "![[", n.ID, n.Label)
	case *mdast.Tag:
		sb.WriteByte('#')
		sb.WriteString(n.Name)
	}
}

func writeBracketed(sb *strings.Builder, open, id, text string) {
	sb.WriteString(open)
	sb.WriteString(mdast.EscapeID(id))
	if text != "" && text != id {
		sb.WriteByte('|')
		sb.WriteString(mdast.EscapeText(text))
	}
	sb.WriteString("]]")
}

// Canonicalize rewrites every construct in a parsed document to its
// canonical form. Bytes outside construct spans are copied unchanged.
// root must come from parsing source.
func Canonicalize(source []byte, root ast.Node) []byte {
	nodes := mdast.Collect(root)
	if len(nodes) == 0 {
		return source
	}

	var out bytes.Buffer
	out.Grow(len(source))

	var sb strings.Builder
	last := 0
	for _, node := range nodes {
		span := node.Range()
		if span.IsEmpty() || span.StartOffset < last || span.EndOffset > len(source) {
			continue
		}
		out.Write(source[last:span.StartOffset])

		sb.Reset()
		WriteSource(&sb, node)
		out.WriteString(sb.String())
		last = span.EndOffset
	}
	out.Write(source[last:])

	return out.Bytes()
}
