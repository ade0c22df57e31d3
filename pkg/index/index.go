// Package index extracts wikilink, tag and embed references from parsed
// notes and aggregates them into a link graph.
package index

import (
	"github.com/yaklabco/notemark/pkg/langdetect"
	"github.com/yaklabco/notemark/pkg/mdast"
)

// Ref is one construct occurrence in a file.
type Ref struct {
	// Kind is "wikilink", "tag" or "embed".
	Kind string `json:"kind"`

	// Target is the link or embed ID, or the tag name.
	Target string `json:"target"`

	// Text is the display text when it differs from Target.
	Text string `json:"text,omitempty"`

	Line   int `json:"line"`
	Column int `json:"column"`

	// Embed classifies the target of an embed.
	Embed *langdetect.Target `json:"embed,omitempty"`
}

// IsLink reports whether the ref points at a note.
func (r Ref) IsLink() bool {
	switch r.Kind {
	case mdast.ConstructWikilink.String():
		return true
	case mdast.ConstructEmbed.String():
		return r.Embed != nil && r.Embed.Kind == langdetect.KindNote
	default:
		return false
	}
}

// File holds the references of one note, in source order.
type File struct {
	Path string `json:"path"`
	Refs []Ref  `json:"refs"`
}

// FromSnapshot extracts the references of a parsed file.
func FromSnapshot(snapshot *mdast.FileSnapshot) *File {
	file := &File{Path: snapshot.Path, Refs: []Ref{}}

	for _, node := range snapshot.Nodes() {
		pos := snapshot.PositionOf(node).Start()
		ref := Ref{
			Kind:   node.Construct().String(),
			Line:   pos.Line,
			Column: pos.Column,
		}

		switch n := node.(type) {
		case *mdast.Wikilink:
			ref.Target = n.ID
			ref.Text = displayText(n.ID, n.Label)
		case *mdast.Tag:
			ref.Target = n.Name
		case *mdast.Embed:
			ref.Target = n.ID
			ref.Text = displayText(n.ID, n.Label)
			target := langdetect.Classify(n.ID)
			ref.Embed = &target
		}

		file.Refs = append(file.Refs, ref)
	}

	return file
}

// Count returns the number of refs of the given kind.
func (f *File) Count(kind mdast.ConstructKind) int {
	count := 0
	for _, ref := range f.Refs {
		if ref.Kind == kind.String() {
			count++
		}
	}
	return count
}

func displayText(id, text string) string {
	if text == id {
		return ""
	}
	return text
}
