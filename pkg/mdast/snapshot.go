// Package mdast provides the note construct AST for notemark.
// It defines:
//   - Token: classified spans of construct syntax
//   - Wikilink, Tag, Embed: goldmark inline nodes for the constructs
//   - Builder: the stack-owning tree builder that turns tokens into nodes
//   - FileSnapshot: a parsed file with its line index
package mdast

import "github.com/yuin/goldmark/ast"

// FileSnapshot is an immutable view of a parsed Markdown file.
// It holds the raw content, line metadata, construct tokens and AST root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the construct token stream in source order.
	Tokens []Token

	// Root is the goldmark document node.
	Root ast.Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Nodes returns the construct nodes of the snapshot in source order.
func (f *FileSnapshot) Nodes() []Node {
	return Collect(f.Root)
}
