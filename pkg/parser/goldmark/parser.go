// Package goldmark provides the Markdown parser for notemark: goldmark's
// host grammar extended with the note construct pipeline.
package goldmark

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrInvalidTokens is returned when the recorded construct tokens are not
// ordered, in bounds and grouped by construct.
var ErrInvalidTokens = errors.New("invalid construct token stream")

// Parser parses Markdown files into snapshots.
// A Parser is safe for concurrent use.
type Parser struct {
	flavor   string
	pipeline *pipeline.Pipeline
	md       goldmark.Markdown
}

// New creates a parser for the given flavor and construct pipeline.
// Supported flavors are "commonmark" and "gfm"; invalid flavors default to
// "commonmark". A nil pipeline means pipeline.Default(). htmlOpts configure
// Render.
func New(flavor string, pipe *pipeline.Pipeline, htmlOpts ...render.HTMLOption) *Parser {
	f := flavorOrDefault(flavor)
	if pipe == nil {
		pipe = pipeline.Default()
	}
	return &Parser{
		flavor:   f,
		pipeline: pipe,
		md:       newGoldmarkInstance(f, pipe, htmlOpts),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Pipeline returns the construct pipeline.
func (p *Parser) Pipeline() *pipeline.Pipeline {
	return p.pipeline
}

// Parse converts raw Markdown bytes into a FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, and lines.
//  3. Parses content with goldmark and the construct pipeline.
//  4. Collects the construct tokens recorded during parsing.
//  5. Validates the token stream.
//
// Returns nil and an error if parsing fails or context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	pc := parser.NewContext()
	snapshot.Root = p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(pc))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Tokens = pipeline.Tokens(pc)
	if !mdast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidTokens)
	}

	return snapshot, nil
}

// Render writes the HTML for a parsed snapshot to w.
func (p *Parser) Render(w io.Writer, snapshot *FileSnapshot) error {
	if err := p.md.Renderer().Render(w, snapshot.Content, snapshot.Root); err != nil {
		return fmt.Errorf("render %s: %w", snapshot.Path, err)
	}
	return nil
}

// FileSnapshot is a type alias for mdast.FileSnapshot for convenience.
type FileSnapshot = mdast.FileSnapshot

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, pipe *pipeline.Pipeline, htmlOpts []render.HTMLOption) goldmark.Markdown {
	extensions := []goldmark.Extender{pipe.Extender(htmlOpts...)}

	switch flavor {
	case FlavorGFM:
		extensions = append(extensions, extension.GFM)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(goldmark.WithExtensions(extensions...))
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
