// Package pipeline wires the note constructs into a goldmark Markdown
// pipeline. The host grammar (blocks, emphasis, code spans, links) stays
// goldmark's; the pipeline adds one inline parser that dispatches on the
// construct triggers and one node renderer for the construct nodes.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/notemark/pkg/config"
	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/render"
	"github.com/yaklabco/notemark/pkg/syntax"
)

// ErrInvalidConstruct is returned by New for a malformed construct.
var ErrInvalidConstruct = errors.New("invalid construct")

// Goldmark priorities. Lower values run first; the link parser is 200, so
// constructs see '[' and '!' before it does.
const (
	inlineParserPriority = 199
	nodeRendererPriority = 500
)

// Pipeline is an explicit, immutable set of constructs.
// It is safe for concurrent use once built.
type Pipeline struct {
	constructs []Construct
	byKind     map[mdast.ConstructKind]Construct
	registry   *syntax.Registry
}

// New validates the constructs and builds a pipeline.
// Registration order decides which construct is tried first when two
// share a trigger.
func New(constructs ...Construct) (*Pipeline, error) {
	p := &Pipeline{byKind: make(map[mdast.ConstructKind]Construct, len(constructs))}
	tokenizers := make([]syntax.Tokenizer, 0, len(constructs))

	for i, c := range constructs {
		switch {
		case c.Name == "":
			return nil, fmt.Errorf("construct %d has no name: %w", i, ErrInvalidConstruct)
		case c.Tokenizer == nil:
			return nil, fmt.Errorf("construct %q has no tokenizer: %w", c.Name, ErrInvalidConstruct)
		case c.Tokenizer.Name() != c.Name:
			return nil, fmt.Errorf("construct %q uses tokenizer %q: %w", c.Name, c.Tokenizer.Name(), ErrInvalidConstruct)
		case c.Tokenizer.Trigger() != c.Trigger:
			return nil, fmt.Errorf("construct %q triggers on %q but its tokenizer on %q: %w",
				c.Name, c.Trigger, c.Tokenizer.Trigger(), ErrInvalidConstruct)
		case c.Kind == mdast.ConstructNone:
			return nil, fmt.Errorf("construct %q has no node kind: %w", c.Name, ErrInvalidConstruct)
		}
		if _, dup := p.byKind[c.Kind]; dup {
			return nil, fmt.Errorf("construct %q: %s registered twice: %w", c.Name, c.Kind, ErrInvalidConstruct)
		}

		p.byKind[c.Kind] = c
		p.constructs = append(p.constructs, c)
		tokenizers = append(tokenizers, c.Tokenizer)
	}

	registry, err := syntax.NewRegistry(tokenizers...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConstruct, err)
	}
	p.registry = registry

	return p, nil
}

// Default returns a pipeline with all three constructs.
func Default() *Pipeline {
	p, err := New(Defaults()...)
	if err != nil {
		panic(err) // built-in constructs are always valid
	}
	return p
}

// FromConfig builds a pipeline with the constructs enabled in cfg.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	if cfg == nil {
		return New(Defaults()...)
	}

	var constructs []Construct
	if cfg.WikilinksEnabled() {
		constructs = append(constructs, Wikilink())
	}
	if cfg.TagsEnabled() {
		constructs = append(constructs, Tag(syntax.WithPathStyle(cfg.TagPathStyle())))
	}
	if cfg.EmbedsEnabled() {
		constructs = append(constructs, Embed())
	}

	return New(constructs...)
}

// Constructs returns the registered constructs in order.
func (p *Pipeline) Constructs() []Construct {
	return p.constructs
}

// Registry returns the trigger registry.
func (p *Pipeline) Registry() *syntax.Registry {
	return p.registry
}

// Serialize writes node back as source using its construct's serializer.
func (p *Pipeline) Serialize(node mdast.Node) string {
	if c, ok := p.byKind[node.Construct()]; ok && c.Serialize != nil {
		return c.Serialize(node)
	}
	return render.Serialize(node)
}

// Extend implements goldmark.Extender with the element HTML form.
func (p *Pipeline) Extend(m goldmark.Markdown) {
	p.Extender().Extend(m)
}

// Extender returns a goldmark extender whose node renderer uses opts.
func (p *Pipeline) Extender(opts ...render.HTMLOption) goldmark.Extender {
	return &extender{pipeline: p, htmlOpts: opts}
}

type extender struct {
	pipeline *Pipeline
	htmlOpts []render.HTMLOption
}

func (e *extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(newInlineParser(e.pipeline), inlineParserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(render.NewHTMLRenderer(e.htmlOpts...), nodeRendererPriority),
	))
}
