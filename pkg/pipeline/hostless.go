package pipeline

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/render"
)

// ParseInline parses one line of text without a host grammar, for inputs
// such as note titles where block structure and emphasis do not apply.
// The returned paragraph holds text segments and construct nodes in
// source order.
func (p *Pipeline) ParseInline(src []byte) (*ast.Paragraph, []mdast.Token, error) {
	para := ast.NewParagraph()
	tokens := p.registry.Scan(src)
	builder := mdast.NewBuilder(src, para)

	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if tok.Kind == mdast.TokText {
			para.AppendChild(para, ast.NewTextSegment(text.NewSegment(tok.StartOffset, tok.EndOffset)))
			i++
			continue
		}

		end := i + 1
		for end < len(tokens) && tokens[end].Kind != mdast.TokText && !tokens[end].Kind.IsOpen() {
			end++
		}
		if _, err := builder.Feed(tokens[i:end]); err != nil {
			return nil, nil, fmt.Errorf("build %s at %d: %w", tok.Kind.Construct(), tok.StartOffset, err)
		}
		i = end
	}

	if err := builder.Close(); err != nil {
		return nil, nil, err
	}

	return para, tokens, nil
}

// RenderInline parses src with ParseInline and writes its HTML to w,
// without a surrounding paragraph element.
func (p *Pipeline) RenderInline(w io.Writer, src []byte, opts ...render.HTMLOption) error {
	para, _, err := p.ParseInline(src)
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(), 1000),
		util.Prioritized(render.NewHTMLRenderer(opts...), nodeRendererPriority),
	))
	for child := para.FirstChild(); child != nil; child = child.NextSibling() {
		if err := r.Render(w, src, child); err != nil {
			return fmt.Errorf("render inline: %w", err)
		}
	}

	return nil
}
