// Package render turns note construct nodes back into text: HTML through a
// goldmark node renderer, and canonical Markdown source for formatting.
package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/notemark/pkg/langdetect"
	"github.com/yaklabco/notemark/pkg/mdast"
)

// HTMLOption configures the HTML renderer.
type HTMLOption func(*HTMLRenderer)

// WithAnchors switches from the element form (<wikilink id=".." text=".."/>)
// to browser-ready markup: wikilinks and non-image embeds become anchors
// whose href is the id plus suffix, image embeds become <img> and tags
// become spans.
func WithAnchors(suffix string) HTMLOption {
	return func(r *HTMLRenderer) {
		r.anchors = true
		r.suffix = suffix
	}
}

// HTMLRenderer renders Wikilink, Tag and Embed nodes.
type HTMLRenderer struct {
	anchors bool
	suffix  string
}

// NewHTMLRenderer returns a renderer for the note construct nodes.
func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(mdast.KindWikilink, r.renderWikilink)
	reg.Register(mdast.KindTag, r.renderTag)
	reg.Register(mdast.KindEmbed, r.renderEmbed)
}

func (r *HTMLRenderer) renderWikilink(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*mdast.Wikilink)

	if r.anchors {
		_, _ = w.WriteString(`<a class="wikilink" href="`)
		r.writeHref(w, n.ID)
		_, _ = w.WriteString(`">`)
		writeEscaped(w, n.Label)
		_, _ = w.WriteString(`</a>`)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<wikilink id="`)
	writeEscaped(w, n.ID)
	_, _ = w.WriteString(`" text="`)
	writeEscaped(w, n.Label)
	_, _ = w.WriteString(`"/>`)
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) renderTag(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*mdast.Tag)

	if r.anchors {
		_, _ = w.WriteString(`<span class="tag" data-tag="`)
		writeEscaped(w, n.Name)
		_, _ = w.WriteString(`">#`)
		writeEscaped(w, n.Name)
		_, _ = w.WriteString(`</span>`)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<tag name="`)
	writeEscaped(w, n.Name)
	_, _ = w.WriteString(`"/>`)
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) renderEmbed(
	w util.BufWriter, _ []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*mdast.Embed)

	if !r.anchors {
		_, _ = w.WriteString(`<embed id="`)
		writeEscaped(w, n.ID)
		_, _ = w.WriteString(`" text="`)
		writeEscaped(w, n.Label)
		_, _ = w.WriteString(`"/>`)
		return ast.WalkSkipChildren, nil
	}

	target := langdetect.Classify(n.ID)
	if target.Kind == langdetect.KindImage {
		_, _ = w.WriteString(`<img class="embed" src="`)
		writeURL(w, n.ID)
		_, _ = w.WriteString(`" alt="`)
		writeEscaped(w, n.Label)
		_, _ = w.WriteString(`">`)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<a class="embed embed-`)
	_, _ = w.WriteString(string(target.Kind))
	_, _ = w.WriteString(`" href="`)
	if target.Kind == langdetect.KindNote {
		r.writeHref(w, n.ID)
	} else {
		writeURL(w, n.ID)
	}
	_, _ = w.WriteString(`">`)
	writeEscaped(w, n.Label)
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

func (r *HTMLRenderer) writeHref(w util.BufWriter, id string) {
	writeURL(w, id+r.suffix)
}

func writeEscaped(w util.BufWriter, s string) {
	_, _ = w.Write(util.EscapeHTML([]byte(s)))
}

func writeURL(w util.BufWriter, s string) {
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(s), false)))
}
