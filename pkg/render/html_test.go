package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/yaklabco/notemark/pkg/pipeline"
	"github.com/yaklabco/notemark/pkg/render"
)

func toHTML(t *testing.T, input string, opts ...render.HTMLOption) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(pipeline.Default().Extender(opts...)))
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(input), &buf))
	return buf.String()
}

func TestHTMLRenderer_Elements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"[[a|b]]", `<p><wikilink id="a" text="b"/></p>` + "\n"},
		{"#t", `<p><tag name="t"/></p>` + "\n"},
		{"![[a]]", `<p><embed id="a" text="a"/></p>` + "\n"},
		{"[[a&b]]", `<p><wikilink id="a&amp;b" text="a&amp;b"/></p>` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, toHTML(t, tt.input))
		})
	}
}

func TestHTMLRenderer_Anchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"[[Note]]", `<p><a class="wikilink" href="Note.html">Note</a></p>` + "\n"},
		{"[[a&b|x]]", `<p><a class="wikilink" href="a&amp;b.html">x</a></p>` + "\n"},
		{"#todo", `<p><span class="tag" data-tag="todo">#todo</span></p>` + "\n"},
		{"![[chart.png|Chart]]", `<p><img class="embed" src="chart.png" alt="Chart"></p>` + "\n"},
		{"![[Other note]]", `<p><a class="embed embed-note" href="Other%20note.html">Other note</a></p>` + "\n"},
		{"![[main.go]]", `<p><a class="embed embed-code" href="main.go">main.go</a></p>` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, toHTML(t, tt.input, render.WithAnchors(".html")))
		})
	}
}
