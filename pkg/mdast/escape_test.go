package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/notemark/pkg/mdast"
)

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{`plain`, `plain`},
		{`a\]b`, `a]b`},
		{`a\[b\|c`, `a[b|c`},
		{`a\b`, `a\b`},
		{`trailing\`, `trailing\`},
		{`\\]`, `\]`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.Unescape([]byte(tt.raw)))
		})
	}
}

func TestEscapeID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", mdast.EscapeID("abc"))
	assert.Equal(t, `a\]b\|c\[`, mdast.EscapeID("a]b|c["))
}

func TestEscapeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"hello world", "hello world"},
		{"a]b", `a\]b`},
		{"a[b|c", "a[b|c"},
		{`a\[b`, `a\\[b`},
		{`x\|y`, `x\\|y`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.EscapeText(tt.text))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"a]b", "x|y", "[z]", `p\q`, "plain"} {
		assert.Equal(t, value, mdast.Unescape([]byte(mdast.EscapeID(value))), value)
	}
	for _, value := range []string{"a]b", "x|y", "[z]", `p\q`, `p\[q`, "plain"} {
		assert.Equal(t, value, mdast.Unescape([]byte(mdast.EscapeText(value))), value)
	}
}
