package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/notemark/pkg/syntax"
)

func TestTagTokenizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		prev  rune
		want  string // expected name; empty means rejected
	}{
		{name: "ascii", input: "#hello", want: "hello"},
		{name: "upper", input: "#HELLO", want: "HELLO"},
		{name: "dash", input: "#hello-world", want: "hello-world"},
		{name: "underscore", input: "#hello_world", want: "hello_world"},
		{name: "digits after letter", input: "#tag0123456789", want: "tag0123456789"},
		{name: "stops at bang", input: "#hello!", want: "hello"},
		{name: "stops at space", input: "#hello world", want: "hello"},
		{name: "stops at hash", input: "#hello#world", want: "hello"},
		{name: "stops at slash", input: "#a/b", want: "a"},
		{name: "cyrillic", input: "#Привет!", want: "Привет"},
		{name: "hebrew", input: "#שלום", want: "שלום"},
		{name: "arabic", input: "#مرحبا!", want: "مرحبا"},
		{name: "devanagari", input: "#नमस्ते", want: "नमस्ते"},
		{name: "hangul", input: "#안녕하세요", want: "안녕하세요"},
		{name: "greek", input: "#Γειάσου", want: "Γειάσου"},
		{name: "armenian", input: "#Բարեւ", want: "Բարեւ"},
		{name: "cjk", input: "#你好!", want: "你好"},
		{name: "vietnamese", input: "#xinchào", want: "xinchào"},
		{name: "after tab", input: "#x", prev: '\t', want: "x"},

		{name: "bare hash", input: "#"},
		{name: "heading", input: "# hello"},
		{name: "leading digit", input: "#0123456789"},
		{name: "double hash", input: "##hello"},
		{name: "after underscore", input: "#hello", prev: '_'},
		{name: "after letter", input: "#hello", prev: 'o'},
		{name: "after bracket", input: "#hello", prev: '['},
		{name: "leading dash", input: "#-x"},
	}

	tokenizer := syntax.NewTagTokenizer()
	assert.Equal(t, "tag", tokenizer.Name())
	assert.Equal(t, '#', tokenizer.Trigger())
	assert.False(t, tokenizer.PathStyle())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prev := tt.prev
			if prev == 0 {
				prev = syntax.LineStart
			}
			src := []byte(tt.input)
			m, ok := tokenizer.Tokenize(syntax.NewCursor(src, prev))

			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Len(t, m.Tokens, 2)
			assert.Equal(t, tt.want, string(m.Tokens[1].Text(src)))
			assert.Equal(t, len(tt.want)+1, m.End)
			assert.Equal(t, m.End, m.Next.Pos())
		})
	}
}

func TestTagTokenizer_PathStyle(t *testing.T) {
	t.Parallel()

	tokenizer := syntax.NewTagTokenizer(syntax.WithPathStyle(true))
	require.True(t, tokenizer.PathStyle())

	tests := []struct {
		input string
		want  string
	}{
		{"#area/topic", "area/topic"},
		{"#a/b/c d", "a/b/c"},
		{"#area/", "area"},
		{"#area//", "area"},
		{"#a//b", "a//b"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.input)
			m, ok := tokenizer.Tokenize(syntax.NewCursor(src, syntax.LineStart))
			require.True(t, ok)
			assert.Equal(t, tt.want, string(m.Tokens[1].Text(src)))
			assert.NotEqual(t, byte('/'), src[m.End-1])
		})
	}
}
