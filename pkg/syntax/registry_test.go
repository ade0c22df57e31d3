package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/syntax"
)

func newRegistry(t *testing.T) *syntax.Registry {
	t.Helper()

	reg, err := syntax.NewRegistry(
		syntax.NewWikilinkTokenizer(),
		syntax.NewTagTokenizer(),
		syntax.NewEmbedTokenizer(),
	)
	require.NoError(t, err)
	return reg
}

type stubTokenizer struct {
	name    string
	trigger rune
}

func (s stubTokenizer) Name() string  { return s.name }
func (s stubTokenizer) Trigger() rune { return s.trigger }
func (s stubTokenizer) Tokenize(syntax.Cursor) (syntax.Match, bool) {
	return syntax.Match{}, false
}

func TestNewRegistry_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tokenizers []syntax.Tokenizer
	}{
		{"nil tokenizer", []syntax.Tokenizer{nil}},
		{"empty name", []syntax.Tokenizer{stubTokenizer{trigger: '@'}}},
		{"duplicate", []syntax.Tokenizer{syntax.NewTagTokenizer(), syntax.NewTagTokenizer()}},
		{"whitespace trigger", []syntax.Tokenizer{stubTokenizer{name: "x", trigger: ' '}}},
		{"non ascii trigger", []syntax.Tokenizer{stubTokenizer{name: "x", trigger: 'é'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := syntax.NewRegistry(tt.tokenizers...)
			require.ErrorIs(t, err, syntax.ErrInvalidTokenizer)
		})
	}
}

func TestRegistry_Dispatch(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)
	assert.Equal(t, []rune{'[', '#', '!'}, reg.Triggers())
	assert.Len(t, reg.Tokenizers(), 3)
	assert.Len(t, reg.Candidates('['), 1)
	assert.Empty(t, reg.Candidates('x'))

	m, ok := reg.Match(syntax.NewCursor([]byte("#tag"), syntax.LineStart))
	require.True(t, ok)
	assert.Equal(t, mdast.TokTagMarker, m.Tokens[0].Kind)

	_, ok = reg.Match(syntax.NewCursor([]byte("plain"), syntax.LineStart))
	assert.False(t, ok)
}

func TestRegistry_CandidateOrder(t *testing.T) {
	t.Parallel()

	// Both tokenizers trigger on '['; the stub always rejects so the
	// wikilink tokenizer still gets its turn.
	reg, err := syntax.NewRegistry(stubTokenizer{name: "stub", trigger: '['}, syntax.NewWikilinkTokenizer())
	require.NoError(t, err)
	assert.Len(t, reg.Candidates('['), 2)

	_, ok := reg.Match(syntax.NewCursor([]byte("[[a]]"), syntax.LineStart))
	assert.True(t, ok)
}

func TestRegistry_Scan(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t)

	type span struct {
		kind mdast.TokenKind
		text string
	}

	tests := []struct {
		name  string
		input string
		want  []span
	}{
		{
			name:  "plain",
			input: "hello",
			want:  []span{{mdast.TokText, "hello"}},
		},
		{
			name:  "tag then bang",
			input: "#hello!",
			want: []span{
				{mdast.TokTagMarker, "#"},
				{mdast.TokTagName, "hello"},
				{mdast.TokText, "!"},
			},
		},
		{
			name:  "escaped tag",
			input: `\#hello`,
			want:  []span{{mdast.TokText, "#hello"}},
		},
		{
			name:  "tag inside word",
			input: "#hello#world",
			want: []span{
				{mdast.TokTagMarker, "#"},
				{mdast.TokTagName, "hello"},
				{mdast.TokText, "#world"},
			},
		},
		{
			name:  "nested brackets",
			input: "[[[123]]]",
			want: []span{
				{mdast.TokText, "["},
				{mdast.TokWikilinkOpen, "[["},
				{mdast.TokWikilinkID, "123"},
				{mdast.TokWikilinkClose, "]]"},
				{mdast.TokText, "]"},
			},
		},
		{
			name:  "embed and link",
			input: "![[a.png]] [[b|c]]",
			want: []span{
				{mdast.TokEmbedOpen, "![["},
				{mdast.TokEmbedID, "a.png"},
				{mdast.TokEmbedClose, "]]"},
				{mdast.TokText, " "},
				{mdast.TokWikilinkOpen, "[["},
				{mdast.TokWikilinkID, "b"},
				{mdast.TokWikilinkSep, "|"},
				{mdast.TokWikilinkText, "c"},
				{mdast.TokWikilinkClose, "]]"},
			},
		},
		{
			name:  "rejected wikilink",
			input: "[[123|]]",
			want:  []span{{mdast.TokText, "[[123|]]"}},
		},
		{
			name:  "backslash before non trigger",
			input: `a\b`,
			want:  []span{{mdast.TokText, `a\b`}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.input)
			tokens := reg.Scan(src)
			require.True(t, mdast.ValidateTokens(tokens, len(src)))

			got := make([]span, len(tokens))
			for i, tok := range tokens {
				got[i] = span{tok.Kind, string(tok.Text(src))}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
