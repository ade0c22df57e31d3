package syntax_test

import (
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/notemark/pkg/mdast"
	"github.com/yaklabco/notemark/pkg/syntax"
)

// FuzzTokenizers checks the atomic accept-or-reject contract: an accepted
// match covers exactly its tokens, and a rejection leaves no trace.
func FuzzTokenizers(f *testing.F) {
	seeds := []string{
		"[[123]]", "[[a|b]]", "[[a|]]", "![[x.png|y]]", "#hello!", "#0", `[[a\]b]]`,
		"[[[x]]]", "#a/b/", "[[", "![[", "# x", `\#x`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	tokenizers := []syntax.Tokenizer{
		syntax.NewWikilinkTokenizer(),
		syntax.NewEmbedTokenizer(),
		syntax.NewTagTokenizer(),
		syntax.NewTagTokenizer(syntax.WithPathStyle(true)),
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}
		src := []byte(input)

		for _, tok := range tokenizers {
			c := syntax.NewCursor(src, syntax.LineStart)
			m, ok := tok.Tokenize(c)
			if c.Pos() != 0 {
				t.Fatalf("%s moved the caller's cursor", tok.Name())
			}
			if !ok {
				if len(m.Tokens) != 0 || m.End != 0 {
					t.Fatalf("%s rejected with a partial match: %+v", tok.Name(), m)
				}
				continue
			}
			if m.Start != 0 || m.End <= m.Start || m.End > len(src) || m.Next.Pos() != m.End {
				t.Fatalf("%s returned bad bounds %d..%d", tok.Name(), m.Start, m.End)
			}
			if !mdast.ValidateTokens(m.Tokens, len(src)) {
				t.Fatalf("%s returned invalid tokens %+v", tok.Name(), m.Tokens)
			}
			if m.Tokens[0].StartOffset != m.Start || m.Tokens[len(m.Tokens)-1].EndOffset != m.End {
				t.Fatalf("%s tokens do not span the match", tok.Name())
			}
		}
	})
}
