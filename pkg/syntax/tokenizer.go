// Package syntax implements the character-level recognizers for the note
// constructs: atomic finite-state tokenizers for wikilinks, tags and
// embeds, and a registry that dispatches on trigger runes.
//
// A tokenizer either consumes a complete construct or nothing. Rejection is
// ordinary control flow: the input degrades to literal text.
package syntax

import "github.com/yaklabco/notemark/pkg/mdast"

// Tokenizer recognizes one construct starting at a cursor.
type Tokenizer interface {
	// Name identifies the construct, e.g. "wikilink".
	Name() string

	// Trigger is the rune a construct occurrence starts with.
	Trigger() rune

	// Tokenize tries to recognize a construct at c. On success it returns
	// the match and true; on failure it returns false and c is unchanged.
	Tokenize(c Cursor) (Match, bool)
}

// Match is one accepted construct occurrence.
type Match struct {
	// Start and End delimit the consumed bytes, markers included.
	Start int
	End   int

	// Tokens are the classified spans of the occurrence in source order.
	Tokens []mdast.Token

	// Next is the cursor just past the construct.
	Next Cursor
}

// Len returns the number of bytes consumed.
func (m Match) Len() int {
	return m.End - m.Start
}

// Shift returns a copy of the match with every offset moved by delta.
// Hosts that tokenize a line slice use it to map offsets back to the
// document.
func (m Match) Shift(delta int) Match {
	tokens := make([]mdast.Token, len(m.Tokens))
	for i, tok := range m.Tokens {
		tok.StartOffset += delta
		tok.EndOffset += delta
		tokens[i] = tok
	}
	return Match{Start: m.Start + delta, End: m.End + delta, Tokens: tokens, Next: m.Next}
}
