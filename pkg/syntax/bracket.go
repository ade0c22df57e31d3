package syntax

import (
	"github.com/yaklabco/notemark/pkg/charclass"
	"github.com/yaklabco/notemark/pkg/mdast"
)

// bracketState is a state of the bracketed construct FSM shared by
// wikilinks and embeds.
type bracketState uint8

const (
	stateBang      bracketState = iota // expecting '!' (embeds only)
	stateOpen1                         // expecting first '['
	stateOpen2                         // expecting second '['
	stateIDStart                       // expecting first id rune
	stateIDCont                        // inside id
	stateTextStart                     // expecting first text rune
	stateTextCont                      // inside text
	stateClose2                        // expecting second ']'
)

// bracketKinds are the token kinds one bracketed construct emits.
type bracketKinds struct {
	open, id, sep, text, close mdast.TokenKind
}

// bracketTokenizer recognizes [[id]], [[id|text]] and, with a bang prefix,
// ![[id]] and ![[id|text]].
type bracketTokenizer struct {
	name  string
	bang  bool
	kinds bracketKinds
}

// NewWikilinkTokenizer returns the tokenizer for [[id]] and [[id|text]].
func NewWikilinkTokenizer() Tokenizer {
	return &bracketTokenizer{
		name: "wikilink",
		kinds: bracketKinds{
			open:  mdast.TokWikilinkOpen,
			id:    mdast.TokWikilinkID,
			sep:   mdast.TokWikilinkSep,
			text:  mdast.TokWikilinkText,
			close: mdast.TokWikilinkClose,
		},
	}
}

// NewEmbedTokenizer returns the tokenizer for ![[id]] and ![[id|text]].
func NewEmbedTokenizer() Tokenizer {
	return &bracketTokenizer{
		name: "embed",
		bang: true,
		kinds: bracketKinds{
			open:  mdast.TokEmbedOpen,
			id:    mdast.TokEmbedID,
			sep:   mdast.TokEmbedSep,
			text:  mdast.TokEmbedText,
			close: mdast.TokEmbedClose,
		},
	}
}

// Name implements Tokenizer.
func (t *bracketTokenizer) Name() string { return t.name }

// Trigger implements Tokenizer.
func (t *bracketTokenizer) Trigger() rune {
	if t.bang {
		return charclass.Bang
	}
	return charclass.OpenBracket
}

// Tokenize implements Tokenizer.
//
//nolint:gocognit,cyclop,funlen // A flat state switch reads better than split helpers.
func (t *bracketTokenizer) Tokenize(c Cursor) (Match, bool) {
	if !charclass.IsLinkBoundary(c.Prev()) {
		return Match{}, false
	}

	start := c.Pos()
	state := stateOpen1
	if t.bang {
		state = stateBang
	}

	tokens := make([]mdast.Token, 0, 5)
	segStart := 0

	emit := func(kind mdast.TokenKind, from, to int) {
		tokens = append(tokens, mdast.Token{Kind: kind, StartOffset: from, EndOffset: to})
	}

	for {
		r := c.Peek()

		switch state {
		case stateBang:
			if !charclass.IsBang(r) {
				return Match{}, false
			}
			state = stateOpen1

		case stateOpen1:
			if !charclass.IsOpenBracket(r) {
				return Match{}, false
			}
			state = stateOpen2

		case stateOpen2:
			if !charclass.IsOpenBracket(r) {
				return Match{}, false
			}
			c = c.Next()
			emit(t.kinds.open, start, c.Pos())
			segStart = c.Pos()
			state = stateIDStart
			continue

		case stateIDStart, stateIDCont:
			if isEscape(c) {
				c = c.Next().Next()
				state = stateIDCont
				continue
			}
			switch {
			case charclass.IsIDChar(r):
				state = stateIDCont
			case state == stateIDCont && charclass.IsPipe(r):
				emit(t.kinds.id, segStart, c.Pos())
				c = c.Next()
				emit(t.kinds.sep, c.Pos()-1, c.Pos())
				segStart = c.Pos()
				state = stateTextStart
				continue
			case state == stateIDCont && charclass.IsCloseBracket(r):
				emit(t.kinds.id, segStart, c.Pos())
				segStart = c.Pos()
				state = stateClose2
			default:
				return Match{}, false
			}

		case stateTextStart, stateTextCont:
			if isEscape(c) {
				c = c.Next().Next()
				state = stateTextCont
				continue
			}
			switch {
			case charclass.IsDisplayTextChar(r):
				state = stateTextCont
			case state == stateTextCont && charclass.IsCloseBracket(r):
				emit(t.kinds.text, segStart, c.Pos())
				segStart = c.Pos()
				state = stateClose2
			default:
				// Covers "[[id|]]": empty text is rejected.
				return Match{}, false
			}

		case stateClose2:
			if !charclass.IsCloseBracket(r) {
				return Match{}, false
			}
			c = c.Next()
			emit(t.kinds.close, segStart, c.Pos())
			return Match{Start: start, End: c.Pos(), Tokens: tokens, Next: c}, true
		}

		c = c.Next()
	}
}

// isEscape reports whether c is at a backslash that makes the following
// reserved rune literal.
func isEscape(c Cursor) bool {
	return charclass.IsBackslash(c.Peek()) && charclass.IsEscapable(c.PeekNext())
}
