package syntax

import (
	"errors"
	"fmt"

	"github.com/yaklabco/notemark/pkg/charclass"
	"github.com/yaklabco/notemark/pkg/mdast"
)

// ErrInvalidTokenizer is returned when a tokenizer cannot be registered.
var ErrInvalidTokenizer = errors.New("invalid tokenizer")

// Registry maps trigger runes to the tokenizers that may start there.
// Candidates for one trigger are tried in registration order.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	byTrigger  map[rune][]Tokenizer
	tokenizers []Tokenizer
}

// NewRegistry registers the tokenizers in order.
// It fails on a nil tokenizer, an empty or duplicate name, or a trigger
// that is not a printable ASCII rune.
func NewRegistry(tokenizers ...Tokenizer) (*Registry, error) {
	reg := &Registry{byTrigger: make(map[rune][]Tokenizer)}
	seen := make(map[string]bool, len(tokenizers))

	for i, tok := range tokenizers {
		if tok == nil {
			return nil, fmt.Errorf("tokenizer %d is nil: %w", i, ErrInvalidTokenizer)
		}
		name := tok.Name()
		if name == "" {
			return nil, fmt.Errorf("tokenizer %d has no name: %w", i, ErrInvalidTokenizer)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate tokenizer %q: %w", name, ErrInvalidTokenizer)
		}
		trigger := tok.Trigger()
		if trigger <= ' ' || trigger > '~' {
			return nil, fmt.Errorf("tokenizer %q has trigger %q: %w", name, trigger, ErrInvalidTokenizer)
		}

		seen[name] = true
		reg.byTrigger[trigger] = append(reg.byTrigger[trigger], tok)
		reg.tokenizers = append(reg.tokenizers, tok)
	}

	return reg, nil
}

// Tokenizers returns the registered tokenizers in registration order.
func (r *Registry) Tokenizers() []Tokenizer {
	return r.tokenizers
}

// Triggers returns the distinct trigger runes in registration order.
func (r *Registry) Triggers() []rune {
	triggers := make([]rune, 0, len(r.byTrigger))
	seen := make(map[rune]bool, len(r.byTrigger))
	for _, tok := range r.tokenizers {
		if !seen[tok.Trigger()] {
			seen[tok.Trigger()] = true
			triggers = append(triggers, tok.Trigger())
		}
	}
	return triggers
}

// Candidates returns the tokenizers registered for trigger.
func (r *Registry) Candidates(trigger rune) []Tokenizer {
	return r.byTrigger[trigger]
}

// Match tries every candidate for the rune at c and returns the first
// accepted match.
func (r *Registry) Match(c Cursor) (Match, bool) {
	for _, tok := range r.byTrigger[c.Peek()] {
		if m, ok := tok.Tokenize(c); ok {
			return m, true
		}
	}
	return Match{}, false
}

// Scan tokenizes a whole line of text without a host grammar.
// Construct matches are emitted as their tokens. A backslash before a
// trigger rune makes the trigger literal; the backslash itself is dropped
// from the output. Everything else becomes TokText runs.
func (r *Registry) Scan(src []byte) []mdast.Token {
	var tokens []mdast.Token

	c := NewCursor(src, LineStart)
	textStart := -1

	flush := func(end int) {
		if textStart >= 0 && end > textStart {
			tokens = append(tokens, mdast.Token{Kind: mdast.TokText, StartOffset: textStart, EndOffset: end})
		}
		textStart = -1
	}

	for !c.AtEOF() {
		if m, ok := r.Match(c); ok {
			flush(c.Pos())
			tokens = append(tokens, m.Tokens...)
			c = m.Next
			continue
		}

		if charclass.IsBackslash(c.Peek()) && r.isTrigger(c.PeekNext()) {
			flush(c.Pos())
			c = c.Next()
			textStart = c.Pos()
		} else if textStart < 0 {
			textStart = c.Pos()
		}
		c = c.Next()
	}
	flush(c.Pos())

	return tokens
}

func (r *Registry) isTrigger(ch rune) bool {
	_, ok := r.byTrigger[ch]
	return ok
}
