package syntax

import (
	"github.com/yaklabco/notemark/pkg/charclass"
	"github.com/yaklabco/notemark/pkg/mdast"
)

type tagState uint8

const (
	tagStateMarker    tagState = iota // expecting '#'
	tagStateNameStart                 // expecting a tag letter
	tagStateNameCont                  // inside the name
)

// TagOption configures the tag tokenizer.
type TagOption func(*TagTokenizer)

// WithPathStyle admits '/' inside tag names, as in #area/topic.
// A trailing '/' is never part of the name.
func WithPathStyle(enabled bool) TagOption {
	return func(t *TagTokenizer) {
		t.pathStyle = enabled
	}
}

// TagTokenizer recognizes #name.
type TagTokenizer struct {
	pathStyle bool
}

// NewTagTokenizer returns a tag tokenizer.
func NewTagTokenizer(opts ...TagOption) *TagTokenizer {
	t := &TagTokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PathStyle reports whether '/' is accepted in names.
func (t *TagTokenizer) PathStyle() bool { return t.pathStyle }

// Name implements Tokenizer.
func (t *TagTokenizer) Name() string { return "tag" }

// Trigger implements Tokenizer.
func (t *TagTokenizer) Trigger() rune { return charclass.Hash }

// Tokenize implements Tokenizer.
// The name ends at the first rune that is not a name rune; that rune is
// left for the host.
func (t *TagTokenizer) Tokenize(c Cursor) (Match, bool) {
	if !charclass.IsBoundary(c.Prev()) {
		return Match{}, false
	}

	start := c.Pos()
	state := tagStateMarker

	// end is the cursor after the last rune that may close the name.
	var end Cursor

	for {
		r := c.Peek()

		switch state {
		case tagStateMarker:
			if !charclass.IsHash(r) {
				return Match{}, false
			}
			state = tagStateNameStart

		case tagStateNameStart:
			if !charclass.IsTagNameStart(r) {
				return Match{}, false
			}
			state = tagStateNameCont
			end = c.Next()

		case tagStateNameCont:
			if !charclass.IsTagNameChar(r, t.pathStyle) {
				return t.accept(start, end), true
			}
			if r != '/' {
				end = c.Next()
			}
		}

		c = c.Next()
	}
}

func (t *TagTokenizer) accept(start int, end Cursor) Match {
	return Match{
		Start: start,
		End:   end.Pos(),
		Tokens: []mdast.Token{
			{Kind: mdast.TokTagMarker, StartOffset: start, EndOffset: start + 1},
			{Kind: mdast.TokTagName, StartOffset: start + 1, EndOffset: end.Pos()},
		},
		Next: end,
	}
}
