package syntax

import (
	"unicode/utf8"

	"github.com/yaklabco/notemark/pkg/charclass"
)

// LineStart is the previous rune reported at the start of input.
const LineStart = '\n'

// Cursor is an immutable position in a byte slice of UTF-8 text.
// Advancing returns a new cursor, so a tokenizer that rejects simply drops
// its copy and the caller's cursor is untouched.
type Cursor struct {
	src  []byte
	pos  int
	prev rune
}

// NewCursor returns a cursor at the start of src. prev is the rune consumed
// immediately before src, or LineStart when src begins a line.
func NewCursor(src []byte, prev rune) Cursor {
	return Cursor{src: src, prev: prev}
}

// CursorAt returns a cursor at byte offset pos of src, deriving the
// previous rune from the bytes before pos.
func CursorAt(src []byte, pos int) Cursor {
	if pos <= 0 {
		return Cursor{src: src, prev: LineStart}
	}
	if pos > len(src) {
		pos = len(src)
	}
	prev, _ := utf8.DecodeLastRune(src[:pos])
	return Cursor{src: src, pos: pos, prev: prev}
}

// Pos returns the byte offset of the cursor.
func (c Cursor) Pos() int { return c.pos }

// Prev returns the rune consumed immediately before the cursor.
func (c Cursor) Prev() rune { return c.prev }

// Source returns the underlying bytes.
func (c Cursor) Source() []byte { return c.src }

// AtEOF reports whether the cursor is at the end of input.
func (c Cursor) AtEOF() bool { return c.pos >= len(c.src) }

// Peek returns the rune at the cursor, or charclass.EOF.
func (c Cursor) Peek() rune {
	if c.pos >= len(c.src) {
		return charclass.EOF
	}
	r, _ := utf8.DecodeRune(c.src[c.pos:])
	return r
}

// Next returns the cursor advanced past one rune. At EOF it returns c.
func (c Cursor) Next() Cursor {
	if c.pos >= len(c.src) {
		return c
	}
	r, size := utf8.DecodeRune(c.src[c.pos:])
	return Cursor{src: c.src, pos: c.pos + size, prev: r}
}

// PeekNext returns the rune after the one at the cursor.
func (c Cursor) PeekNext() rune {
	return c.Next().Peek()
}
