package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/notemark/pkg/charclass"
	"github.com/yaklabco/notemark/pkg/syntax"
)

func TestCursor_Walk(t *testing.T) {
	t.Parallel()

	c := syntax.NewCursor([]byte("aé#"), syntax.LineStart)
	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, '\n', c.Prev())
	assert.Equal(t, 'a', c.Peek())
	assert.Equal(t, 'é', c.PeekNext())

	c = c.Next()
	assert.Equal(t, 1, c.Pos())
	assert.Equal(t, 'a', c.Prev())

	c = c.Next()
	assert.Equal(t, 3, c.Pos())
	assert.Equal(t, 'é', c.Prev())
	assert.Equal(t, '#', c.Peek())

	c = c.Next()
	assert.True(t, c.AtEOF())
	assert.Equal(t, charclass.EOF, c.Peek())
	assert.Equal(t, c, c.Next())
}

func TestCursorAt(t *testing.T) {
	t.Parallel()

	src := []byte("ab #c")

	assert.Equal(t, '\n', syntax.CursorAt(src, 0).Prev())
	assert.Equal(t, ' ', syntax.CursorAt(src, 3).Prev())
	assert.Equal(t, '#', syntax.CursorAt(src, 3).Peek())
	assert.True(t, syntax.CursorAt(src, 99).AtEOF())
}

func TestCursor_ValueSemantics(t *testing.T) {
	t.Parallel()

	c := syntax.NewCursor([]byte("xyz"), ' ')
	advanced := c.Next().Next()

	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, 2, advanced.Pos())
}
