package lexer

import (
	"fmt"

	"dndml/internal/source"

	"fortio.org/safecast"
)

// Cursor walks the bytes of one file.
type Cursor struct {
	file source.FileID
	src  []byte
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	if _, err := safecast.Conv[uint32](len(f.Content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{file: f.ID, src: f.Content}
}

func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.src)
}

// Peek returns the byte under the cursor, 0 at end of input.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt looks n bytes ahead without moving.
func (c *Cursor) PeekAt(n int) byte {
	i := int(c.Off) + n
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) BumpWhile(pred func(byte) bool) int {
	n := 0
	for !c.EOF() && pred(c.src[c.Off]) {
		c.Off++
		n++
	}
	return n
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Rest is the unread input.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:]
}

func (c *Cursor) SkipToEnd() {
	c.Off = uint32(len(c.src)) //nolint:gosec // checked in NewCursor
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}
