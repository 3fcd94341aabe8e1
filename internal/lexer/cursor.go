package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"mmfront/internal/source"
)

// Cursor walks the bytes of one file, word by word.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; len(File.Content) by default.
	Limit uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: content too large: %w", f.Path, err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF reports whether the cursor reached Limit.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// SkipSpace steps over whitespace and reports how many bytes it skipped.
func (c *Cursor) SkipSpace() uint32 {
	return c.skip(isSpace)
}

// Word consumes the maximal run of non-whitespace bytes at the cursor. At
// whitespace or EOF it returns an empty span at the cursor and "".
func (c *Cursor) Word() (source.Span, string) {
	start := c.Off
	c.skip(isWordByte)
	return source.Span{File: c.File.ID, Start: start, End: c.Off}, string(c.File.Content[start:c.Off])
}

// Here is the empty span at the cursor.
func (c *Cursor) Here() source.Span {
	return source.At(c.File.ID, c.Off)
}

func (c *Cursor) skip(pred func(byte) bool) uint32 {
	start := c.Off
	for c.Off < c.Limit && pred(c.File.Content[c.Off]) {
		c.Off++
	}
	return c.Off - start
}
