package driver

import (
	"bytes"
	"strconv"

	"mmfront/internal/diag"
	"mmfront/internal/source"
)

// LineCount is the number of lines in a file. A final newline is reported
// separately instead of opening another line.
type LineCount struct {
	Lines           int
	TrailingNewline bool
}

// String renders the count as "N" or "N+1".
func (c LineCount) String() string {
	s := strconv.Itoa(c.Lines)
	if c.TrailingNewline {
		s += "+1"
	}
	return s
}

// CountLines counts the lines of path, not counting the empty line after a
// trailing newline.
func CountLines(path string) (LineCount, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return LineCount{}, diag.FromLoadError(err, source.Span{}, path)
	}
	return countLines(fs.Get(id).Content), nil
}

func countLines(content []byte) LineCount {
	if len(content) == 0 {
		return LineCount{}
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] == '\n' {
		return LineCount{Lines: n, TrailingNewline: true}
	}
	return LineCount{Lines: n + 1}
}
