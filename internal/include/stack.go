package include

import (
	"slices"

	"mmfront/internal/lexer"
	"mmfront/internal/source"
)

// Frame is one open file on the inclusion stack.
type Frame struct {
	Path      string // canonical key, see source.ResolvePath
	File      source.FileID
	Lexer     *lexer.Lexer
	Directive source.Span // "$[" that opened the file; empty for the root
}

// Stack is the ordered list of files currently open. Membership is checked
// linearly, which is O(depth).
type Stack struct {
	frames []Frame
}

// Push opens f on top of the stack.
func (s *Stack) Push(f Frame) { s.frames = append(s.frames, f) }

// Pop closes the top frame. It panics on an empty stack.
func (s *Stack) Pop() Frame {
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Top returns the innermost open file.
func (s *Stack) Top() (*Frame, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return &s.frames[len(s.frames)-1], true
}

// Depth is the number of open files.
func (s *Stack) Depth() int { return len(s.frames) }

// Contains reports whether path is open.
func (s *Stack) Contains(path string) bool {
	return slices.ContainsFunc(s.frames, func(f Frame) bool { return f.Path == path })
}

// Paths lists the open files from outermost to innermost.
func (s *Stack) Paths() []string {
	out := make([]string, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Path
	}
	return out
}
