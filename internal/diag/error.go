package diag

import (
	"errors"
	"fmt"

	"mmfront/internal/source"
)

// Error is the terminal failure of a pipeline stage. It carries the
// diagnostic, the path of the file the primary span belongs to and, for IO
// failures, the underlying cause.
type Error struct {
	Diagnostic
	Path string
	Err  error
}

// Errorf builds an *Error with SevError severity.
func Errorf(code Code, primary source.Span, path, format string, args ...any) *Error {
	return &Error{
		Diagnostic: NewError(code, primary, fmt.Sprintf(format, args...)),
		Path:       path,
	}
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Code.ID(), e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Kind returns the failure family of the error.
func (e *Error) Kind() Kind { return e.Code.Kind() }

// WithCause attaches an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// WithNote appends a note to the wrapped diagnostic.
func (e *Error) WithNote(sp source.Span, msg string) *Error {
	e.Diagnostic = e.Diagnostic.WithNote(sp, msg)
	return e
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code of err, or UnknownCode.
func CodeOf(err error) Code {
	if de, ok := AsError(err); ok {
		return de.Code
	}
	return UnknownCode
}

// IsKind reports whether err is an *Error of the given family.
func IsKind(err error, kind Kind) bool {
	de, ok := AsError(err)
	return ok && de.Kind() == kind
}

// FromLoadError wraps a failed source load into an *Error with the matching
// IO code. primary is the span that asked for the file (the file name of an
// inclusion directive), or an empty span for the top-level file.
func FromLoadError(err error, primary source.Span, path string) *Error {
	var le *source.LoadError
	if !errors.As(err, &le) {
		return Errorf(IOLoadFileError, primary, path, "%v", err).WithCause(err)
	}
	code := IOLoadFileError
	switch le.Kind {
	case source.LoadNotFound:
		code = IONotFound
	case source.LoadPermissionDenied:
		code = IOPermissionDenied
	case source.LoadDecode:
		code = IODecodeError
	}
	return Errorf(code, primary, path, "cannot read %q: %s", le.Path, le.Kind).WithCause(err)
}
