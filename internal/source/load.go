package source

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadErrorKind classifies why a SourceText could not be loaded.
type LoadErrorKind uint8

const (
	LoadOther LoadErrorKind = iota
	LoadNotFound
	LoadPermissionDenied
	LoadDecode
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadNotFound:
		return "not found"
	case LoadPermissionDenied:
		return "permission denied"
	case LoadDecode:
		return "invalid text"
	default:
		return "io error"
	}
}

// LoadError is returned by FileSet.Load.
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func newLoadError(path string, err error) *LoadError {
	kind := LoadOther
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = LoadNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = LoadPermissionDenied
	case errors.Is(err, encoding.ErrInvalidUTF8):
		kind = LoadDecode
	}
	return &LoadError{Path: path, Kind: kind, Err: err}
}

// readText reads the whole file and checks it is valid UTF-8 text.
func readText(path string) ([]byte, error) {
	// #nosec G304 -- path is provided by the caller or by an inclusion directive
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, content); err != nil {
		return nil, err
	}
	return content, nil
}

// stripBOM drops a leading UTF-8 byte order mark.
func stripBOM(content []byte) []byte {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), content)
	if err != nil {
		return content
	}
	return out
}

// foldCRLF rewrites every \r\n as \n; a lone \r is kept.
func foldCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}
