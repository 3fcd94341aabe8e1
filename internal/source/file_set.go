package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet is the arena that owns every SourceText loaded during a parse.
// Spans and positions refer to files by FileID only.
type FileSet struct {
	files   []File
	byPath  map[string]FileID // newest instance per path
	baseDir string            // "" means the working directory
}

// NewFileSet creates an empty FileSet rooted at the process working directory.
func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// NewFileSetWithBase creates an empty FileSet that resolves relative paths
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fileSet := NewFileSet()
	fileSet.baseDir = baseDir
	return fileSet
}

func (fileSet *FileSet) SetBaseDir(dir string) { fileSet.baseDir = dir }

// BaseDir is the directory relative root paths and virtual files resolve against.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Len returns the number of files in the arena.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores content under path and returns a fresh FileID, even when path
// was added before: every inclusion instance is its own File.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("file set full: %w", err))
	}
	id := FileID(n)
	key := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    key,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.byPath[key] = id
	return id
}

// AddVirtual adds in-memory content (stdin, tests) flagged FileVirtual.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Load reads path (relative to BaseDir when not absolute), strips a BOM,
// normalizes CRLF and validates UTF-8. Errors are *LoadError.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	path = ResolvePath(path, fileSet.BaseDir())
	content, err := readText(path)
	if err != nil {
		return 0, newLoadError(path, err)
	}

	var flags FileFlags
	if trimmed := stripBOM(content); len(trimmed) != len(content) {
		content, flags = trimmed, flags|FileHadBOM
	}
	if folded, ok := foldCRLF(content); ok {
		content, flags = folded, flags|FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// ResolveFrom returns the canonical path of name as written inside file
// from: relative to that file's directory, or to BaseDir for virtual files.
func (fileSet *FileSet) ResolveFrom(name string, from FileID) string {
	dir := fileSet.BaseDir()
	if f := fileSet.Get(from); f != nil && f.Flags&FileVirtual == 0 {
		dir = filepath.Dir(filepath.FromSlash(f.Path))
	}
	return ResolvePath(name, dir)
}

// Get returns the file for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// GetLatest returns the newest FileID added under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.byPath[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line and column pairs.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.lineCol(span.Start), f.lineCol(span.End)
}

// Locate maps a raw offset in file id to its Position.
func (fileSet *FileSet) Locate(id FileID, off uint32) Position {
	f := fileSet.Get(id)
	if f == nil {
		return Position{File: id}
	}
	lc := f.lineCol(off)
	return Position{File: id, Path: f.Path, Line: lc.Line, Column: lc.Col - 1}
}

// Position returns the Position of the start of span.
func (fileSet *FileSet) Position(span Span) Position {
	return fileSet.Locate(span.File, span.Start)
}
