package source

import (
	"os"
	"path/filepath"
	"strings"
)

// PathStyle selects how File.DisplayPath renders a path.
type PathStyle uint8

const (
	// PathAuto keeps short paths and shortens long absolute ones to their base name.
	PathAuto PathStyle = iota
	PathAbsolute
	// PathRelative is relative to a base directory; paths outside it stay absolute.
	PathRelative
	PathBase
)

// autoLimit is the length from which PathAuto drops the directory.
const autoLimit = 40

// DisplayPath renders f.Path in style. Virtual files keep their name for
// the absolute and relative styles.
func (f *File) DisplayPath(style PathStyle, baseDir string) string {
	virtual := f.Flags&FileVirtual != 0
	switch style {
	case PathAbsolute:
		if virtual {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case PathRelative:
		if virtual {
			return f.Path
		}
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBase:
		return filepath.Base(f.Path)
	default:
		if len(f.Path) >= autoLimit && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// ResolvePath returns the canonical key for path: relative paths are joined
// onto dir first, then the result is made absolute and slash-cleaned.
// The inclusion stack compares files by this key.
func ResolvePath(path, dir string) string {
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return normalizePath(path)
}

// RelativePath returns target relative to baseDir. Paths that escape baseDir
// are returned absolute.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absTarget), nil
	}
	return normalizePath(rel), nil
}

// normalizePath gives paths one spelling across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
