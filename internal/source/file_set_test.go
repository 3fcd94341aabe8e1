package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.mm", []byte("$c a $."), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("test.mm", []byte("$v x $."), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("test.mm")
	if !exists || latestID != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latestID, exists, id2)
	}

	if got := string(fs.Get(id1).Content); got != "$c a $." {
		t.Errorf("first file content changed: %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Errorf("Get on unknown id must return nil")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.mm", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestCRLFNormalization(t *testing.T) {
	normalized, changed := foldCRLF([]byte("a\r\nb\r\n\r"))
	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}
	if string(normalized) != "a\nb\n\r" {
		t.Errorf("unexpected normalized content %q", normalized)
	}
	if _, changed := foldCRLF([]byte("plain\r")); changed {
		t.Error("no CR must mean no change")
	}
}

func TestBOMRemoval(t *testing.T) {
	if got := stripBOM([]byte{0xEF, 0xBB, 0xBF, 'x', '\n'}); string(got) != "x\n" {
		t.Errorf("Expected content without BOM, got %q", got)
	}
	if got := stripBOM([]byte("x\xEF\xBB\xBF")); string(got) != "x\xEF\xBB\xBF" {
		t.Errorf("only a leading BOM is stripped, got %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.mm", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // the newline ends line 1
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestPositionIsOneBasedLineZeroBasedColumn(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("db.mm", []byte("$c a $.\n  $v x $.\n"))

	pos := fs.Position(Span{File: id, Start: 10, End: 12})
	if pos.Path != "db.mm" || pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("unexpected position %+v", pos)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t.mm", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadResolvedFromIncludingFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(sub, "main.mm"), "$[ part.mm $]\n")
	writeFile(t, filepath.Join(sub, "part.mm"), "\xEF\xBB\xBF$c a $.\r\n")

	fs := NewFileSetWithBase(dir)
	mainID, err := fs.Load(filepath.Join("sub", "main.mm"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	partID, err := fs.Load(fs.ResolveFrom("part.mm", mainID))
	if err != nil {
		t.Fatalf("Load part: %v", err)
	}

	part := fs.Get(partID)
	if string(part.Content) != "$c a $.\n" {
		t.Errorf("content not normalized: %q", part.Content)
	}
	if part.Flags&FileHadBOM == 0 || part.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", part.Flags)
	}
	if want := ResolvePath(filepath.Join(sub, "part.mm"), ""); part.Path != want {
		t.Errorf("path = %q, want %q", part.Path, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.mm"), "$c \xff\xfe $.")

	fileSet := NewFileSetWithBase(dir)

	_, err := fileSet.Load("missing.mm")
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Kind != LoadNotFound {
		t.Fatalf("expected LoadNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadError must unwrap to fs.ErrNotExist")
	}

	_, err = fileSet.Load("bad.mm")
	if !errors.As(err, &loadErr) || loadErr.Kind != LoadDecode {
		t.Fatalf("expected LoadDecode, got %v", err)
	}
	if fileSet.Len() != 0 {
		t.Errorf("failed loads must not populate the arena")
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")

	got, err := RelativePath(filepath.Join(base, "nested", "file.mm"), base)
	if err != nil {
		t.Fatal(err)
	}
	if got != "nested/file.mm" {
		t.Errorf("expected relative path, got %q", got)
	}

	other := filepath.Join(tmp, "other", "file.mm")
	got, err = RelativePath(other, base)
	if err != nil {
		t.Fatal(err)
	}
	if got != normalizePath(other) {
		t.Errorf("expected absolute fallback %q, got %q", normalizePath(other), got)
	}
}

func TestDisplayPath(t *testing.T) {
	fs := NewFileSetWithBase("/home/user/db")
	f := fs.Get(fs.Add("/home/user/db/sub/set.mm", nil, 0))
	long := fs.Get(fs.Add("/home/user/databases/metamath/2026/snapshot/set.mm", nil, 0))
	virtual := fs.Get(fs.AddVirtual("stdin.mm", nil))

	cases := []struct {
		file  *File
		style PathStyle
		want  string
	}{
		{f, PathAbsolute, "/home/user/db/sub/set.mm"},
		{f, PathRelative, "sub/set.mm"},
		{f, PathBase, "set.mm"},
		{f, PathAuto, "/home/user/db/sub/set.mm"},
		{long, PathAuto, "set.mm"},
		{virtual, PathAbsolute, "stdin.mm"},
		{virtual, PathRelative, "stdin.mm"},
	}
	for _, tc := range cases {
		if got := tc.file.DisplayPath(tc.style, fs.BaseDir()); got != tc.want {
			t.Errorf("DisplayPath(%q, %d) = %q, want %q", tc.file.Path, tc.style, got, tc.want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
