package include

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mmfront/internal/diag"
	"mmfront/internal/source"
	"mmfront/internal/token"
)

func writeDB(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func openRoot(t *testing.T, dir, name string, opts Options) (*Resolver, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase(dir)
	root, err := fs.Load(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return New(fs, root, opts), fs
}

// drain returns the texts of all tokens, with "<EOF:name>" for file ends.
func drain(t *testing.T, r *Resolver, fs *source.FileSet) ([]string, error) {
	t.Helper()
	var out []string
	for range 10000 {
		tok, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if tok.Kind == token.EOF {
			out = append(out, "<EOF:"+filepath.Base(fs.Get(tok.Span.File).Path)+">")
			continue
		}
		out = append(out, tok.Text)
	}
	t.Fatal("resolver did not terminate")
	return nil, nil
}

func TestSpliceOrder(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{
		"main.mm":     "$c a $.\n$[ sub/part.mm $]\n$c b $.\n",
		"sub/part.mm": "$c p $.\n$[ leaf.mm $]\n",
		"sub/leaf.mm": "$c l $.\n",
	})
	r, fs := openRoot(t, dir, "main.mm", Options{})
	got, err := drain(t, r, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "$c a $. $c p $. $c l $. <EOF:leaf.mm> <EOF:part.mm> $c b $. <EOF:main.mm>"
	if strings.Join(got, " ") != want {
		t.Fatalf("got  %s\nwant %s", strings.Join(got, " "), want)
	}
	if r.Root() != 0 {
		t.Errorf("root id %d", r.Root())
	}
}

func TestSelfInclusionIsCyclic(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{"self.mm": "$c a $.\n$[ self.mm $]\n"})
	r, fs := openRoot(t, dir, "self.mm", Options{})
	_, err := drain(t, r, fs)
	if !diag.IsKind(err, diag.KindCyclicInclusion) {
		t.Fatalf("expected cyclic inclusion, got %v", err)
	}
	if !strings.Contains(err.Error(), "self.mm") {
		t.Errorf("error must name self.mm: %v", err)
	}
}

func TestIndirectCycle(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{
		"a.mm": "$[ b.mm $]\n",
		"b.mm": "$[ a.mm $]\n",
	})
	r, fs := openRoot(t, dir, "a.mm", Options{})
	_, err := drain(t, r, fs)
	de, ok := diag.AsError(err)
	if !ok || de.Code != diag.IncCyclicInclusion {
		t.Fatalf("expected cyclic inclusion, got %v", err)
	}
	if filepath.Base(de.Path) != "b.mm" {
		t.Errorf("error should come from b.mm, got %s", de.Path)
	}
	// "included here" plus the a.mm -> b.mm directive
	if len(de.Notes) != 2 {
		t.Errorf("expected 2 notes, got %+v", de.Notes)
	}
}

func sequentialDB(t *testing.T) string {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{
		"top.mm": "$[ A.mm $]\n$[ B.mm $]\n",
		"A.mm":   "$c a1 $.\n",
		"B.mm":   "$c b1 $.\n$[ A.mm $]\n$c b2 $.\n",
	})
	return dir
}

func TestSequentialReinclusionAllowed(t *testing.T) {
	r, fs := openRoot(t, sequentialDB(t), "top.mm", Options{})
	got, err := drain(t, r, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "$c a1 $. <EOF:A.mm> $c b1 $. $c a1 $. <EOF:A.mm> $c b2 $. <EOF:B.mm> <EOF:top.mm>"
	if strings.Join(got, " ") != want {
		t.Fatalf("got  %s\nwant %s", strings.Join(got, " "), want)
	}
}

func TestSequentialReinclusionSkip(t *testing.T) {
	r, fs := openRoot(t, sequentialDB(t), "top.mm", Options{Reinclusion: ReincludeSkip})
	got, err := drain(t, r, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "$c a1 $. <EOF:A.mm> $c b1 $. $c b2 $. <EOF:B.mm> <EOF:top.mm>"
	if strings.Join(got, " ") != want {
		t.Fatalf("got  %s\nwant %s", strings.Join(got, " "), want)
	}
}

func TestSequentialReinclusionForbid(t *testing.T) {
	r, fs := openRoot(t, sequentialDB(t), "top.mm", Options{Reinclusion: ReincludeForbid})
	_, err := drain(t, r, fs)
	if diag.CodeOf(err) != diag.IncRepeatedInclusion {
		t.Fatalf("expected repeated inclusion error, got %v", err)
	}
}

func TestMalformedDirectives(t *testing.T) {
	cases := map[string]string{
		"wrong closing keyword": "$[ onlyonefile.mm $[",
		"two file names":        "$[ a.mm b.mm $]",
		"missing file name":     "$[ $]",
		"missing end":           "$[ a.mm",
		"stray end":             "$c a $. $]",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSetWithBase(t.TempDir())
			root := fs.AddVirtual("db.mm", []byte(src))
			_, err := drain(t, New(fs, root, Options{}), fs)
			if !diag.IsKind(err, diag.KindMalformedInclusion) {
				t.Fatalf("expected malformed inclusion, got %v", err)
			}
		})
	}
}

func TestMissingIncludedFile(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{"main.mm": "$[ nowhere.mm $]\n"})
	r, fs := openRoot(t, dir, "main.mm", Options{})
	_, err := drain(t, r, fs)
	if diag.CodeOf(err) != diag.IONotFound || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not found, got %v", err)
	}
	de, _ := diag.AsError(err)
	if got := fs.Get(de.Primary.File).Text(de.Primary); got != "nowhere.mm" {
		t.Errorf("error should point at the file name, got %q", got)
	}
}

func TestMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{
		"a.mm": "$[ b.mm $]\n",
		"b.mm": "$[ c.mm $]\n",
		"c.mm": "$c c $.\n",
	})
	r, fs := openRoot(t, dir, "a.mm", Options{MaxDepth: 2})
	_, err := drain(t, r, fs)
	if diag.CodeOf(err) != diag.IncTooDeep {
		t.Fatalf("expected too deep, got %v", err)
	}
}

func TestErrorsInIncludedFileCarryChain(t *testing.T) {
	dir := t.TempDir()
	writeDB(t, dir, map[string]string{
		"main.mm": "$[ bad.mm $]\n",
		"bad.mm":  "$c a $.\n$( never closed\n",
	})
	r, fs := openRoot(t, dir, "main.mm", Options{})
	_, err := drain(t, r, fs)
	de, ok := diag.AsError(err)
	if !ok || de.Code != diag.LexUnterminatedComment {
		t.Fatalf("expected unterminated comment, got %v", err)
	}
	if filepath.Base(de.Path) != "bad.mm" || len(de.Notes) != 1 {
		t.Fatalf("unexpected path/notes: %s %+v", de.Path, de.Notes)
	}
	if _, again := r.Next(); again != err {
		t.Errorf("resolver errors must be sticky")
	}
}

func TestStack(t *testing.T) {
	var s Stack
	s.Push(Frame{Path: "/a"})
	s.Push(Frame{Path: "/b"})
	if !s.Contains("/a") || s.Contains("/c") || s.Depth() != 2 {
		t.Fatal("unexpected stack state")
	}
	if top, _ := s.Top(); top.Path != "/b" {
		t.Fatalf("top = %s", top.Path)
	}
	if f := s.Pop(); f.Path != "/b" || strings.Join(s.Paths(), ",") != "/a" {
		t.Fatal("pop must remove the innermost frame")
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": ReincludeAllow, "Skip": ReincludeSkip, "forbid": ReincludeForbid} {
		if got, err := ParsePolicy(in); err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
