package driver

import (
	"os"
	"path/filepath"
	"testing"

	"mmfront/internal/diag"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"", "0"},
		{"a", "1"},
		{"a\n", "1+1"},
		{"a\nb", "2"},
		{"a\nb\n", "2+1"},
		{"\n\n", "2+1"},
		{"a\r\nb\r\n", "2+1"},
	}
	dir := t.TempDir()
	for i, tt := range tests {
		path := filepath.Join(dir, "f"+string(rune('a'+i))+".mm")
		if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := CountLines(path)
		if err != nil {
			t.Fatalf("%q: %v", tt.content, err)
		}
		if got.String() != tt.want {
			t.Errorf("%q: got %s, want %s", tt.content, got, tt.want)
		}
	}
}

func TestCountLinesMissingFile(t *testing.T) {
	_, err := CountLines(filepath.Join(t.TempDir(), "none.mm"))
	if diag.CodeOf(err) != diag.IONotFound {
		t.Errorf("expected IONotFound, got %v", err)
	}
}
