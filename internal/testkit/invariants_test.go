package testkit

import (
	"context"
	"strings"
	"testing"

	"mmfront/internal/parser"
	"mmfront/internal/source"
	"mmfront/internal/token"
)

const db = `$( header $)
$c ( ) wff |- $.
$v ph $.
${ ax-1 $a |- ( ph ) $. $}
th1 $p |- ph $= ( ax-1 ) AB $.
ax-2 $( note $) $a |- ph $.
th2 $( n $) $p |- ph $= $( m $) ( ax-2 ) A $( k $) B $.
`

func parse(t *testing.T) ([]parser.Production, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase(t.TempDir())
	prods, err := parser.ParseSource(context.Background(), fs, "db.mm", []byte(db), parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return prods, fs
}

func TestValidStreamPasses(t *testing.T) {
	prods, fs := parse(t)
	if err := CheckProductions(fs, prods); err != nil {
		t.Fatal(err)
	}
}

func TestDetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p []parser.Production)
		want   string
	}{
		{"text mismatch", func(p []parser.Production) { p[1].Tokens[1].Text = "x" }, "source has"},
		{"span out of range", func(p []parser.Production) { p[1].Tokens[1].Span.End = 1 << 20 }, "outside"},
		{"unclassified word", func(p []parser.Production) { p[1].Tokens[1].Kind = token.Word }, "unclassified word"},
		{"out of order", func(p []parser.Production) { p[1], p[2] = p[2], p[1] }, "overlaps"},
		{"bad terminator", func(p []parser.Production) {
			p[2].Tokens = p[2].Tokens[:len(p[2].Tokens)-1]
		}, "ends with"},
		{"empty production", func(p []parser.Production) { p[0].Tokens = nil }, "no tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prods, fs := parse(t)
			tt.mutate(prods)
			err := CheckProductions(fs, prods)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want an error containing %q", err, tt.want)
			}
		})
	}
}

func TestEOFPlacement(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("db.mm", []byte("$c a $."))
	good := []token.Token{{Kind: token.EOF, Span: source.At(id, 7)}}
	if err := CheckTokens(fs, good); err != nil {
		t.Errorf("EOF at end rejected: %v", err)
	}
	bad := []token.Token{{Kind: token.EOF, Span: source.At(id, 3)}}
	if err := CheckTokens(fs, bad); err == nil {
		t.Error("EOF in the middle accepted")
	}
}
