package fuzztests

import (
	"testing"

	"mmfront/internal/lexer"
	"mmfront/internal/source"
	"mmfront/internal/testkit"
	"mmfront/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.mm", input)
		lx := lexer.New(fs.Get(id), lexer.Options{})

		var toks []token.Token
		for range len(input) + 2 {
			tok, err := lx.Next()
			if err != nil {
				break
			}
			toks = append(toks, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		if err := testkit.CheckTokens(fs, toks); err != nil {
			t.Fatal(err)
		}
		if lx.Done() && (len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF) {
			t.Fatal("lexer finished without an EOF token")
		}
	})
}
