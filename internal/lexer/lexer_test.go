package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"mmfront/internal/diag"
	"mmfront/internal/lexer"
	"mmfront/internal/source"
	"mmfront/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mm", []byte(input))
	return lexer.New(fs.Get(id), lexer.Options{}), fs
}

// collectAllTokens reads up to and including EOF or the first error.
func collectAllTokens(t *testing.T, lx *lexer.Lexer) ([]token.Token, error) {
	t.Helper()
	var toks []token.Token
	for range 10000 {
		tok, err := lx.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
	t.Fatal("lexer did not terminate")
	return nil, nil
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Token, want ...token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d (%q): got %v, want %v", i, got[i].Text, gk[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	lx, _ := makeTestLexer("$( $) $[ $] ${ $} $c $v $d $a $p $= $.")
	toks, err := collectAllTokens(t, lx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// $( opens a comment, so everything up to $) is commented.
	assertKinds(t, toks,
		token.KwCommentStart, token.KwCommentEnd,
		token.KwFileInclusionStart, token.KwFileInclusionEnd,
		token.KwScopeStart, token.KwScopeEnd,
		token.KwConstant, token.KwVariable, token.KwDisjoint,
		token.KwAxiom, token.KwProvable, token.KwProof, token.KwEnd,
		token.EOF,
	)
}

func TestStatementWords(t *testing.T) {
	src := "$c ( ) wff |- $.\nax-1 $a |- ( ph -> ps ) $."
	lx, _ := makeTestLexer(src)
	toks, err := collectAllTokens(t, lx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks,
		token.KwConstant, token.CompressedProofStart, token.CompressedProofEnd,
		token.Word, token.Word, token.KwEnd,
		token.Word, token.KwAxiom, token.Word, token.CompressedProofStart,
		token.Word, token.Word, token.Word, token.CompressedProofEnd, token.KwEnd,
		token.EOF,
	)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("text %q does not match source slice %q", tok.Text, got)
		}
	}
}

func TestCommentWords(t *testing.T) {
	lx, _ := makeTestLexer("$( a $c ( b $)")
	toks, err := collectAllTokens(t, lx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks,
		token.KwCommentStart, token.CommentedLiteral, token.CommentedLiteral,
		token.CommentedLiteral, token.CommentedLiteral, token.KwCommentEnd, token.EOF,
	)
	if toks[2].Text != "$c" {
		t.Errorf("keywords inside comments stay literal, got %q", toks[2].Text)
	}
}

func TestCompressedProof(t *testing.T) {
	lx, _ := makeTestLexer("th $p |- a $= ( ax-1 ax-2 ) ABC $( note $) D?E $.")
	toks, err := collectAllTokens(t, lx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKinds(t, toks,
		token.Word, token.KwProvable, token.Word, token.Word, token.KwProof,
		token.CompressedProofStart, token.Word, token.Word, token.CompressedProofEnd,
		token.CompressedProofPart,
		token.KwCommentStart, token.CommentedLiteral, token.KwCommentEnd,
		token.CompressedProofPart, token.KwEnd, token.EOF,
	)
}

func TestCompressedProofLowercase(t *testing.T) {
	src := "th $p |- a $= ( ax-1 ) ABcD $."
	lx, _ := makeTestLexer(src)
	_, err := collectAllTokens(t, lx)
	if diag.CodeOf(err) != diag.LexBadCompressedProof {
		t.Fatalf("expected LexBadCompressedProof, got %v", err)
	}
	de, _ := diag.AsError(err)
	want := uint32(strings.Index(src, "cD"))
	if de.Primary.Start != want || de.Primary.End != want+1 {
		t.Fatalf("error span %v, want first invalid character at %d", de.Primary, want)
	}
}

func TestUnknownKeyword(t *testing.T) {
	for _, word := range []string{"$f", "$e", "$", "$cc", "$X"} {
		lx, _ := makeTestLexer("$c a $.\n" + word + " x $.")
		_, err := collectAllTokens(t, lx)
		if !diag.IsKind(err, diag.KindUnknownKeyword) {
			t.Errorf("%q: expected unknown keyword, got %v", word, err)
			continue
		}
		de, _ := diag.AsError(err)
		if de.Primary.Start != 8 || de.Primary.Len() != uint32(len(word)) {
			t.Errorf("%q: span %v", word, de.Primary)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	src := "$c a $.\n  $( comment text\n"
	lx, fs := makeTestLexer(src)
	_, err := collectAllTokens(t, lx)
	if !diag.IsKind(err, diag.KindUnterminatedRegion) || diag.CodeOf(err) != diag.LexUnterminatedComment {
		t.Fatalf("expected unterminated comment, got %v", err)
	}
	de, _ := diag.AsError(err)
	if de.Primary.Start != uint32(strings.Index(src, "$(")) {
		t.Fatalf("span %v must start at the opening \"$(\"", de.Primary)
	}
	pos := fs.Position(de.Primary)
	if pos.Path != "test.mm" || pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("position %+v", pos)
	}
	if de.Path != "test.mm" {
		t.Fatalf("error path %q", de.Path)
	}
}

func TestUnterminatedLabelList(t *testing.T) {
	lx, _ := makeTestLexer("th $p |- a $= ( ax-1 ax-2")
	_, err := collectAllTokens(t, lx)
	if diag.CodeOf(err) != diag.LexUnterminatedCompressedProof {
		t.Fatalf("expected unterminated compressed proof, got %v", err)
	}
}

func TestEOFRepeatsAndErrorsStick(t *testing.T) {
	lx, _ := makeTestLexer("  ")
	for range 3 {
		tok, err := lx.Next()
		if err != nil || tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v %v", tok.Kind, err)
		}
	}
	if !lx.Done() {
		t.Fatal("Done must be true after EOF")
	}

	lx, _ = makeTestLexer("$q")
	_, first := lx.Next()
	_, second := lx.Next()
	if first == nil || !errors.Is(second, first) {
		t.Fatalf("errors must be sticky: %v / %v", first, second)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p, _ := lx.Peek()
	n, _ := lx.Next()
	if p != n || n.Text != "a" {
		t.Fatalf("Peek %v / Next %v", p, n)
	}
	n, _ = lx.Next()
	if n.Text != "b" {
		t.Fatalf("second token %q", n.Text)
	}
}

func TestStartOffset(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.mm", []byte("$c a $. b"))
	lx := lexer.New(fs.Get(id), lexer.Options{Offset: 7})
	tok, err := lx.Next()
	if err != nil || tok.Text != "b" || tok.Span.Start != 8 {
		t.Fatalf("got %+v %v", tok, err)
	}
}
