package token_test

import (
	"testing"

	"mmfront/internal/source"
	"mmfront/internal/token"
)

func TestKindClassification(t *testing.T) {
	for k := token.KwCommentStart; k <= token.KwEnd; k++ {
		if !k.IsKeyword() {
			t.Errorf("%v should be a keyword", k)
		}
		if k.HasText() {
			t.Errorf("%v has fixed spelling", k)
		}
	}
	for _, k := range []token.Kind{token.Word, token.Label, token.MathSymbol, token.CommentedLiteral, token.CompressedProofPart} {
		if k.IsKeyword() || !k.HasText() {
			t.Errorf("%v must be a text-carrying non-keyword", k)
		}
		if k.Literal() != "" {
			t.Errorf("%v must not have a literal spelling", k)
		}
	}
	if token.CompressedProofStart.Literal() != "(" || token.CompressedProofEnd.Literal() != ")" {
		t.Errorf("compressed proof parens have wrong spelling")
	}
	if !token.EOF.IsEOF() || token.Word.IsEOF() {
		t.Errorf("IsEOF misclassifies")
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Errorf("unknown kinds must not panic in String")
	}
}

func TestTokenAs(t *testing.T) {
	w := token.Token{Kind: token.Word, Span: source.Span{Start: 0, End: 3}, Text: "wff"}
	m := w.As(token.MathSymbol)
	if m.Kind != token.MathSymbol || m.Text != "wff" || m.Span != w.Span {
		t.Fatalf("As changed more than the kind: %+v", m)
	}
	if w.Kind != token.Word {
		t.Fatalf("As must not mutate the receiver")
	}
	if !m.IsWordLike() || (token.Token{Kind: token.KwEnd}).IsWordLike() {
		t.Errorf("IsWordLike misclassifies")
	}
}
