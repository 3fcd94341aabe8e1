package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"$(": KwCommentStart,
		"$)": KwCommentEnd,
		"$[": KwFileInclusionStart,
		"$]": KwFileInclusionEnd,
		"${": KwScopeStart,
		"$}": KwScopeEnd,
		"$c": KwConstant,
		"$v": KwVariable,
		"$d": KwDisjoint,
		"$a": KwAxiom,
		"$p": KwProvable,
		"$=": KwProof,
		"$.": KwEnd,
	}
	if len(cases) != 13 {
		t.Fatalf("expected 13 keywords, table has %d", len(cases))
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v; want %v", lexeme, got, ok, want)
		}
		if want.Literal() != lexeme {
			t.Errorf("%v.Literal() = %q, want %q", want, want.Literal(), lexeme)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// Заведомо НЕ ключевые слова
	notKw := []string{
		"$C", "$A", // регистр важен
		"$f", "$e", "$t", "$",
		"$..", "$((", "c$",
		"wff", "(", ")",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
