package token

import (
	"mmfront/internal/source"
)

// Token represents a single database token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is one of the 13 keywords.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsWordLike reports whether the token is a bare word in any of its roles.
func (t Token) IsWordLike() bool {
	switch t.Kind {
	case Word, Label, MathSymbol:
		return true
	default:
		return false
	}
}

// As returns a copy of t reclassified to kind k.
func (t Token) As(k Kind) Token {
	t.Kind = k
	return t
}
