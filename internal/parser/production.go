package parser

import (
	"mmfront/internal/source"
	"mmfront/internal/token"
)

// Category is the syntactic class of a production, decided by its first tokens.
type Category uint8

const (
	CatInvalid     Category = iota
	CatComment              // $( ... $)
	CatScope                // ${ or $}
	CatDeclaration          // $c, $v, $d
	CatAssertion            // label $a ... $.
	CatProvable             // label $p ... $= ... $.
	CatFileEnd              // end of an included file
)

var categoryNames = [...]string{
	CatInvalid:     "invalid",
	CatComment:     "comment",
	CatScope:       "scope",
	CatDeclaration: "declaration",
	CatAssertion:   "assertion",
	CatProvable:    "provable",
	CatFileEnd:     "file-end",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Production is one complete grammatical unit. Tokens is never empty.
type Production struct {
	Tokens []token.Token
}

// Category classifies p by its leading tokens.
func (p Production) Category() Category {
	if len(p.Tokens) == 0 {
		return CatInvalid
	}
	switch first := p.Tokens[0]; first.Kind {
	case token.KwCommentStart:
		return CatComment
	case token.KwScopeStart, token.KwScopeEnd:
		return CatScope
	case token.KwConstant, token.KwVariable, token.KwDisjoint:
		return CatDeclaration
	case token.EOF:
		return CatFileEnd
	case token.Label:
		switch p.Keyword() {
		case token.KwAxiom:
			return CatAssertion
		case token.KwProvable:
			return CatProvable
		}
	}
	return CatInvalid
}

// Keyword returns the keyword that determines the statement type: the first
// token for unlabeled productions, the first keyword after the label otherwise.
// Comments between the label and its keyword are skipped.
func (p Production) Keyword() token.Kind {
	inComment := false
	for i, tok := range p.Tokens {
		switch {
		case i == 0 && tok.Kind == token.Label:
		case tok.Kind == token.KwCommentStart && i > 0:
			inComment = true
		case inComment:
			inComment = tok.Kind != token.KwCommentEnd
		case tok.Kind.IsKeyword():
			return tok.Kind
		default:
			return token.Invalid
		}
	}
	return token.Invalid
}

// Label returns the statement label of assertions, or "".
func (p Production) Label() string {
	if len(p.Tokens) > 0 && p.Tokens[0].Kind == token.Label {
		return p.Tokens[0].Text
	}
	return ""
}

// Span covers the production from its first to its last token. The builder
// never spreads a production over two files.
func (p Production) Span() source.Span {
	if len(p.Tokens) == 0 {
		return source.Span{}
	}
	first, last := p.Tokens[0].Span, p.Tokens[len(p.Tokens)-1].Span
	if first.File != last.File {
		return first
	}
	return first.Cover(last)
}

// Texts returns the source text of every token, in order. EOF tokens
// contribute nothing.
func (p Production) Texts() []string {
	out := make([]string, 0, len(p.Tokens))
	for _, tok := range p.Tokens {
		if tok.Kind == token.EOF {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

// Math returns the math symbols of the statement body, comments excluded.
func (p Production) Math() []string {
	var out []string
	for _, tok := range p.Tokens {
		if tok.Kind == token.MathSymbol {
			out = append(out, tok.Text)
		}
	}
	return out
}

// Proof returns the tokens between $= and the closing $. of a provable
// assertion, comments excluded.
func (p Production) Proof() []token.Token {
	var out []token.Token
	inProof := false
	inComment := false
	for _, tok := range p.Tokens {
		switch {
		case tok.Kind == token.KwCommentStart:
			inComment = true
		case tok.Kind == token.KwCommentEnd:
			inComment = false
		case inComment:
		case tok.Kind == token.KwProof:
			inProof = true
		case tok.Kind == token.KwEnd:
			inProof = false
		case inProof:
			out = append(out, tok)
		}
	}
	return out
}

// IsCompressed reports whether the proof uses the compressed format.
func (p Production) IsCompressed() bool {
	proof := p.Proof()
	return len(proof) > 0 && proof[0].Kind == token.CompressedProofStart
}
