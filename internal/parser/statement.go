package parser

import (
	"mmfront/internal/diag"
	"mmfront/internal/token"
)

// declaration builds a $c, $v or $d statement. Every word of the body is a
// math symbol.
func (b *Builder) declaration(kw token.Token) (Production, error) {
	toks := []token.Token{kw}
	symbols := 0
	for {
		tok, err := b.readIn(kw, diag.SynUnterminatedStatement, "statement")
		if err != nil {
			return Production{}, err
		}
		switch tok.Kind {
		case token.Word, token.CompressedProofStart, token.CompressedProofEnd:
			toks = append(toks, tok.As(token.MathSymbol))
			symbols++
		case token.KwCommentStart:
			if toks, err = b.comment(tok, toks); err != nil {
				return Production{}, err
			}
		case token.KwEnd:
			if need := minSymbols(kw.Kind); symbols < need {
				return Production{}, b.errorf(diag.SynEmptyStatement, kw.Span,
					"%q needs at least %d symbol(s), found %d", kw.Text, need, symbols)
			}
			return Production{Tokens: append(toks, tok)}, nil
		default:
			return Production{}, b.errorf(diag.SynUnexpectedToken, tok.Span,
				"unexpected %s in %q statement", describe(tok), kw.Text)
		}
	}
}

func minSymbols(kw token.Kind) int {
	if kw == token.KwDisjoint {
		return 2
	}
	return 1
}

// assertion builds "label $a expr $." or "label $p expr $= proof $.".
func (b *Builder) assertion(word token.Token) (Production, error) {
	label := word.As(token.Label)
	toks := []token.Token{label}

	var kw token.Token
	for {
		tok, err := b.readIn(label, diag.SynUnterminatedStatement, "statement")
		if err != nil {
			return Production{}, err
		}
		if tok.Kind != token.KwCommentStart {
			kw = tok
			break
		}
		if toks, err = b.comment(tok, toks); err != nil {
			return Production{}, err
		}
	}
	if kw.Kind != token.KwAxiom && kw.Kind != token.KwProvable {
		return Production{}, b.errorf(diag.SynMissingAssertion, kw.Span,
			"expected \"$a\" or \"$p\" after label %q, found %s", label.Text, describe(kw))
	}
	toks = append(toks, kw)

	symbols := 0
	for {
		tok, err := b.readIn(label, diag.SynUnterminatedStatement, "statement")
		if err != nil {
			return Production{}, err
		}
		switch tok.Kind {
		case token.Word, token.CompressedProofStart, token.CompressedProofEnd:
			toks = append(toks, tok.As(token.MathSymbol))
			symbols++
			continue
		case token.KwCommentStart:
			if toks, err = b.comment(tok, toks); err != nil {
				return Production{}, err
			}
			continue
		case token.KwEnd, token.KwProof:
		default:
			return Production{}, b.errorf(diag.SynUnexpectedToken, tok.Span,
				"unexpected %s in assertion %q", describe(tok), label.Text)
		}

		if symbols == 0 {
			return Production{}, b.errorf(diag.SynEmptyStatement, kw.Span,
				"assertion %q has no type code", label.Text)
		}
		switch {
		case tok.Kind == token.KwEnd && kw.Kind == token.KwAxiom:
			return Production{Tokens: append(toks, tok)}, nil
		case tok.Kind == token.KwEnd:
			return Production{}, b.errorf(diag.SynUnexpectedToken, tok.Span,
				"provable assertion %q ends without a proof, expected \"$=\"", label.Text)
		case kw.Kind == token.KwAxiom:
			return Production{}, b.errorf(diag.SynProofOutsideProvable, tok.Span,
				"\"$=\" in axiom %q: only \"$p\" statements have proofs", label.Text)
		}
		return b.proof(label, append(toks, tok))
	}
}

// proof runs the InProofDetails state up to the closing $.
func (b *Builder) proof(label token.Token, toks []token.Token) (Production, error) {
	const (
		stepsOrList = iota // first proof token decides the format
		steps              // uncompressed label list
		list               // inside ( ... )
		body               // compressed letters
	)
	state := stepsOrList
	n := 0
	for {
		tok, err := b.readIn(label, diag.SynUnterminatedStatement, "statement")
		if err != nil {
			return Production{}, err
		}
		if tok.Kind == token.KwCommentStart {
			if toks, err = b.comment(tok, toks); err != nil {
				return Production{}, err
			}
			continue
		}

		switch {
		case tok.Kind == token.CompressedProofStart && state == stepsOrList:
			state = list
			toks = append(toks, tok)
			continue
		case tok.Kind == token.Word && (state == stepsOrList || state == steps):
			state = steps
			n++
			toks = append(toks, tok.As(token.Label))
			continue
		case tok.Kind == token.Word && state == list:
			toks = append(toks, tok.As(token.Label))
			continue
		case tok.Kind == token.CompressedProofEnd && state == list:
			state = body
			toks = append(toks, tok)
			continue
		case tok.Kind == token.CompressedProofPart && state == body:
			n++
			toks = append(toks, tok)
			continue
		case tok.Kind == token.KwEnd && state != list:
			if n == 0 {
				return Production{}, b.errorf(diag.SynEmptyStatement, label.Span,
					"provable assertion %q has an empty proof", label.Text)
			}
			return Production{Tokens: append(toks, tok)}, nil
		}
		return Production{}, b.errorf(diag.SynUnexpectedToken, tok.Span,
			"unexpected %s in the proof of %q", describe(tok), label.Text)
	}
}
