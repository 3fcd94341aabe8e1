package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mmfront/internal/parser"
	"mmfront/internal/source"
	"mmfront/internal/token"
)

// CheckTokens verifies a resolved token stream:
//  1. every span lies inside its file and its text equals the source text
//  2. text-carrying kinds have non-empty text
//  3. EOF tokens are empty and sit at the very end of their file
//  4. within one file, tokens appear in source order without overlap
func CheckTokens(fs *source.FileSet, toks []token.Token) error {
	last := make(map[source.FileID]uint32)
	for i, tok := range toks {
		f := fs.Get(tok.Span.File)
		if f == nil {
			return fmt.Errorf("token %d (%v): unknown file %d", i, tok.Kind, tok.Span.File)
		}
		size, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			return fmt.Errorf("file %s: %w", f.Path, err)
		}
		if tok.Span.Start > tok.Span.End || tok.Span.End > size {
			return fmt.Errorf("token %d (%v): span %v outside %s (%d bytes)", i, tok.Kind, tok.Span, f.Path, size)
		}
		if got := f.Text(tok.Span); got != tok.Text {
			return fmt.Errorf("token %d (%v): text %q, source has %q", i, tok.Kind, tok.Text, got)
		}
		if tok.Kind.HasText() && tok.Text == "" {
			return fmt.Errorf("token %d (%v): empty text", i, tok.Kind)
		}
		if tok.Kind == token.EOF && (!tok.Span.Empty() || tok.Span.Start != size) {
			return fmt.Errorf("token %d: EOF span %v is not at the end of %s", i, tok.Span, f.Path)
		}
		if prev, seen := last[tok.Span.File]; seen && tok.Span.Start < prev {
			return fmt.Errorf("token %d (%v): span %v overlaps the previous token ending at %d", i, tok.Kind, tok.Span, prev)
		}
		last[tok.Span.File] = tok.Span.End
	}
	return nil
}

// CheckProductions verifies the tokens of every production with CheckTokens
// and the shape each category requires.
func CheckProductions(fs *source.FileSet, prods []parser.Production) error {
	var all []token.Token
	for i, p := range prods {
		if err := checkShape(p); err != nil {
			return fmt.Errorf("production %d (%v): %w", i, p.Category(), err)
		}
		all = append(all, p.Tokens...)
	}
	return CheckTokens(fs, all)
}

func checkShape(p parser.Production) error {
	if len(p.Tokens) == 0 {
		return fmt.Errorf("no tokens")
	}
	first, last := p.Tokens[0], p.Tokens[len(p.Tokens)-1]
	for _, tok := range p.Tokens {
		if tok.Span.File != first.Span.File {
			return fmt.Errorf("%v from file %d in a production of file %d", tok.Kind, tok.Span.File, first.Span.File)
		}
		switch tok.Kind {
		case token.Word:
			return fmt.Errorf("unclassified word %q", tok.Text)
		case token.KwFileInclusionStart, token.KwFileInclusionEnd, token.Invalid:
			return fmt.Errorf("stray %v", tok.Kind)
		}
	}

	switch p.Category() {
	case parser.CatInvalid:
		return fmt.Errorf("starts with %v", first.Kind)
	case parser.CatComment:
		if last.Kind != token.KwCommentEnd {
			return fmt.Errorf("comment ends with %v", last.Kind)
		}
		for _, tok := range p.Tokens[1 : len(p.Tokens)-1] {
			if tok.Kind != token.CommentedLiteral {
				return fmt.Errorf("%v inside a comment", tok.Kind)
			}
		}
	case parser.CatScope, parser.CatFileEnd:
		if len(p.Tokens) != 1 {
			return fmt.Errorf("%d tokens, want 1", len(p.Tokens))
		}
	case parser.CatDeclaration, parser.CatAssertion, parser.CatProvable:
		if last.Kind != token.KwEnd {
			return fmt.Errorf("statement ends with %v", last.Kind)
		}
		if p.Category() != parser.CatDeclaration && first.Kind != token.Label {
			return fmt.Errorf("assertion starts with %v", first.Kind)
		}
	}
	return nil
}
