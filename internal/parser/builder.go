package parser

import (
	"context"
	"errors"
	"io"
	"iter"

	"mmfront/internal/diag"
	"mmfront/internal/source"
	"mmfront/internal/token"
	"mmfront/internal/trace"
)

// TokenSource is a resolved token stream: included files already spliced,
// one EOF token per file, io.EOF after the root file's EOF.
type TokenSource interface {
	Next() (token.Token, error)
	Root() source.FileID
}

// Builder groups a resolved token stream into productions. It buffers only
// the production being built.
type Builder struct {
	ctx  context.Context
	src  TokenSource
	fs   *source.FileSet
	opts Options

	scopes []source.Span // open ${, innermost last
	count  int
	err    error
	done   bool
}

// NewBuilder creates a builder pulling from src. fs is used to name files in
// errors and may be nil.
func NewBuilder(ctx context.Context, src TokenSource, fs *source.FileSet, opts Options) *Builder {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Builder{ctx: ctx, src: src, fs: fs, opts: opts}
}

// Count returns the number of productions emitted so far.
func (b *Builder) Count() int { return b.count }

// Depth returns the number of scopes currently open.
func (b *Builder) Depth() int { return len(b.scopes) }

// Next returns the next production, io.EOF at the clean end of the database,
// or the first fault. Faults are sticky.
func (b *Builder) Next() (Production, error) {
	if b.err != nil {
		return Production{}, b.err
	}
	if b.done {
		return Production{}, io.EOF
	}
	if err := b.ctx.Err(); err != nil {
		return Production{}, b.fail(err)
	}

	prod, err := b.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			b.done = true
			return Production{}, io.EOF
		}
		return Production{}, b.fail(err)
	}
	b.count++
	if trace.On(b.opts.Tracer, trace.ScopeProduction) {
		trace.Point(b.opts.Tracer, trace.ScopeProduction, "production",
			prod.Category().String()+" "+prod.Label(), b.opts.TraceParent)
	}
	return prod, nil
}

// All iterates over the productions. Iteration stops after the first error,
// which is yielded with a zero Production.
func (b *Builder) All() iter.Seq2[Production, error] {
	return func(yield func(Production, error) bool) {
		for {
			prod, err := b.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(prod, err) || err != nil {
				return
			}
		}
	}
}

// Collect reads every production. On failure it returns the productions
// built before the fault together with the error.
func (b *Builder) Collect() ([]Production, error) {
	var out []Production
	for prod, err := range b.All() {
		if err != nil {
			return out, err
		}
		out = append(out, prod)
	}
	return out, nil
}

// next runs the Idle state: the first token decides what to build.
func (b *Builder) next() (Production, error) {
	tok, err := b.read()
	if errors.Is(err, io.EOF) {
		return Production{}, b.finish()
	}
	if err != nil {
		return Production{}, err
	}

	switch tok.Kind {
	case token.EOF:
		if tok.Span.File == b.src.Root() {
			return Production{}, b.finish()
		}
		return Production{Tokens: []token.Token{tok}}, nil

	case token.KwCommentStart:
		toks, err := b.comment(tok, nil)
		if err != nil {
			return Production{}, err
		}
		return Production{Tokens: toks}, nil

	case token.KwScopeStart:
		b.scopes = append(b.scopes, tok.Span)
		return Production{Tokens: []token.Token{tok}}, nil

	case token.KwScopeEnd:
		if len(b.scopes) == 0 {
			return Production{}, b.errorf(diag.SynUnmatchedScopeEnd, tok.Span, "\"$}\" without a matching \"${\"")
		}
		b.scopes = b.scopes[:len(b.scopes)-1]
		return Production{Tokens: []token.Token{tok}}, nil

	case token.KwConstant, token.KwVariable, token.KwDisjoint:
		return b.declaration(tok)

	case token.Word:
		return b.assertion(tok)

	default:
		return Production{}, b.errorf(diag.SynUnexpectedToken, tok.Span,
			"unexpected %s at the start of a statement", describe(tok))
	}
}

// finish checks the end of the root file: every scope must be closed.
func (b *Builder) finish() error {
	if n := len(b.scopes); n > 0 {
		return b.errorf(diag.SynUnterminatedScope, b.scopes[n-1],
			"scope opened here is never closed with \"$}\"")
	}
	return io.EOF
}

// comment runs the InComment state, appending to toks.
func (b *Builder) comment(open token.Token, toks []token.Token) ([]token.Token, error) {
	toks = append(toks, open)
	for {
		tok, err := b.readIn(open, diag.SynUnterminatedComment, "comment")
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case token.CommentedLiteral:
			toks = append(toks, tok)
		case token.KwCommentEnd:
			return append(toks, tok), nil
		default:
			return nil, b.errorf(diag.SynUnexpectedToken, tok.Span,
				"unexpected %s inside a comment", describe(tok))
		}
	}
}

// read pulls one token; io.EOF from the source means the root ended.
func (b *Builder) read() (token.Token, error) {
	return b.src.Next()
}

// readIn pulls one token of a production opened by open. Reaching the end of
// any file first fails with code, pointing at open, and so does a token from
// a file included in the middle of the production.
func (b *Builder) readIn(open token.Token, code diag.Code, what string) (token.Token, error) {
	tok, err := b.src.Next()
	if errors.Is(err, io.EOF) {
		tok = token.Token{Kind: token.EOF}
	} else if err != nil {
		return token.Token{}, err
	}
	switch {
	case tok.Kind == token.EOF:
		return token.Token{}, b.errorf(code, open.Span,
			"%s opened here is not closed before the end of the file", what)
	case tok.Span.File != open.Span.File:
		return token.Token{}, b.errorf(code, open.Span,
			"%s opened here is not closed before an included file starts", what)
	}
	return tok, nil
}

func (b *Builder) fail(err error) error {
	b.err = err
	return err
}

func (b *Builder) errorf(code diag.Code, sp source.Span, format string, args ...any) error {
	return diag.Errorf(code, sp, b.pathOf(sp.File), format, args...)
}

func (b *Builder) pathOf(id source.FileID) string {
	if b.fs == nil {
		return ""
	}
	if f := b.fs.Get(id); f != nil {
		return f.Path
	}
	return ""
}

func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of file"
	case tok.Text != "":
		return "\"" + tok.Text + "\""
	default:
		return tok.Kind.String()
	}
}
