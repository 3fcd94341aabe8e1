package driver

import (
	"context"
	"errors"
	"io"

	"mmfront/internal/diag"
	"mmfront/internal/include"
	"mmfront/internal/observ"
	"mmfront/internal/source"
	"mmfront/internal/token"
	"mmfront/internal/trace"
)

// TokenizeResult is the resolved token stream of a database: included files
// are spliced in place of their directives and each one ends with its own
// EOF token.
type TokenizeResult struct {
	FileSet *source.FileSet
	Root    source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	// Err is the fault that stopped tokenization; Tokens holds everything
	// read before it.
	Err   error
	Timer *observ.Timer
}

// Tokenize reads path and every file it includes. The returned error is
// non-nil only when path itself cannot be read or ctx is done.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "tokenize", trace.ParentFromContext(ctx)).Set("path", path)
	defer span.End("")

	timer := observ.NewTimer()
	fs, root, err := loadRoot(path, timer)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{FileSet: fs, Root: root, Bag: opts.newBag(), Timer: timer}

	idx := timer.Begin("tokenize")
	r := include.New(fs, root, opts.includeOptions(tracer, span.ID()))
	for {
		if err := ctx.Err(); err != nil {
			timer.End(idx, "canceled")
			return nil, err
		}
		tok, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Err = err
			break
		}
		res.Tokens = append(res.Tokens, tok)
	}
	timer.End(idx, "")

	record(res.Bag, res.Err, timer, root, opts)
	return res, nil
}
