package include

import (
	"io"

	"mmfront/internal/diag"
	"mmfront/internal/lexer"
	"mmfront/internal/source"
	"mmfront/internal/token"
	"mmfront/internal/trace"
)

// Resolver yields the tokens of a database in depth-first inclusion order.
// Directives are consumed; every included file contributes its own EOF token
// right after its last token.
type Resolver struct {
	fs     *source.FileSet
	root   source.FileID
	opts   Options
	stack  Stack
	closed map[string]struct{} // files included and closed at least once
	err    error
	done   bool
}

// New starts resolving from root, which must already be in fs.
func New(fs *source.FileSet, root source.FileID, opts Options) *Resolver {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	r := &Resolver{
		fs:     fs,
		root:   root,
		opts:   opts,
		closed: make(map[string]struct{}),
	}
	file := fs.Get(root)
	r.stack.Push(Frame{
		Path:  r.keyOf(file),
		File:  root,
		Lexer: lexer.New(file, lexer.Options{}),
	})
	return r
}

// Root returns the top-level file.
func (r *Resolver) Root() source.FileID { return r.root }

// Depth returns the number of files currently open.
func (r *Resolver) Depth() int { return r.stack.Depth() }

// Next returns the next resolved token. The root file's EOF token is the
// last token; later calls return io.EOF. Failures are sticky.
func (r *Resolver) Next() (token.Token, error) {
	for {
		if r.err != nil {
			return token.Token{}, r.err
		}
		if r.done {
			return token.Token{}, io.EOF
		}

		top, _ := r.stack.Top()
		tok, err := top.Lexer.Next()
		if err != nil {
			return token.Token{}, r.fail(err)
		}

		switch tok.Kind {
		case token.EOF:
			r.leave()
			return tok, nil
		case token.KwFileInclusionStart:
			if err := r.enter(top, tok); err != nil {
				return token.Token{}, r.fail(err)
			}
		case token.KwFileInclusionEnd:
			return token.Token{}, r.fail(diag.Errorf(diag.IncMalformedInclusion, tok.Span, r.pathOf(top),
				"\"$]\" without a matching \"$[\""))
		default:
			return tok, nil
		}
	}
}

// enter reads the rest of a "$[ path $]" directive and opens path.
// A skipped re-inclusion returns nil without pushing anything.
func (r *Resolver) enter(top *Frame, start token.Token) error {
	from := r.pathOf(top)

	name, err := top.Lexer.Next()
	if err != nil {
		return err
	}
	if name.Kind != token.Word {
		return diag.Errorf(diag.IncMalformedInclusion, name.Span, from,
			"expected a file name after \"$[\", found %s", describe(name))
	}
	end, err := top.Lexer.Next()
	if err != nil {
		return err
	}
	if end.Kind != token.KwFileInclusionEnd {
		return diag.Errorf(diag.IncMalformedInclusion, end.Span, from,
			"expected \"$]\" after file name %q, found %s", name.Text, describe(end))
	}
	directive := start.Span.Cover(end.Span)

	path := r.fs.ResolveFrom(name.Text, top.File)
	if r.stack.Contains(path) {
		return diag.Errorf(diag.IncCyclicInclusion, name.Span, from,
			"cyclic inclusion of %q: the file is still open", name.Text).
			WithNote(directive, "included here")
	}
	if _, seen := r.closed[path]; seen {
		switch r.opts.Reinclusion {
		case ReincludeSkip:
			trace.Point(r.opts.Tracer, trace.ScopeFile, "include.skip", path, r.opts.TraceParent)
			return nil
		case ReincludeForbid:
			return diag.Errorf(diag.IncRepeatedInclusion, name.Span, from,
				"file %q is included more than once", name.Text)
		}
	}
	if r.opts.MaxDepth > 0 && r.stack.Depth() >= r.opts.MaxDepth {
		return diag.Errorf(diag.IncTooDeep, name.Span, from,
			"including %q exceeds the maximum nesting depth of %d", name.Text, r.opts.MaxDepth)
	}

	id, err := r.fs.Load(path)
	if err != nil {
		return diag.FromLoadError(err, name.Span, from)
	}
	r.stack.Push(Frame{
		Path:      path,
		File:      id,
		Lexer:     lexer.New(r.fs.Get(id), lexer.Options{}),
		Directive: directive,
	})
	trace.Point(r.opts.Tracer, trace.ScopeFile, "include.enter", path, r.opts.TraceParent)
	return nil
}

// leave pops the file whose EOF was just read.
func (r *Resolver) leave() {
	if r.stack.Depth() == 1 {
		r.done = true
		return
	}
	f := r.stack.Pop()
	r.closed[f.Path] = struct{}{}
	trace.Point(r.opts.Tracer, trace.ScopeFile, "include.leave", f.Path, r.opts.TraceParent)
}

// fail records err and attaches the chain of directives that led to the
// innermost open file.
func (r *Resolver) fail(err error) error {
	if de, ok := diag.AsError(err); ok {
		for i := r.stack.Depth() - 1; i > 0; i-- {
			de.WithNote(r.stack.frames[i].Directive, "included from here")
		}
	}
	r.err = err
	return err
}

func (r *Resolver) pathOf(f *Frame) string {
	return r.fs.Get(f.File).Path
}

// keyOf gives virtual files the key a directive naming them would resolve to.
func (r *Resolver) keyOf(f *source.File) string {
	if f.Flags&source.FileVirtual != 0 {
		return source.ResolvePath(f.Path, r.fs.BaseDir())
	}
	return source.ResolvePath(f.Path, "")
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
