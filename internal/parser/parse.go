package parser

import (
	"context"

	"mmfront/internal/include"
	"mmfront/internal/source"
)

// ParseFile wires the include resolver over root into a Builder. The
// resolver inherits the builder's tracer unless opts.Include sets its own.
func ParseFile(ctx context.Context, fs *source.FileSet, root source.FileID, opts Options) *Builder {
	incOpts := opts.Include
	if incOpts.Tracer == nil {
		incOpts.Tracer = opts.Tracer
		incOpts.TraceParent = opts.TraceParent
	}
	return NewBuilder(ctx, include.New(fs, root, incOpts), fs, opts)
}

// ParseSource parses a database held in memory. name is used for positions
// and as the key for self-inclusion checks; included files are read from
// fs.BaseDir().
func ParseSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) ([]Production, error) {
	root := fs.AddVirtual(name, content)
	return ParseFile(ctx, fs, root, opts).Collect()
}
