package driver

import (
	"context"
	"strconv"
	"time"

	"mmfront/internal/diag"
	"mmfront/internal/observ"
	"mmfront/internal/parser"
	"mmfront/internal/project"
	"mmfront/internal/source"
	"mmfront/internal/trace"
)

// ParseResult holds the productions of one database.
type ParseResult struct {
	FileSet     *source.FileSet
	Root        source.FileID
	Productions []parser.Production
	Bag         *diag.Bag
	// Err is the fault that stopped the builder; Productions holds every
	// production completed before it.
	Err error
	// Digest covers every file loaded, valid only when Err is nil.
	Digest project.Digest
	Timer  *observ.Timer
}

// Path returns the resolved path of the top-level file.
func (r *ParseResult) Path() string {
	if f := r.FileSet.Get(r.Root); f != nil {
		return f.Path
	}
	return ""
}

// Parse builds the production stream of the database rooted at path. The
// returned error is non-nil only when path itself cannot be read or ctx is
// done; faults inside the database land in ParseResult.Err and its Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "parse", trace.ParentFromContext(ctx)).Set("path", path)
	defer span.End("")
	start := time.Now()

	opts.emit(Event{Path: path, Stage: StageLoad, Status: StatusWorking})
	timer := observ.NewTimer()
	fs, root, err := loadRoot(path, timer)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{FileSet: fs, Root: root, Bag: opts.newBag(), Timer: timer}

	opts.emit(Event{Path: path, Stage: StageParse, Status: StatusWorking, Elapsed: time.Since(start)})
	idx := timer.Begin("parse")
	b := parser.ParseFile(ctx, fs, root, parser.Options{
		Include:     opts.includeOptions(tracer, span.ID()),
		Tracer:      tracer,
		TraceParent: span.ID(),
	})
	res.Productions, res.Err = b.Collect()
	timer.End(idx, strconv.Itoa(len(res.Productions))+" productions")
	if res.Err != nil && isCancel(res.Err) {
		return nil, res.Err
	}

	if res.Err == nil {
		opts.emit(Event{Path: path, Stage: StageDigest, Status: StatusWorking, Elapsed: time.Since(start)})
		idx = timer.Begin("digest")
		res.Digest = project.DatabaseDigest(fs, root)
		timer.End(idx, "")
	}

	record(res.Bag, res.Err, timer, root, opts)
	span.Set("productions", strconv.Itoa(len(res.Productions)))
	return res, nil
}
