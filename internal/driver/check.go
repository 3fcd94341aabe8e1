package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"mmfront/internal/diag"
	"mmfront/internal/project"
	"mmfront/internal/source"
	"mmfront/internal/trace"
)

// CheckResult summarizes one database processed by Check.
type CheckResult struct {
	Path string
	// FileSet resolves the spans in Bag. It holds only the top-level file
	// when the result came from the cache.
	FileSet     *source.FileSet
	Bag         *diag.Bag
	Err         error
	Productions int
	Files       int
	Digest      project.Digest
	Elapsed     time.Duration
	Cached      bool
}

// OK reports whether the database was processed without a fault.
func (r *CheckResult) OK() bool { return r.Err == nil }

// Check parses every database in paths, at most opts.Jobs at a time, and
// returns one result per path in the same order. A fault in one database
// does not stop the others; the returned error is non-nil only when ctx is
// done.
func Check(ctx context.Context, paths []string, opts Options) ([]CheckResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentFromContext(ctx)).
		Set("databases", strconv.Itoa(len(paths)))
	defer span.End("")
	ctx = trace.WithParent(ctx, span)

	for _, path := range paths {
		opts.emit(Event{Path: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]CheckResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			res, err := checkOne(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkOne(ctx context.Context, path string, opts Options) (CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return CheckResult{}, err
	}
	start := time.Now()
	tracer := trace.FromContext(ctx)

	if opts.Cache != nil {
		if res, ok := opts.Cache.Lookup(path, opts); ok {
			res.Elapsed = time.Since(start)
			trace.Point(tracer, trace.ScopeStage, "cache.hit", path, trace.ParentFromContext(ctx))
			opts.emit(Event{Path: path, Status: StatusDone, Elapsed: res.Elapsed, Productions: res.Productions, Cached: true})
			return res, nil
		}
	}

	pr, err := Parse(ctx, path, opts)
	if err != nil {
		if isCancel(err) {
			return CheckResult{}, err
		}
		bag := opts.newBag()
		record(bag, err, nil, 0, Options{})
		res := CheckResult{Path: path, FileSet: source.NewFileSet(), Bag: bag, Err: err, Elapsed: time.Since(start)}
		opts.emit(Event{Path: path, Status: StatusError, Err: err, Elapsed: res.Elapsed})
		return res, nil
	}

	res := CheckResult{
		Path:        path,
		FileSet:     pr.FileSet,
		Bag:         pr.Bag,
		Err:         pr.Err,
		Productions: len(pr.Productions),
		Files:       pr.FileSet.Len(),
		Digest:      pr.Digest,
		Elapsed:     time.Since(start),
	}
	if res.OK() && opts.Cache != nil {
		if err := opts.Cache.Store(path, opts, pr); err != nil {
			trace.Point(tracer, trace.ScopeStage, "cache.store_failed", err.Error(), trace.ParentFromContext(ctx))
		}
	}

	status := StatusDone
	if !res.OK() {
		status = StatusError
	}
	opts.emit(Event{Path: path, Status: status, Err: res.Err, Elapsed: res.Elapsed, Productions: res.Productions})
	return res, nil
}
