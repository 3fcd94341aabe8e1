package driver

import (
	"context"
	"errors"

	"mmfront/internal/diag"
	"mmfront/internal/observ"
	"mmfront/internal/source"
)

// loadRoot reads the top-level file of a database into a fresh FileSet.
func loadRoot(path string, timer *observ.Timer) (*source.FileSet, source.FileID, error) {
	fs := source.NewFileSet()
	var root source.FileID
	err := timer.Measure("load", func() error {
		id, err := fs.Load(path)
		if err != nil {
			return diag.FromLoadError(err, source.Span{}, path)
		}
		root = id
		return nil
	})
	return fs, root, err
}

// record copies the fault into bag and appends the timing summary when asked.
func record(bag *diag.Bag, fault error, timer *observ.Timer, root source.FileID, opts Options) {
	rep := diag.BagReporter{Bag: bag}
	if de, ok := diag.AsError(fault); ok {
		diag.ReportError(rep, de)
	}
	if opts.Timings {
		timer.Emit(rep, root)
	}
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
