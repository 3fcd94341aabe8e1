package driver

import (
	"mmfront/internal/diag"
	"mmfront/internal/include"
	"mmfront/internal/trace"
)

// DefaultMaxDiagnostics bounds a result's Bag when Options leaves it zero.
const DefaultMaxDiagnostics = 100

// Options tune Tokenize, Parse and Check.
type Options struct {
	Reinclusion    include.Policy
	MaxDepth       int // 0 is unlimited
	MaxDiagnostics int
	// Timings appends an OBS6001 summary to the result's Bag.
	Timings bool

	// Jobs bounds the number of databases Check processes at once;
	// 0 means runtime.GOMAXPROCS(0).
	Jobs     int
	Progress ProgressSink
	// Cache, when set, lets Check skip databases whose files are unchanged
	// since their last clean run.
	Cache *DiskCache
}

func (o Options) newBag() *diag.Bag {
	max := o.MaxDiagnostics
	if max == 0 {
		max = DefaultMaxDiagnostics
	}
	return diag.NewBag(max)
}

func (o Options) includeOptions(t trace.Tracer, parent uint64) include.Options {
	return include.Options{
		Reinclusion: o.Reinclusion,
		MaxDepth:    o.MaxDepth,
		Tracer:      t,
		TraceParent: parent,
	}
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
