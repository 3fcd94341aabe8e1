package parser

import (
	"mmfront/internal/include"
	"mmfront/internal/trace"
)

// Options tune ParseFile and Builder.
type Options struct {
	Include include.Options
	// Tracer receives one production-scope point per production.
	Tracer      trace.Tracer
	TraceParent uint64
}
