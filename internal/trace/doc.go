// Package trace is the structured logging layer of mmfront.
//
// Every stage reports what it is doing as trace events: the driver brackets
// whole commands, stages (load, tokenize, parse) bracket themselves, the
// include resolver emits a point per entered and left file, and the production
// builder can emit one point per production at debug level.
//
//	mmfront parse --trace=- --trace-level=detail set.mm
//
// Sinks are Nop (tracing off), StreamTracer (text or NDJSON written as events
// arrive), RingTracer (last N events, dumped after a panic) and MultiTracer
// (fan-out). Levels off, error, phase, detail and debug select scopes: phase
// shows driver and stage boundaries, detail adds files, debug adds
// productions.
//
// Tracers and parent spans travel through context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", 0)
//	defer span.End("")
package trace
