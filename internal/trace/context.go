package trace

import "context"

type ctxKey uint8

const (
	tracerKey ctxKey = iota
	parentKey
)

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithParent makes span the parent of spans begun below ctx.
func WithParent(ctx context.Context, span *Span) context.Context {
	return context.WithValue(ctx, parentKey, span.ID())
}

// ParentFromContext returns the span ID stored by WithParent, or 0.
func ParentFromContext(ctx context.Context) uint64 {
	if ctx != nil {
		if id, ok := ctx.Value(parentKey).(uint64); ok {
			return id
		}
	}
	return 0
}
