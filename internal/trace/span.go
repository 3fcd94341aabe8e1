package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// NextSeq returns the next process-wide sequence number.
func NextSeq() uint64 { return seq.Add(1) }

// goroutineID reads N from the "goroutine N [" header of runtime.Stack.
func goroutineID() uint64 {
	var buf [64]byte
	head, ok := bytes.CutPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if !ok {
		return 0
	}
	num, _, _ := bytes.Cut(head, []byte(" "))
	id, _ := strconv.ParseUint(string(num), 10, 64)
	return id
}

// Span brackets one operation with a begin and an end event. The zero Span
// and spans of disabled scopes are inert.
type Span struct {
	tracer  Tracer
	start   time.Time
	ev      Event // template shared by both events
	pending []Attr
}

// Begin emits the begin event of a new span. parent is 0 for roots.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !On(t, scope) {
		return &Span{}
	}
	s := &Span{
		tracer: t,
		start:  time.Now(),
		ev: Event{
			Scope:     scope,
			Span:      spanIDs.Add(1),
			Parent:    parent,
			Goroutine: goroutineID(),
			Name:      name,
		},
	}
	begin := s.ev
	begin.Time, begin.Seq, begin.Kind = s.start, NextSeq(), KindSpanBegin
	t.Emit(&begin)
	return s
}

// Set attaches key=value to the end event.
func (s *Span) Set(key, value string) *Span {
	if s != nil && s.tracer != nil {
		s.pending = append(s.pending, Attr{key, value})
	}
	return s
}

// End emits the end event and returns how long the span ran.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	end := s.ev
	end.Time, end.Seq, end.Kind = now, NextSeq(), KindSpanEnd
	end.Detail, end.Attrs = detail, s.pending
	s.tracer.Emit(&end)
	return now.Sub(s.start)
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.ev.Span
}

// Point emits an instant event when scope is enabled.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !On(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:      time.Now(),
		Seq:       NextSeq(),
		Kind:      KindPoint,
		Scope:     scope,
		Parent:    parent,
		Goroutine: goroutineID(),
		Name:      name,
		Detail:    detail,
	})
}
