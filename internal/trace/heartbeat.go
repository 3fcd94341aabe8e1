package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat emits periodic events while a long check runs; a stalled parse
// shows up as heartbeats without stage end events.
type Heartbeat struct {
	stop context.CancelFunc
	done chan struct{}
}

// StartHeartbeat emits a heartbeat every interval until Stop or ctx ends.
// It returns nil when tracing is off or interval <= 0.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return nil
	}
	ctx, stop := context.WithCancel(ctx)
	h := &Heartbeat{stop: stop, done: make(chan struct{})}
	go h.run(ctx, t, interval)
	return h
}

func (h *Heartbeat) run(ctx context.Context, t Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	gid := goroutineID()
	for beat := 1; ; beat++ {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:      now,
				Seq:       NextSeq(),
				Kind:      KindHeartbeat,
				Scope:     ScopeDriver,
				Goroutine: gid,
				Name:      "heartbeat",
				Detail:    "#" + strconv.Itoa(beat),
			})
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Safe on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stop()
	<-h.done
}
