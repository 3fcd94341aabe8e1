package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"mmfront/internal/diag"
	"mmfront/internal/source"
)

// Phase is one timed stage of a run.
type Phase struct {
	Name    string
	Started time.Time
	Elapsed time.Duration
	Note    string
}

// Timer records the stages of one run (load, tokenize, parse, digest).
// Methods may be called from several goroutines.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens phase name and returns the handle End takes.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(handle int, note string) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if handle < 0 || handle >= len(t.phases) {
		return
	}
	p := &t.phases[handle]
	p.Elapsed, p.Note = now.Sub(p.Started), note
}

// Measure times fn as phase name; a failing fn leaves the note "failed".
func (t *Timer) Measure(name string, fn func() error) error {
	h := t.Begin(name)
	err := fn()
	if err != nil {
		t.End(h, "failed")
	} else {
		t.End(h, "")
	}
	return err
}

// PhaseReport is one row of a Report.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is a snapshot of every phase in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	for _, p := range t.phases {
		ms := millis(p.Elapsed)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms, Note: p.Note})
	}
	return r
}

// Summary renders the report as an aligned table ending in a total row.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			fmt.Fprintf(&sb, "  // %s", note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

// Emit reports the summary as an OBS6001 info diagnostic anchored at the
// start of root.
func (t *Timer) Emit(r diag.Reporter, root source.FileID) {
	diag.ReportInfo(r, diag.ObsTimings, source.At(root, 0), strings.TrimSpace(t.Summary())).Emit()
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1000
}
