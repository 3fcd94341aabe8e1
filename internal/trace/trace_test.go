package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeFile, true},
		{LevelPhase, ScopeStage, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeProduction, false},
		{LevelDebug, ScopeProduction, true},
	}
	for _, tc := range cases {
		if got := tc.level.Allows(tc.scope); got != tc.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel("Detail"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil || !strings.Contains(err.Error(), "off|error|phase|detail|debug") {
		t.Errorf("ParseLevel must reject unknown levels, got %v", err)
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil || !strings.Contains(err.Error(), "stream|ring|both") {
		t.Errorf("ParseMode must reject unknown modes, got %v", err)
	}
	for in, want := range map[string]Format{"": FormatAuto, "text": FormatText, "json": FormatNDJSON, "NDJSON": FormatNDJSON} {
		if f, err := ParseFormat(in); err != nil || f != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, f, err)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeStage, "parse", 0)
	Point(tr, ScopeFile, "include", "b.mm", span.ID())
	Point(tr, ScopeProduction, "production", "hidden", span.ID())
	span.Set("productions", "3").Set("files", "2").End("ok")

	out := buf.String()
	for _, want := range []string{"→ parse", "  • include (b.mm)", "← parse (ok) {productions=3, files=2}"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("production scope must be filtered at detail level:\n%s", out)
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "check", 0).Set("databases", "2").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "check" || ev["scope"] != "driver" {
		t.Errorf("unexpected event %v", ev)
	}
	if attrs, _ := ev["attrs"].(map[string]any); attrs["databases"] != "2" {
		t.Errorf("attrs = %v", ev["attrs"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeFile, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "• a") || !strings.Contains(buf.String(), "• c") {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestMultiTracerAndContext(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelError)
	multi := NewMultiTracer(LevelError, NewStreamTracer(&buf, LevelError, FormatText), ring)

	ctx := WithTracer(context.Background(), multi)
	if FromContext(ctx) != Tracer(multi) {
		t.Fatal("tracer not propagated")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer must fall back to Nop")
	}

	span := Begin(FromContext(ctx), ScopeStage, "load", 0)
	ctx = WithParent(ctx, span)
	if ParentFromContext(ctx) != span.ID() || span.ID() == 0 {
		t.Fatal("parent span not propagated")
	}
	span.End("")

	if buf.Len() != 0 {
		t.Errorf("stream must stay silent at error level, got %q", buf.String())
	}
	if multi.Ring() != ring || len(ring.Snapshot()) != 2 {
		t.Errorf("ring should keep both events, got %d", len(ring.Snapshot()))
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || On(tr, ScopeDriver) {
		t.Fatalf("off config must yield a disabled tracer")
	}
	if span := Begin(tr, ScopeDriver, "x", 0); span.ID() != 0 || span.Set("k", "v").End("") != 0 {
		t.Fatal("spans of a disabled tracer must be inert")
	}
	if On(nil, ScopeDriver) {
		t.Fatal("nil tracer must be off")
	}
}

func TestHeartbeat(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(context.Background(), ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()

	snap := ring.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || snap[0].Detail != "#1" {
		t.Fatalf("unexpected heartbeat events %+v", snap)
	}
	if StartHeartbeat(context.Background(), Nop, time.Millisecond) != nil {
		t.Error("heartbeat must not start when tracing is off")
	}
	(*Heartbeat)(nil).Stop()
}
