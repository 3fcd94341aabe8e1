package ui

import (
	"strings"
	"testing"

	"mmfront/internal/driver"
)

func newTestModel(paths ...string) *progressModel {
	return NewProgressModel("checking", paths, nil).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newTestModel("a.mm", "b.mm")

	m.applyEvent(driver.Event{Path: "a.mm", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Errorf("status = %q", m.items[0].status)
	}
	if got := m.fraction(); got != 0.1 {
		t.Errorf("fraction = %v, want 0.1", got)
	}

	m.applyEvent(driver.Event{Path: "a.mm", Status: driver.StatusDone, Productions: 7})
	m.applyEvent(driver.Event{Path: "b.mm", Status: driver.StatusDone, Cached: true, Productions: 3})
	if m.items[0].status != "done" || m.items[1].status != "cached" {
		t.Errorf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.fraction() != 1.0 || m.finishedCount() != 2 {
		t.Errorf("fraction = %v, finished = %d", m.fraction(), m.finishedCount())
	}

	m.applyEvent(driver.Event{Path: "unknown.mm", Status: driver.StatusError})
}

func TestViewListsDatabases(t *testing.T) {
	m := newTestModel("a.mm", "b.mm")
	m.applyEvent(driver.Event{Path: "a.mm", Status: driver.StatusDone, Productions: 7})
	m.applyEvent(driver.Event{Path: "b.mm", Status: driver.StatusError})

	view := m.View()
	for _, want := range []string{"checking (2/2)", "a.mm  7 productions", "error", "b.mm"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "b.mm  0 productions") {
		t.Errorf("failed database shows a production count:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
