// Package ui renders live progress of "mmfront check" in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mmfront/internal/driver"
)

// stageInfo is how a working database is shown and how far along it counts.
type stageInfo struct {
	label  string
	weight float64
}

var stages = map[driver.Stage]stageInfo{
	driver.StageLoad:   {"loading", 0.05},
	driver.StageParse:  {"parsing", 0.2},
	driver.StageDigest: {"hashing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	busyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyles = map[string]lipgloss.Style{
		"done":   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"queued": lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

const statusWidth = 12

// dbItem is one database row.
type dbItem struct {
	path        string
	status      string
	stage       driver.Stage
	productions int
	finished    bool
}

// apply folds ev into the row.
func (it *dbItem) apply(ev driver.Event) {
	if ev.Stage != "" {
		it.stage = ev.Stage
	}
	switch ev.Status {
	case driver.StatusQueued:
		it.status = "queued"
	case driver.StatusWorking:
		if info, ok := stages[ev.Stage]; ok {
			it.status = info.label
		}
	case driver.StatusDone, driver.StatusError:
		it.finished, it.productions = true, ev.Productions
		switch {
		case ev.Status == driver.StatusError:
			it.status = "error"
		case ev.Cached:
			it.status = "cached"
		default:
			it.status = "done"
		}
	}
}

// progressShare is the row's contribution to the bar, in [0, 1].
func (it *dbItem) progressShare() float64 {
	if it.finished {
		return 1
	}
	return stages[it.stage].weight
}

func (it *dbItem) render(nameWidth int) string {
	style, ok := statusStyles[it.status]
	if !ok {
		style = busyStyle
	}
	line := "  " + style.Render(fmt.Sprintf("%*s", statusWidth, it.status)) + " " + truncate(it.path, nameWidth)
	if it.finished && it.status != "error" {
		line += fmt.Sprintf("  %d productions", it.productions)
	}
	return line
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []dbItem
	rows    map[string]int // path -> index in items
	width   int
	done    bool
}

// NewProgressModel returns a Bubble Tea model that follows events for paths
// until the channel is closed.
func NewProgressModel(title string, paths []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(busyStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]dbItem, len(paths)),
		rows:    make(map[string]int, len(paths)),
		width:   80,
	}
	for i, path := range paths {
		m.items[i] = dbItem{path: path, status: "queued"}
		m.rows[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent)
}

// waitEvent blocks on the next driver event.
func (m *progressModel) waitEvent() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return doneMsg{}
	}
	return eventMsg(ev)
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.waitEvent)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width, m.bar.Width = msg.Width, msg.Width-4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.rows[ev.Path]
	if !ok {
		return nil
	}
	m.items[i].apply(ev)
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) finishedCount() int {
	n := 0
	for i := range m.items {
		if m.items[i].finished {
			n++
		}
	}
	return n
}

func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	sum := 0.0
	for i := range m.items {
		sum += m.items[i].progressShare()
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finishedCount(), len(m.items))
	bar := m.bar.View()
	if m.done {
		header, bar = "done: "+header, m.bar.ViewAs(1)
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header) + "\n\n")
	nameWidth := max(m.width-statusWidth-16, 20)
	for i := range m.items {
		b.WriteString(m.items[i].render(nameWidth) + "\n")
	}
	b.WriteString("\n" + bar + "\n")
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with "..."
// when there is room for it.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
