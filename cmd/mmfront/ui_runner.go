package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"mmfront/internal/driver"
	"mmfront/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckResult
	err     error
}

// runCheckWithUI runs driver.Check while a progress view follows its events.
func runCheckWithUI(ctx context.Context, out io.Writer, title string, paths []string, opts driver.Options) ([]driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, paths, opts)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the checker from blocking on a channel nobody reads
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
