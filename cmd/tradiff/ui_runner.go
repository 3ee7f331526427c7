package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tradiff/internal/driver"
	"tradiff/internal/pipeline"
	"tradiff/internal/ui"
)

type compareOutcome struct {
	result *driver.CompareResult
	err    error
}

// runCompareWithUI runs the comparison while a progress view renders its
// events on out.
func runCompareWithUI(ctx context.Context, files []string, opts driver.Options, out io.Writer) (*driver.CompareResult, error) {
	events := make(chan pipeline.Event, 64)
	outcomeCh := make(chan compareOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Compare(ctx, files[0], files[1], optsCopy)
		outcomeCh <- compareOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("comparing", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the comparison can finish
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
