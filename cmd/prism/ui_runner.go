package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"prism/internal/driver"
	"prism/internal/source"
	"prism/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []*driver.CheckResult
	err     error
}

// runCheckWithUI drives a directory check while a Bubble Tea progress view
// consumes completion events.
func runCheckWithUI(ctx context.Context, dir string, opts driver.CheckOptions) (*source.FileSet, []*driver.CheckResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fs, results, err := driver.CheckDir(ctx, dir, opts,
			func(path string, done, total int, result *driver.CheckResult) {
				events <- ui.Event{
					Path:   path,
					Failed: result.HasErrors(),
					Cached: result.FromCache,
				}
			})
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
