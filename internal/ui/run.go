package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"dndml/internal/driver"
	"dndml/internal/source"
)

// ErrAborted is returned when the user quits the progress view early.
var ErrAborted = errors.New("aborted")

// RunParseDir runs driver.ParseDir behind the progress view written to out.
// opts.Progress is replaced.
func RunParseDir(ctx context.Context, dir string, opts driver.Options, out io.Writer) (*source.FileSet, []driver.ParseDirResult, error) {
	files, err := driver.ListSheetFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 64)
	opts.Progress = driver.ChannelSink{Ch: events}

	type outcome struct {
		fs      *source.FileSet
		results []driver.ParseDirResult
		err     error
	}
	finished := make(chan outcome, 1)
	go func() {
		fs, results, err := driver.ParseDir(ctx, dir, opts)
		close(events)
		finished <- outcome{fs, results, err}
	}()

	model := newProgressModel("parsing "+dir, files, events)
	_, runErr := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx)).Run()
	if runErr != nil || model.aborted {
		cancel()
		// workers block on the sink until someone reads
		go func() {
			for range events {
			}
		}()
	}
	res := <-finished
	switch {
	case model.aborted:
		return res.fs, res.results, ErrAborted
	case runErr != nil:
		return res.fs, res.results, runErr
	}
	return res.fs, res.results, res.err
}
