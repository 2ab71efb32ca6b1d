package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/custodia-labs/dairyghg/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dairyghg/internal/core/domain"
	"github.com/custodia-labs/dairyghg/internal/core/ports/driving"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RunBatch runs the batch behind a progress view drawn on out.
// Quitting the view cancels the run; the runner's result is returned
// either way.
func RunBatch(
	ctx context.Context,
	runner driving.BatchRunner,
	records []domain.FarmRecord,
	opts driving.RunOptions,
	in io.Reader,
	out io.Writer,
) (*domain.BatchReport, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewProgressModel(len(records), cancel)
	p := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out), tea.WithContext(ctx))

	type result struct {
		report *domain.BatchReport
		err    error
	}
	done := make(chan result, 1)

	callerProgress := opts.Progress
	opts.Progress = func(e domain.BatchEntry) {
		if callerProgress != nil {
			callerProgress(e)
		}
		p.Send(messages.EntryDone{Entry: e})
	}

	go func() {
		report, err := runner.Run(ctx, records, opts)
		p.Send(messages.RunFinished{Report: report, Err: err})
		done <- result{report: report, err: err}
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		r := <-done
		if r.err != nil {
			return r.report, r.err
		}
		return r.report, fmt.Errorf("progress view: %w", err)
	}

	r := <-done
	return r.report, r.err
}
