package tui

import (
	"context"
	"log/slog"
	"time"

	"lanes/internal/board"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Title  string
	Board  *board.Board
	Source board.Source
	// Failures, when set, should also be the board's OnPersistError sink.
	Failures     Failures
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Run shows the board until the user quits or ctx is done. A poller refreshes the board
// from Source in the background.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newBoardModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if opts.Source != nil {
		poller := &board.Poller{
			Source:    opts.Source,
			Board:     opts.Board,
			Interval:  opts.PollInterval,
			Logger:    opts.Logger,
			OnRefresh: func() { p.Send(refreshedMsg{}) },
			OnError:   func(err error) { p.Send(refreshErrMsg{err: err}) },
		}
		go func() { _ = poller.Run(ctx) }()
	}

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
