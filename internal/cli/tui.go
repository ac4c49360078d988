package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"lanes/internal/store"
	"lanes/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	var f boardFilter

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, f)
		},
	}
	addBoardFilterFlags(cmd, &f)
	return cmd
}

func runTUI(cmd *cobra.Command, app *App, f boardFilter) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	fails := tui.NewFailures()
	b, err := newBoard(ctx, app, s, f, fails.Report)
	if err != nil {
		return writeErr(cmd, err)
	}
	// Moves still in flight at quit time get to finish.
	defer b.Wait()

	err = tui.Run(ctx, tui.Options{
		Title:        boardTitle(ctx, s, f),
		Board:        b,
		Source:       s,
		Failures:     fails,
		PollInterval: app.cfg.PollInterval,
		Logger:       app.logger(),
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func boardTitle(ctx context.Context, s *store.Store, f boardFilter) string {
	switch {
	case f.Personal:
		return "lanes · personal"
	case f.ProjectID != "":
		if p, err := s.GetProject(ctx, f.ProjectID); err == nil {
			return fmt.Sprintf("lanes · %s", p.Name)
		}
		return "lanes · " + f.ProjectID
	default:
		return "lanes"
	}
}
