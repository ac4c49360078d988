package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"lanes/internal/config"
	"lanes/internal/format"
	"lanes/internal/logging"
	"lanes/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	ConfigFile string
	PrettyJSON bool
	Format     string

	cfg       config.Config
	log       *slog.Logger
	logCloser io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "lanes",
		Short:        "Local kanban boards with drag-and-drop ordering",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  lanes

  # Scriptable commands
  lanes items create --title "Write release notes" --status todo
  lanes items move item-abc123 --after item-def456
  lanes board show --format yaml

  # Direct item lookup (shortcut for: lanes items show <item-id>)
  lanes item-abc123
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app, boardFilter{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "Path to the lanes dir (default: nearest .lanes, or $LANES_DIR)")
	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "Config file (default: $LANES_CONFIG or <dir>/config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LANES_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().Duration("poll-interval", 0, "How often the board refreshes from the store")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// setup resolves config and starts file logging. Runs before every command.
func (app *App) setup(cmd *cobra.Command) error {
	defaultDir, err := store.DefaultDir()
	if err != nil {
		return writeErr(cmd, err)
	}
	cfg, err := config.Load(config.Options{
		ConfigFile: app.ConfigFile,
		Flags:      cmd.Flags(),
		DefaultDir: defaultDir,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	app.Dir = cfg.Dir

	logger, closer, err := logging.Init(cfg.Dir, cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("init logging: %w", err))
	}
	app.log, app.logCloser = logger, closer
	app.log.Debug("command start", "cmd", cmd.CommandPath(), "dir", cfg.Dir, "config", cfg.File)
	return nil
}

func (app *App) teardown() error {
	if app.logCloser == nil {
		return nil
	}
	err := app.logCloser.Close()
	app.logCloser = nil
	return err
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return slog.Default()
	}
	return app.log
}

// openStore opens the store and seeds the configured default columns into an empty one.
func openStore(ctx context.Context, app *App) (*store.Store, error) {
	s, err := store.Open(ctx, app.Dir)
	if err != nil {
		return nil, err
	}
	s.Notify = func(msg string) { app.logger().Info("store change", "change", msg) }
	cols, err := s.ListColumns(ctx)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if len(cols) == 0 {
		if err := s.EnsureColumns(ctx, app.cfg.Board.DefaultColumns); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
