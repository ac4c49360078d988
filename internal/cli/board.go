package cli

import (
	"context"
	"errors"
	"strings"

	"lanes/internal/board"
	"lanes/internal/publish"
	"lanes/internal/store"

	"github.com/spf13/cobra"
)

// boardFilter picks the board variant: every item, one project, or personal items.
type boardFilter struct {
	ProjectID string
	Personal  bool
}

func (f boardFilter) validate() error {
	if f.Personal && strings.TrimSpace(f.ProjectID) != "" {
		return errors.New("use at most one of --project or --personal")
	}
	return nil
}

// newBoard builds the board variant for f and loads the current items into it.
func newBoard(ctx context.Context, app *App, s *store.Store, f boardFilter, onPersistErr func(string, error)) (*board.Board, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	defs, err := s.ListColumns(ctx)
	if err != nil {
		return nil, err
	}

	var opts board.Options
	switch {
	case f.Personal:
		opts = board.PersonalBoard(defs)
	case strings.TrimSpace(f.ProjectID) != "":
		if _, err := s.GetProject(ctx, f.ProjectID); err != nil {
			return nil, err
		}
		opts = board.ProjectBoard(f.ProjectID, defs)
	default:
		opts = board.DefaultBoard(defs)
	}
	opts.Persister = s
	opts.Logger = app.logger()
	opts.OnPersistError = onPersistErr

	b := board.New(opts)
	items, err := s.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	b.Refresh(items)
	return b, nil
}

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board commands",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(newBoardPublishCmd(app))
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var f boardFilter

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print every column with its items in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := newBoard(ctx, app, s, f, nil)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b.Columns()})
		},
	}
	addBoardFilterFlags(cmd, &f)
	return cmd
}

func newBoardPublishCmd(app *App) *cobra.Command {
	var f boardFilter
	var to string
	var overwrite, asHTML bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the board as markdown or HTML pages (an index plus one page per item)",
		Example: strings.TrimSpace(`
  lanes board publish --to ./site
  lanes board publish --project proj-abc123 --to ./launch --overwrite
  lanes board publish --html --to ./public
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			b, err := newBoard(ctx, app, s, f, nil)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects, err := s.ListProjects(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			names := make(map[string]string, len(projects))
			for _, p := range projects {
				names[p.ID] = p.Name
			}

			res, err := publish.WriteBoard(b.Columns(), to, publish.WriteOptions{
				Title:     boardTitle(ctx, s, f),
				Overwrite: overwrite,
				HTML:      asHTML,
				Render:    publish.RenderOptions{Projects: names},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("board published", "to", to, "files", len(res.Written))
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	addBoardFilterFlags(cmd, &f)
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Write HTML pages instead of markdown")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func addBoardFilterFlags(cmd *cobra.Command, f *boardFilter) {
	cmd.Flags().StringVar(&f.ProjectID, "project", "", "Only items of this project")
	cmd.Flags().BoolVar(&f.Personal, "personal", false, "Only items without a project")
}
