package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"lanes/internal/board"
	"lanes/internal/model"
	"lanes/internal/rank"
	"lanes/internal/statusutil"
	"lanes/internal/store"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Item commands",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	var status string
	var f boardFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			items, err := s.ListItems(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			defs, err := s.ListColumns(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			if strings.TrimSpace(status) != "" {
				if status, err = statusutil.NormalizeColumnID(status); err != nil {
					return writeErr(cmd, err)
				}
			}
			kept := make([]model.Item, 0, len(items))
			for _, it := range items {
				if status != "" && it.ColumnID != status {
					continue
				}
				if f.Personal && it.ProjectID != "" {
					continue
				}
				if f.ProjectID != "" && it.ProjectID != strings.TrimSpace(f.ProjectID) {
					continue
				}
				kept = append(kept, it)
			}
			return writeOut(cmd, app, map[string]any{"data": boardOrder(kept, defs)})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only items in this column")
	addBoardFilterFlags(cmd, &f)
	return cmd
}

// boardOrder sorts items column by column; items of unknown columns go last.
func boardOrder(items []model.Item, defs []model.ColumnDef) []model.Item {
	out := make([]model.Item, 0, len(items))
	known := map[string]bool{}
	for _, d := range defs {
		known[d.ID] = true
		out = append(out, board.Canonical(items, d.ID)...)
	}
	var rest []model.Item
	for _, it := range items {
		if !known[it.ColumnID] {
			rest = append(rest, it)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].ColumnID != rest[j].ColumnID {
			return rest[i].ColumnID < rest[j].ColumnID
		}
		if c := rank.Compare(rest[i].PositionKey, rest[j].PositionKey); c != 0 {
			return c < 0
		}
		return rest[i].ID < rest[j].ID
	})
	return append(out, rest...)
}

// columnHint is a "did you mean" suffix for an unknown column id, or "".
func columnHint(defs []model.ColumnDef, id string) string {
	if near, ok := statusutil.Suggest(defs, id); ok {
		return fmt.Sprintf(" (did you mean %q?)", near)
	}
	return ""
}

func newItemsCreateCmd(app *App) *cobra.Command {
	var in store.NewItem

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item at the end of a column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			cols, err := s.ListColumns(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(in.ColumnID) == "" {
				if len(cols) == 0 {
					return writeErr(cmd, errors.New("no columns; add one with `lanes columns add <id>`"))
				}
				in.ColumnID = cols[0].ID
			} else {
				if in.ColumnID, err = statusutil.NormalizeColumnID(in.ColumnID); err != nil {
					return writeErr(cmd, err)
				}
				if _, ok := statusutil.FindColumn(cols, in.ColumnID); !ok {
					return writeErr(cmd, fmt.Errorf("%w: %s%s", board.ErrUnknownColumn, in.ColumnID, columnHint(cols, in.ColumnID)))
				}
			}
			it, err := s.CreateItem(ctx, in)
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("item created", "item", it.ID, "status", it.ColumnID)
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "Item title")
	cmd.Flags().StringVar(&in.ColumnID, "status", "", "Column id (default: first column)")
	cmd.Flags().StringVar(&in.ProjectID, "project", "", "Project id")
	cmd.Flags().StringVar(&in.Description, "description", "", "Markdown description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			it, err := s.GetItem(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var before, after, to string

	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item before/after another item, or to the end of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, v := range []string{before, after, to} {
				if strings.TrimSpace(v) != "" {
					set++
				}
			}
			if set != 1 {
				return writeErr(cmd, errors.New("provide exactly one of --before, --after or --to"))
			}

			ctx := cmd.Context()
			s, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			id := strings.TrimSpace(args[0])
			if _, err := s.GetItem(ctx, id); err != nil {
				return writeErr(cmd, err)
			}

			var mu sync.Mutex
			var persistErrs []error
			b, err := newBoard(ctx, app, s, boardFilter{}, func(itemID string, err error) {
				mu.Lock()
				defer mu.Unlock()
				persistErrs = append(persistErrs, fmt.Errorf("persist %s: %w", itemID, err))
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			d := board.Drop{ItemID: id}
			if to != "" {
				if d.ColumnID, err = statusutil.NormalizeColumnID(to); err != nil {
					return writeErr(cmd, err)
				}
			}
			switch {
			case before != "":
				d.TargetID, d.Position = strings.TrimSpace(before), board.Before
			case after != "":
				d.TargetID, d.Position = strings.TrimSpace(after), board.After
			}
			plan, err := b.Move(ctx, d)
			if errors.Is(err, board.ErrUnknownColumn) {
				err = fmt.Errorf("%w%s", err, columnHint(b.ColumnDefs(), d.ColumnID))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			b.Wait()
			if err := errors.Join(persistErrs...); err != nil {
				return writeErr(cmd, err)
			}

			it, err := s.GetItem(ctx, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"item": it, "move": plan}})
		},
	}
	cmd.Flags().StringVar(&before, "before", "", "Move before item id")
	cmd.Flags().StringVar(&after, "after", "", "Move after item id")
	cmd.Flags().StringVar(&to, "to", "", "Move to the end of column id")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <item-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			id := strings.TrimSpace(args[0])
			if err := s.DeleteItem(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "deleted": true}})
		},
	}
}
