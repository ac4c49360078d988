package cli

import (
	"lanes/internal/model"

	"github.com/spf13/cobra"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "columns",
		Aliases: []string{"cols"},
		Short:   "Board column commands",
	}
	cmd.AddCommand(newColumnsListCmd(app))
	cmd.AddCommand(newColumnsAddCmd(app))
	return cmd
}

func newColumnsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			cols, err := s.ListColumns(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cols})
		},
	}
}

func newColumnsAddCmd(app *App) *cobra.Command {
	var label string
	var personal bool

	cmd := &cobra.Command{
		Use:   "add <column-id>",
		Short: "Add a column after the existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			c, err := s.AddColumn(cmd.Context(), model.ColumnDef{ID: args[0], Label: label, PersonalOnly: personal})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Display label (default: the id)")
	cmd.Flags().BoolVar(&personal, "personal-only", false, "Refuse items that belong to a project")
	return cmd
}
