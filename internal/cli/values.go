package cli

import (
	"github.com/spf13/cobra"
)

func newValuesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values",
		Short: "Saved values",
	}
	cmd.AddCommand(newValuesListCmd(app))
	cmd.AddCommand(newValuesGetCmd(app))
	cmd.AddCommand(newValuesRmCmd(app))
	return cmd
}

func newValuesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := app.openValues(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer vs.Close()
			entries, err := vs.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}
}

func newValuesGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Show one saved value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := app.openValues(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer vs.Close()
			e, err := vs.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
}

func newValuesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a saved value and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := app.openValues(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer vs.Close()
			if err := vs.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"name": args[0], "deleted": true}})
		},
	}
}
