package cli

import (
	"errors"
	"time"

	"tempo-cli/internal/adapter"
	"tempo-cli/internal/store"
	"tempo-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var ff fieldFlags
	var name, value string
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a value interactively",
		Long: `Opens an interactive field. Enter prints the value; with --name it is
also saved to the value store and loaded from it next time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.build(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			initial, err := parseValue(f, value)
			if err != nil {
				return writeErr(cmd, err)
			}
			if value == "" && name != "" {
				if initial, err = loadNamed(cmd, app, name, f.Adapter().Location()); err != nil {
					return writeErr(cmd, err)
				}
			}

			label := name
			if label == "" {
				label = f.Format()
			}
			profile := ""
			if t := app.config().TUI; t != nil {
				profile = t.Profile
			}
			res, err := tui.Run(f, initial, tui.Options{Label: label, Profile: profile})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("edit accepted", "name", name, "value", res.Value.String())

			out := stateView(f, res.State)
			if name != "" {
				e, err := saveValue(cmd, app, name, f, res.State)
				if err != nil {
					return writeErr(cmd, err)
				}
				out["name"] = e.Name
				out["updatedAt"] = e.UpdatedAt
			}
			if copyOut && res.Text != "" {
				if err := tui.WriteClipboard(res.Text); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Load and save the value under this name")
	cmd.Flags().StringVar(&value, "value", "", "Initial value (ISO 8601 or in the layout)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the accepted text to the clipboard")

	return cmd
}

// loadNamed returns the stored value for name, or the empty value when
// nothing is stored yet.
func loadNamed(cmd *cobra.Command, app *App, name string, loc *time.Location) (adapter.Date, error) {
	vs, err := app.openValues(cmd)
	if err != nil {
		return adapter.Date{}, err
	}
	defer vs.Close()
	e, err := vs.Get(cmd.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return adapter.Date{}, nil
	}
	if err != nil {
		return adapter.Date{}, err
	}
	return entryDate(e, loc), nil
}

func entryDate(e store.Entry, loc *time.Location) adapter.Date {
	switch e.State {
	case store.StateValid:
		t, err := time.Parse(time.RFC3339, e.Value)
		if err != nil {
			return adapter.InvalidDate()
		}
		return adapter.DateOf(t.In(loc))
	case store.StateInvalid:
		return adapter.InvalidDate()
	}
	return adapter.Date{}
}
