package cli

import (
	"fmt"
	"strings"

	"tempo-cli/internal/adapter"
	"tempo-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newPasteCmd(app *App) *cobra.Command {
	var ff fieldFlags
	var name string
	var fromClipboard bool

	cmd := &cobra.Command{
		Use:   "paste [TEXT]",
		Short: "Parse text as a whole value in the layout",
		Example: `  tempo paste --layout "DD.MM.YYYY" 24.12.2025
  tempo paste --layout "L" --clipboard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			switch {
			case fromClipboard && len(args) > 0:
				return writeErr(cmd, fmt.Errorf("pass TEXT or --clipboard, not both"))
			case fromClipboard:
				s, err := tui.ReadClipboard()
				if err != nil {
					return writeErr(cmd, err)
				}
				text = s
			case len(args) == 1:
				text = args[0]
			default:
				return writeErr(cmd, fmt.Errorf("nothing to paste: pass TEXT or --clipboard"))
			}

			f, err := ff.build(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			before := f.Init(adapter.Date{})
			st := f.Paste(before, text)
			if !st.Value.IsValid() {
				return writeErr(cmd, fmt.Errorf("%q does not match layout %q", strings.TrimSpace(text), f.Format()))
			}

			out := stateView(f, st)
			if name != "" {
				e, err := saveValue(cmd, app, name, f, st)
				if err != nil {
					return writeErr(cmd, err)
				}
				out["name"] = e.Name
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "Save the result under this name")
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the text from the clipboard")
	return cmd
}
