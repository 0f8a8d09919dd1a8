package cli

import (
	"tempo-cli/internal/field"

	"github.com/spf13/cobra"
)

func newTypeCmd(app *App) *cobra.Command {
	var ff fieldFlags
	var value, name string
	var selectIdx int

	cmd := &cobra.Command{
		Use:   "type KEYS...",
		Short: "Replay keystrokes into a field and print the result",
		Long: `Each argument is typed one character at a time, except named keys in
angle brackets: <left> <right> <up> <down> <pgup> <pgdown> <home> <end>
<backspace> <delete> <ctrl+a> <esc> and <paste:TEXT>.`,
		Example: `  tempo type --layout "MM/DD/YYYY" 12 25 2025
  tempo type --layout "HH:mm" --value 09:58 "<right>" "<pgup>"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := field.ParseKeys(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := ff.build(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			initial, err := parseValue(f, value)
			if err != nil {
				return writeErr(cmd, err)
			}

			s := field.NewSession(f, initial)
			defer s.Close()
			if err := s.Sync(initial, false); err != nil {
				return writeErr(cmd, err)
			}
			changes := 0
			s.OnChange(func(prev, next field.State) {
				changes++
				app.logger().Debug("value changed", "from", prev.Value.String(), "to", next.Value.String())
			})

			start := selectIdx
			if start < 0 {
				start = f.SectionOrder().Start
			}
			s.Apply(func(f *field.Field, st field.State) field.State {
				return f.SetSelection(st, field.Selection(start))
			})
			trace := make([]string, 0, len(keys))
			for _, k := range keys {
				st := s.HandleKey(k)
				trace = append(trace, k.String()+" "+f.Text(st))
			}

			st := s.State()
			out := stateView(f, st)
			if name != "" {
				e, err := saveValue(cmd, app, name, f, st)
				if err != nil {
					return writeErr(cmd, err)
				}
				out["name"] = e.Name
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"keys":    len(keys),
					"changes": changes,
					"trace":   trace,
				},
			})
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&value, "value", "", "Initial value (ISO 8601 or in the layout)")
	cmd.Flags().StringVar(&name, "name", "", "Save the result under this name")
	cmd.Flags().IntVar(&selectIdx, "select", -1, "Section index to start in (default: the first on screen)")
	return cmd
}
