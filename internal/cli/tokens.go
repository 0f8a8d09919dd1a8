package cli

import (
	"github.com/spf13/cobra"
)

func newTokensCmd(app *App) *cobra.Command {
	var ff fieldFlags

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Show how a layout splits into sections",
		Example: `  tempo tokens --layout "[Due] YYYY-MM-DD"
  tempo tokens --layout LLL --locale fr`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.build(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := f.ParsedFormat()
			if app.Format == "table" {
				return writeOut(cmd, app, map[string]any{"data": p.Tokens})
			}
			return writeOut(cmd, app, map[string]any{
				"data": p,
				"meta": map[string]any{
					"kind":   f.Manager().Kind(),
					"locale": f.Adapter().Locale().Name,
					"layout": p.Layout(),
				},
			})
		},
	}
	ff.register(cmd)
	return cmd
}
