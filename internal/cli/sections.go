package cli

import (
	"tempo-cli/internal/field"

	"github.com/spf13/cobra"
)

func newSectionsCmd(app *App) *cobra.Command {
	var ff fieldFlags
	var value string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Show the sections of a value with their ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.build(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v, err := parseValue(f, value)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := f.Init(v)
			order := f.SectionOrder()

			rows := make([]map[string]any, 0, len(st.Sections))
			for i, sec := range f.Sections(st) {
				row := map[string]any{
					"index":   i,
					"kind":    sec.Kind.String(),
					"display": f.DisplayValue(sec),
				}
				if sec.Kind == field.Separator {
					rows = append(rows, row)
					continue
				}
				row["token"] = sec.Token.Format
				row["part"] = sec.Token.Part
				row["value"] = sec.Value
				if b, ok := f.ValueBoundaries(st, i); ok {
					row["min"] = b.Min
					row["max"] = b.Max
				}
				if n, ok := order.Neighbors[i]; ok {
					row["left"] = n.Left
					row["right"] = n.Right
				}
				rows = append(rows, row)
			}
			return writeOut(cmd, app, map[string]any{
				"data": rows,
				"meta": map[string]any{"start": order.Start, "end": order.End},
			})
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVar(&value, "value", "", "Value to split (ISO 8601 or in the layout)")
	return cmd
}
