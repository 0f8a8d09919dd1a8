package cli

import (
	"fmt"

	"tempo-cli/internal/docs"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var style string
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show documentation topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `tempo docs` to list topics)", topic))
			}
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			if style == "" {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
			}

			if width <= 0 {
				width = 80
				if w, _, err := term.GetSize(1); err == nil && w > 0 {
					width = w
				}
			}
			out, err := docs.Render(topic, style, width)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no envelope)")
	cmd.Flags().StringVar(&style, "render", "", "Render for the terminal with a style (auto|dark|light|notty)")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width when rendering (default: terminal width)")

	return cmd
}
