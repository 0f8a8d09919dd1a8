package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set with -ldflags "-X tempo-cli/internal/cli.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd(app *App) *cobra.Command {
	var short bool
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tempo version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = "json"
				if app.Format == "edn" || app.Format == "table" {
					output = "yaml"
				}
			}
			resp := goversion.FuncWithOutput(short, version, commit, date, output)
			_, err := fmt.Fprint(cmd.OutOrStdout(), resp)
			return err
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (json|yaml)")
	return cmd
}
