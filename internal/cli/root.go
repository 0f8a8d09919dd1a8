package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"tempo-cli/internal/format"
	"tempo-cli/internal/store"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir  string
	Locale     string
	TZ         string
	PrettyJSON bool
	Format     string
	LogFile    string
	LogLevel   string

	cfg     *store.Config
	log     *slog.Logger
	logFile io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}
	edit := newEditCmd(app)

	cmd := &cobra.Command{
		Use:          "tempo",
		Short:        "Edit dates and times one section at a time",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit a date interactively
  tempo

  # Edit a named value with a localized layout
  tempo edit --name due --layout "L LT" --locale en-GB

  # Replay keystrokes and print the result
  tempo type --layout "MM/DD/YYYY" 12 25 2025 "<up>"

  # Show a saved value (shortcut for: tempo values get due)
  tempo @due
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive field.
			return edit.RunE(cmd, args)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("TEMPO_CONFIG_DIR", ""), "Config directory (default ~/.tempo)")
	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("TEMPO_LOCALE", ""), "Locale tag, e.g. en, en-GB, fr, ar")
	cmd.PersistentFlags().StringVar(&app.TZ, "tz", envOr("TEMPO_TZ", ""), "Time zone name (default local)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON and EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TEMPO_OUTPUT", "json"), "Output format (json|edn|table)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("TEMPO_LOG_FILE", ""), "Write JSON debug logs to this file")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TEMPO_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(edit)
	cmd.AddCommand(newTokensCmd(app))
	cmd.AddCommand(newSectionsCmd(app))
	cmd.AddCommand(newTypeCmd(app))
	cmd.AddCommand(newPasteCmd(app))
	cmd.AddCommand(newValuesCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

// setup loads the config and opens the log once per invocation.
func (app *App) setup() error {
	if app.ConfigDir != "" {
		dir, err := homedir.Expand(app.ConfigDir)
		if err != nil {
			return err
		}
		if err := os.Setenv("TEMPO_CONFIG_DIR", dir); err != nil {
			return err
		}
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg

	if app.LogFile == "" {
		app.log = slog.New(slog.DiscardHandler)
		return nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	path, err := homedir.Expand(app.LogFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	app.logFile = f
	app.log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

func (app *App) teardown() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// config returns the loaded config, loading it when a command runs without
// the persistent pre-run (tests calling RunE directly).
func (app *App) config() *store.Config {
	if app.cfg == nil {
		cfg, err := store.LoadConfig()
		if err != nil {
			cfg = &store.Config{}
		}
		app.cfg = cfg
	}
	return app.cfg
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		app.log = slog.New(slog.DiscardHandler)
	}
	return app.log
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut writes v in the requested format. Tables show the envelope's
// data only.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "table" {
		if env, ok := v.(map[string]any); ok {
			if data, ok := env["data"]; ok {
				v = data
			}
		}
	}
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
