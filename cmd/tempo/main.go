package main

import (
	"os"
	"strings"

	"tempo-cli/internal/cli"
)

// valueRef reports whether s names a saved value ("@due") and returns the
// name.
func valueRef(s string) (string, bool) {
	s = strings.TrimSpace(s)
	name, ok := strings.CutPrefix(s, "@")
	return name, ok && name != ""
}

func rewriteValueShortcutArgs(argv []string) []string {
	// Convenience: `tempo @due` works like `tempo values get due`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv
	// before parsing. Persistent flags may come first (`tempo --format table @due`).
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config-dir": true,
		"--locale":     true,
		"--tz":         true,
		"--format":     true,
		"--log-file":   true,
		"--log-level":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	// rewrite replaces argv[from:to] with the values get invocation.
	rewrite := func(from, to int, name string) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:from]...)
		out = append(out, "values", "get", name)
		return append(out, argv[to:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Subcommands cannot follow "--", so the separator is dropped.
			if i+1 < len(argv) {
				if name, ok := valueRef(argv[i+1]); ok {
					return rewrite(i, i+2, name)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if name, ok := valueRef(a); ok {
			return rewrite(i, i+1, name)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteValueShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
