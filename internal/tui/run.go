package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tempo-cli/internal/adapter"
	"tempo-cli/internal/field"
)

var ErrCanceled = errors.New("edit canceled")

type Result struct {
	Value adapter.Date
	Text  string
	State field.State
}

// Run edits value interactively until the user accepts or cancels.
func Run(f *field.Field, value adapter.Date, opts Options) (Result, error) {
	applyColorProfilePreference()
	applyThemePreference()

	mm, err := tea.NewProgram(NewModel(f, value, opts)).Run()
	if err != nil {
		return Result{}, fmt.Errorf("field editor: %w", err)
	}
	out := mm.(Model)
	if out.canceled || !out.accepted {
		return Result{}, ErrCanceled
	}
	st := out.State()
	return Result{Value: st.Value, Text: f.ValueString(st), State: st}, nil
}
