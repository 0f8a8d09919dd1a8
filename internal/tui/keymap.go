package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tempo-cli/internal/field"
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Clear     key.Binding
	SelectAll key.Binding
	Paste     key.Binding
	Accept    key.Binding
	Cancel    key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("left", "prev section")),
		Right:     key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("right", "next section")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("up/down", "step")),
		Down:      key.NewBinding(key.WithKeys("down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "big step")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home/end", "range edge")),
		End:       key.NewBinding(key.WithKeys("end")),
		Clear:     key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("bksp", "clear")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		Accept:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Right, k.Up, k.Accept, k.Cancel, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.PageUp, k.Home},
		{k.Clear, k.SelectAll, k.Paste},
		{k.Accept, k.Cancel, k.Help},
	}
}

// fieldKeys translates a terminal key into field input. Runes arriving in
// one message are typed one at a time.
func (k keyMap) fieldKeys(msg tea.KeyMsg) []field.Key {
	if msg.Paste {
		return []field.Key{{Code: field.KeyPaste, Text: string(msg.Runes)}}
	}
	named := []struct {
		b    key.Binding
		code field.KeyCode
	}{
		{k.Left, field.KeyLeft},
		{k.Right, field.KeyRight},
		{k.Up, field.KeyUp},
		{k.Down, field.KeyDown},
		{k.PageUp, field.KeyPageUp},
		{k.PageDown, field.KeyPageDown},
		{k.Home, field.KeyHome},
		{k.End, field.KeyEnd},
		{k.SelectAll, field.KeySelectAll},
	}
	for _, n := range named {
		if key.Matches(msg, n.b) {
			return []field.Key{{Code: n.code}}
		}
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return []field.Key{{Code: field.KeyBackspace}}
	case tea.KeyDelete:
		return []field.Key{{Code: field.KeyDelete}}
	case tea.KeySpace:
		return []field.Key{{Code: field.KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]field.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, field.Key{Code: field.KeyRune, Rune: r})
		}
		return out
	}
	return nil
}
