package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tempo-cli/internal/adapter"
	"tempo-cli/internal/field"
)

type Options struct {
	// Label is shown above the input line.
	Label   string
	Profile string
	// Clipboard defaults to ReadClipboard.
	Clipboard func() (string, error)
	Now       func() time.Time
}

type queryExpiredMsg struct{ gen uint64 }

type clipboardMsg struct {
	text string
	err  error
}

// Model is a bubbletea program editing one field.
type Model struct {
	field  *field.Field
	state  field.State
	keys   keyMap
	help   help.Model
	styles styles
	label  string
	width  int

	clipboard func() (string, error)
	now       func() time.Time

	status   string
	accepted bool
	canceled bool
}

func NewModel(f *field.Field, value adapter.Date, opts Options) Model {
	m := Model{
		field:     f,
		state:     f.Init(value),
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    newStyles(opts.Profile),
		label:     strings.TrimSpace(opts.Label),
		width:     60,
		clipboard: opts.Clipboard,
		now:       opts.Now,
	}
	if m.clipboard == nil {
		m.clipboard = ReadClipboard
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.state = f.SetSelection(m.state, field.Selection(f.SectionOrder().Start))
	return m
}

func (m Model) State() field.State { return m.state }
func (m Model) Accepted() bool     { return m.accepted }
func (m Model) Canceled() bool     { return m.canceled }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case queryExpiredMsg:
		m.state = m.field.ExpireQuery(m.state, msg.gen)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		return m.apply(field.Key{Code: field.KeyPaste, Text: msg.text})

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Accept):
			m.accepted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Paste):
			read := m.clipboard
			return m, func() tea.Msg {
				text, err := read()
				return clipboardMsg{text: text, err: err}
			}
		}
		keys := m.keys.fieldKeys(msg)
		var cmds []tea.Cmd
		for _, k := range keys {
			var cmd tea.Cmd
			m, cmd = m.apply(k)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// apply runs one key through the field and schedules expiry for a query
// the key stored.
func (m Model) apply(k field.Key) (Model, tea.Cmd) {
	prev := m.state
	m.state = m.field.HandleKey(m.state, k)
	m.status = ""
	if m.state.Query == nil || m.state.QueryGen == prev.QueryGen {
		return m, nil
	}
	now := m.now()
	gen, deadline, ok := m.field.QueryDeadline(m.state, now)
	if !ok {
		return m, nil
	}
	return m, tea.Tick(deadline.Sub(now), func(time.Time) tea.Msg {
		return queryExpiredMsg{gen: gen}
	})
}

func (m Model) View() string {
	var b strings.Builder
	if m.label != "" {
		b.WriteString(m.styles.label.Render(m.label))
		b.WriteString("\n")
	}
	b.WriteString(renderInputLine(m.width, m.renderSections(), m.styles.inputBg))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderSections() string {
	_, active, _ := m.field.ActiveSection(m.state)
	all := m.state.Selection == field.SelectAll
	parts := make([]string, 0, len(m.state.Sections))
	for i, sec := range m.state.Sections {
		text := m.field.DisplayValue(sec)
		var st lipgloss.Style
		switch {
		case sec.Kind == field.Separator:
			st = m.styles.separator
		case i == active || all:
			st = m.styles.active
		case sec.Value == "":
			st = m.styles.placeholder
		default:
			st = m.styles.section
		}
		parts = append(parts, st.Render(text))
	}
	return strings.Join(parts, "")
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.styles.invalid.Render(m.status)
	}
	v := m.state.Value
	switch {
	case v.IsInvalid():
		return m.styles.invalid.Render("invalid date")
	case v.IsEmpty():
		return m.styles.status.Render("empty")
	}
	line := m.field.ValueString(m.state)
	if q := m.state.Query; q != nil {
		line += "  typing " + q.Value
	}
	return m.styles.status.Render(line)
}
