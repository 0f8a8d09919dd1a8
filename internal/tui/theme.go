package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Profiles lists the appearance profiles accepted by tui.profile.
var Profiles = []string{"default", "mono", "neon"}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

type palette struct {
	text     lipgloss.TerminalColor
	muted    lipgloss.TerminalColor
	accent   lipgloss.TerminalColor
	accentFg lipgloss.TerminalColor
	inputBg  lipgloss.TerminalColor
	errorFg  lipgloss.TerminalColor
}

var palettes = map[string]palette{
	"default": {
		text:     ac("235", "252"),
		muted:    ac("240", "243"),
		accent:   ac("27", "62"),
		accentFg: ac("255", "235"),
		inputBg:  ac("254", "234"),
		errorFg:  ac("160", "203"),
	},
	"mono": {
		text:     ac("235", "252"),
		muted:    ac("240", "245"),
		accent:   ac("235", "252"),
		accentFg: ac("255", "235"),
		inputBg:  ac("253", "236"),
		errorFg:  ac("235", "252"),
	},
	"neon": {
		text:     ac("#111827", "#f8fafc"),
		muted:    ac("#4b5563", "#a3adc2"),
		accent:   ac("#a100ff", "#ff4fd8"),
		accentFg: ac("#ffffff", "#0b1020"),
		inputBg:  ac("#eef2ff", "#0d142b"),
		errorFg:  ac("#dc2626", "#ff5555"),
	},
}

type styles struct {
	inputBg     lipgloss.TerminalColor
	label       lipgloss.Style
	section     lipgloss.Style
	active      lipgloss.Style
	placeholder lipgloss.Style
	separator   lipgloss.Style
	status      lipgloss.Style
	invalid     lipgloss.Style
}

// newStyles builds the styles for an appearance profile. Unknown profiles
// use the default palette.
func newStyles(profile string) styles {
	profile = strings.ToLower(strings.TrimSpace(profile))
	p, ok := palettes[profile]
	if !ok {
		profile = "default"
		p = palettes[profile]
	}
	base := lipgloss.NewStyle().Background(p.inputBg)
	st := styles{
		inputBg:     p.inputBg,
		label:       lipgloss.NewStyle().Foreground(p.text).Bold(true),
		section:     base.Foreground(p.text),
		active:      lipgloss.NewStyle().Foreground(p.accentFg).Background(p.accent).Bold(true),
		placeholder: faintIfDark(base.Foreground(p.muted)),
		separator:   base.Foreground(p.muted),
		status:      faintIfDark(lipgloss.NewStyle().Foreground(p.muted)),
		invalid:     lipgloss.NewStyle().Foreground(p.errorFg).Bold(true),
	}
	if profile == "mono" {
		st.active = lipgloss.NewStyle().Foreground(p.text).Background(p.inputBg).Reverse(true)
		st.invalid = st.invalid.Underline(true)
	}
	return st
}

// applyColorProfilePreference sets Lip Gloss's color profile. Only NO_COLOR
// is honored; CLICOLOR would disable colors inside the interactive field.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) TEMPO_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TEMPO_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
