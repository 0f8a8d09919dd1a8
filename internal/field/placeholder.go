package field

import (
	"strings"

	"tempo-cli/internal/adapter"
)

// PlaceholderFunc returns the text an empty section shows.
type PlaceholderFunc func(tok Token) string

// Placeholders overrides the default placeholder per part.
type Placeholders map[adapter.Part]PlaceholderFunc

func defaultPlaceholder(tok Token, width int) string {
	letter := tok.Content == adapter.ContentLetter
	switch tok.Part {
	case adapter.PartYear:
		return strings.Repeat("Y", max(width, 1))
	case adapter.PartMonth:
		if letter {
			return "MMMM"
		}
		return "MM"
	case adapter.PartDay:
		return "DD"
	case adapter.PartWeekday:
		if letter {
			return "EEEE"
		}
		return "EE"
	case adapter.PartHours:
		return "hh"
	case adapter.PartMinutes:
		return "mm"
	case adapter.PartSeconds:
		return "ss"
	case adapter.PartMeridiem:
		return "aa"
	}
	return ""
}
