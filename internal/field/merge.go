package field

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"tempo-cli/internal/adapter"
)

var mergeOrder = map[adapter.Part]int{
	adapter.PartYear:     1,
	adapter.PartMonth:    2,
	adapter.PartDay:      3,
	adapter.PartWeekday:  4,
	adapter.PartHours:    5,
	adapter.PartMinutes:  6,
	adapter.PartSeconds:  7,
	adapter.PartMeridiem: 8,
}

// Merge copies the units shown by sections from `from` into reference.
// With editedOnly set, only modified sections are copied. Units the format
// never shows keep the reference's value. The result passes through the
// field's ValueManager.
func (f *Field) Merge(from time.Time, sections []Section, reference time.Time, editedOnly bool) time.Time {
	parts := make([]Section, 0, len(sections))
	for _, sec := range sections {
		if sec.Kind == DatePart {
			parts = append(parts, sec)
		}
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return mergeOrder[parts[i].Token.Part] < mergeOrder[parts[j].Token.Part]
	})
	hasDay := hasPart(sections, adapter.PartDay)
	hasMeridiem := hasPart(sections, adapter.PartMeridiem)

	target := f.adapter.In(reference)
	from = f.adapter.In(from)
	for _, sec := range parts {
		if editedOnly && !sec.Modified {
			continue
		}
		target = f.transfer(sec, from, target, hasDay, hasMeridiem)
	}
	return f.manager.Merge(target, reference)
}

func (f *Field) transfer(sec Section, from, target time.Time, hasDay, hasMeridiem bool) time.Time {
	switch sec.Token.Part {
	case adapter.PartYear:
		return adapter.SetYear(target, from.Year())
	case adapter.PartMonth:
		return adapter.SetMonth(target, from.Month())
	case adapter.PartDay:
		return adapter.SetDay(target, from.Day())
	case adapter.PartWeekday:
		if hasDay {
			return target
		}
		opts := f.letterOptions(sec.Token)
		cur := indexOf(opts, f.adapter.FormatToken(target, sec.Token.Format))
		want := f.optionIndex(opts, sec.Value)
		if cur < 0 || want < 0 {
			return target
		}
		return adapter.AddDays(target, want-cur)
	case adapter.PartHours:
		h := from.Hour()
		if isTwelveHour(sec.Token) && !hasMeridiem {
			h %= 12
			if target.Hour() >= 12 {
				h += 12
			}
		}
		return adapter.SetHours(target, h)
	case adapter.PartMinutes:
		return adapter.SetMinutes(target, from.Minute())
	case adapter.PartSeconds:
		return adapter.SetSeconds(target, from.Second())
	case adapter.PartMeridiem:
		am := from.Hour() < 12
		h := target.Hour()
		if am && h >= 12 {
			return adapter.AddHours(target, -12)
		}
		if !am && h < 12 {
			return adapter.AddHours(target, 12)
		}
	}
	return target
}

func isTwelveHour(tok Token) bool {
	return tok.Part == adapter.PartHours && strings.HasPrefix(tok.Format, "h")
}

// optionIndex finds s among opts, comparing numerically when both are
// digits so a padded "01" matches "1".
func (f *Field) optionIndex(opts []string, s string) int {
	if i := indexOf(opts, s); i >= 0 {
		return i
	}
	n, err := strconv.Atoi(f.adapter.RemoveLocalizedDigits(s))
	if err != nil {
		return -1
	}
	for i, opt := range opts {
		if m, err := strconv.Atoi(f.adapter.RemoveLocalizedDigits(opt)); err == nil && m == n {
			return i
		}
	}
	return -1
}

func indexOf(opts []string, s string) int {
	for i, opt := range opts {
		if opt == s {
			return i
		}
	}
	return -1
}

// dateFromSections parses the section values against their tokens alone,
// separators dropped. Weekdays are skipped when a day section exists.
func (f *Field) dateFromSections(sections []Section) adapter.Date {
	hasDay := hasPart(sections, adapter.PartDay)
	var formats, values []string
	for _, sec := range sections {
		if sec.Kind != DatePart || (hasDay && sec.Token.Part == adapter.PartWeekday) {
			continue
		}
		formats = append(formats, sec.Token.Format)
		values = append(values, f.nonInputValue(sec))
	}
	if len(formats) == 0 {
		return adapter.Date{}
	}
	return f.adapter.Parse(strings.Join(values, " "), strings.Join(formats, " "))
}

// StringToValue parses s against the whole format. The result carries every
// unit of the parsed date over the reference; ok is false when s does not
// parse.
func (f *Field) StringToValue(s string, reference time.Time) (time.Time, bool) {
	d := f.adapter.Parse(s, f.format)
	if !d.IsValid() {
		d = f.adapter.Parse(s, f.parsed.Layout())
	}
	if !d.IsValid() {
		return time.Time{}, false
	}
	return f.Merge(d.Time(), f.sectionsFromValue(d), reference, false), true
}
