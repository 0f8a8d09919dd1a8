package field

import (
	"strconv"
	"time"

	"tempo-cli/internal/adapter"
)

// Boundaries is the legal numeric range of a section.
type Boundaries struct {
	Min int `json:"min"`
	Max int `json:"max"`
	// LongestMonth is set for day sections: the month with the most days,
	// used for provisional values before a month is known.
	LongestMonth time.Month `json:"longestMonth,omitempty"`
}

// Boundaries returns the range character editing checks typed digits
// against. Day sections use the longest month.
func (f *Field) Boundaries(st State, i int) (Boundaries, bool) {
	if i < 0 || i >= len(st.Sections) || st.Sections[i].Kind != DatePart {
		return Boundaries{}, false
	}
	return f.tokenBoundaries(st.Sections[i].Token, nil), true
}

// ValueBoundaries returns the range adjustments wrap within: the day range
// follows the current value's month and the external constraints narrow
// each unit.
func (f *Field) ValueBoundaries(st State, i int) (Boundaries, bool) {
	if i < 0 || i >= len(st.Sections) || st.Sections[i].Kind != DatePart {
		return Boundaries{}, false
	}
	var current *time.Time
	if st.Value.IsValid() {
		t := st.Value.Time()
		current = &t
	}
	tok := st.Sections[i].Token
	return f.narrow(tok, f.tokenBoundaries(tok, current)), true
}

func (f *Field) tokenBoundaries(tok Token, current *time.Time) Boundaries {
	a := f.adapter
	now := f.today()
	plain := func(t time.Time) string { return a.RemoveLocalizedDigits(a.FormatToken(t, tok.Format)) }
	switch tok.Part {
	case adapter.PartYear:
		if len(plain(now)) == 4 {
			return Boundaries{Min: 0, Max: 9999}
		}
		return Boundaries{Min: 0, Max: 99}
	case adapter.PartMonth:
		return Boundaries{Min: 1, Max: 12}
	case adapter.PartDay:
		longest, days := longestMonth(now.Year())
		if current != nil {
			days = adapter.DaysInMonth(current.Year(), current.Month())
		}
		return Boundaries{Min: 1, Max: days, LongestMonth: longest}
	case adapter.PartWeekday:
		if tok.Content != adapter.ContentDigit {
			return Boundaries{Min: 1, Max: 7}
		}
		b := Boundaries{Min: 1 << 30, Max: -1}
		for _, s := range f.cache.options(a, tok.Part, tok.Format, now) {
			n, err := strconv.Atoi(a.RemoveLocalizedDigits(s))
			if err != nil {
				continue
			}
			b.Min = min(b.Min, n)
			b.Max = max(b.Max, n)
		}
		return b
	case adapter.PartHours:
		if plain(adapter.EndOfDay(now)) != "23" {
			start, _ := strconv.Atoi(plain(adapter.StartOfDay(now)))
			return Boundaries{Min: 1, Max: start}
		}
		return Boundaries{Min: 0, Max: 23}
	case adapter.PartMinutes, adapter.PartSeconds:
		return Boundaries{Min: 0, Max: 59}
	case adapter.PartMeridiem:
		return Boundaries{Min: 0, Max: 1}
	}
	return Boundaries{}
}

func longestMonth(year int) (time.Month, int) {
	best, days := time.January, 0
	for m := time.January; m <= time.December; m++ {
		if d := adapter.DaysInMonth(year, m); d > days {
			best, days = m, d
		}
	}
	return best, days
}

// narrow applies the min/max constraints. A unit narrows only when both
// bounds share the next coarser unit; years narrow on either bound.
func (f *Field) narrow(tok Token, b Boundaries) Boundaries {
	lo, hi := f.lo, f.hi
	both := !lo.IsZero() && !hi.IsZero()
	out := b
	switch tok.Part {
	case adapter.PartYear:
		if b.Max != 9999 {
			return b
		}
		if !lo.IsZero() {
			out.Min = max(out.Min, lo.Year())
		}
		if !hi.IsZero() {
			out.Max = min(out.Max, hi.Year())
		}
	case adapter.PartMonth:
		if both && adapter.SameYear(lo, hi) {
			out.Min, out.Max = int(lo.Month()), int(hi.Month())
		}
	case adapter.PartDay:
		if both && adapter.SameMonth(lo, hi) {
			out.Min, out.Max = lo.Day(), min(hi.Day(), b.Max)
		}
	case adapter.PartHours:
		if b.Min == 0 && both && adapter.SameDay(lo, hi) {
			out.Min, out.Max = lo.Hour(), hi.Hour()
		}
	case adapter.PartMinutes:
		if both && adapter.SameDay(lo, hi) && adapter.SameHour(lo, hi) {
			out.Min, out.Max = lo.Minute(), hi.Minute()
		}
	case adapter.PartSeconds:
		if both && adapter.SameDay(lo, hi) && adapter.SameMinute(lo, hi) {
			out.Min, out.Max = lo.Second(), hi.Second()
		}
	}
	if out.Min > out.Max {
		return b
	}
	return out
}
