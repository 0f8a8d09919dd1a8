package adapter

import (
	"strings"
	"time"
	"unicode"
)

// Parse reads value strictly against format. An empty value yields an empty
// Date; text that does not match, or that names a day the calendar does not
// have, yields an invalid Date. Components the format does not carry default
// to 2000-01-01 00:00:00.
func (a *Adapter) Parse(value, format string) Date {
	value = stripBidi(value)
	if strings.TrimSpace(value) == "" {
		return Date{}
	}
	expanded, err := a.ExpandAll(format)
	if err != nil {
		return InvalidDate()
	}
	p := &parser{a: a, s: []rune(a.RemoveLocalizedDigits(value))}
	f := parsedFields{year: 2000, month: 1, day: 1}
	for _, it := range splitLayout(expanded) {
		if it.token == "" {
			if !p.literal(stripBidi(it.literal)) {
				return InvalidDate()
			}
			continue
		}
		if !p.token(it.token, &f) {
			return InvalidDate()
		}
	}
	if p.pos != len(p.s) {
		return InvalidDate()
	}
	t, ok := f.build(a.loc)
	if !ok {
		return InvalidDate()
	}
	return DateOf(t)
}

type parsedFields struct {
	year, month, day     int
	hour, minute, second int
	twelveHour           bool
	hasMeridiem          bool
	pm                   bool
}

func (f parsedFields) build(loc *time.Location) (time.Time, bool) {
	if f.month < 1 || f.month > 12 {
		return time.Time{}, false
	}
	if f.day < 1 || f.day > DaysInMonth(f.year, time.Month(f.month)) {
		return time.Time{}, false
	}
	h := f.hour
	if f.twelveHour {
		if h < 1 || h > 12 {
			return time.Time{}, false
		}
		if f.hasMeridiem {
			if f.pm && h < 12 {
				h += 12
			}
			if !f.pm && h == 12 {
				h = 0
			}
		} else if h == 12 {
			h = 0
		}
	}
	if h < 0 || h > 23 || f.minute < 0 || f.minute > 59 || f.second < 0 || f.second > 59 {
		return time.Time{}, false
	}
	return time.Date(f.year, time.Month(f.month), f.day, h, f.minute, f.second, 0, loc), true
}

type parser struct {
	a   *Adapter
	s   []rune
	pos int
}

func (p *parser) token(tok string, f *parsedFields) bool {
	l := p.a.locale
	var ok bool
	switch tok {
	case "YYYY":
		f.year, ok = p.number(1, 4)
	case "YY":
		var yy int
		yy, ok = p.number(1, 2)
		if yy > 68 {
			f.year = 1900 + yy
		} else {
			f.year = 2000 + yy
		}
	case "M", "MM":
		f.month, ok = p.number(1, 2)
	case "MMM":
		var i int
		i, ok = p.lookup(l.MonthsShort[:])
		f.month = i + 1
	case "MMMM":
		var i int
		i, ok = p.lookup(l.Months[:])
		f.month = i + 1
	case "D", "DD":
		f.day, ok = p.number(1, 2)
	case "Do":
		f.day, ok = p.number(1, 2)
		if ok {
			suffix := strings.TrimPrefix(p.a.RemoveLocalizedDigits(l.ordinal(f.day)), itoa(f.day))
			ok = p.literalFold(suffix)
		}
	case "d":
		var wd int
		wd, ok = p.number(1, 1)
		ok = ok && wd >= 0 && wd <= 6
	case "dd":
		_, ok = p.lookup(l.WeekdaysMin[:])
	case "ddd":
		_, ok = p.lookup(l.WeekdaysShort[:])
	case "dddd":
		_, ok = p.lookup(l.Weekdays[:])
	case "H", "HH":
		f.hour, ok = p.number(1, 2)
	case "h", "hh":
		f.hour, ok = p.number(1, 2)
		f.twelveHour = true
	case "m", "mm":
		f.minute, ok = p.number(1, 2)
	case "s", "ss":
		f.second, ok = p.number(1, 2)
	case "A", "a":
		var i int
		i, ok = p.lookup(l.Meridiem[:])
		f.hasMeridiem = true
		f.pm = i == 1
	}
	return ok
}

// number reads between min and max ASCII digits.
func (p *parser) number(min, max int) (int, bool) {
	n, read := 0, 0
	for read < max && p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		n = n*10 + int(p.s[p.pos]-'0')
		p.pos++
		read++
	}
	return n, read >= min
}

// lookup matches the longest table entry at the cursor, ignoring case.
func (p *parser) lookup(table []string) (int, bool) {
	best, bestLen := -1, 0
	for i, entry := range table {
		rs := []rune(entry)
		if len(rs) <= bestLen || p.pos+len(rs) > len(p.s) {
			continue
		}
		if strings.EqualFold(string(p.s[p.pos:p.pos+len(rs)]), entry) {
			best, bestLen = i, len(rs)
		}
	}
	if best < 0 {
		return 0, false
	}
	p.pos += bestLen
	return best, true
}

func (p *parser) literal(lit string) bool {
	for _, r := range lit {
		if p.pos >= len(p.s) {
			return false
		}
		c := p.s[p.pos]
		if c != r && !(unicode.IsSpace(c) && unicode.IsSpace(r)) {
			return false
		}
		p.pos++
	}
	return true
}

func (p *parser) literalFold(lit string) bool {
	rs := []rune(lit)
	if p.pos+len(rs) > len(p.s) {
		return false
	}
	if !strings.EqualFold(string(p.s[p.pos:p.pos+len(rs)]), lit) {
		return false
	}
	p.pos += len(rs)
	return true
}

func itoa(n int) string {
	return pad(n, 0)
}

// stripBidi removes the isolation and mark characters fields add around
// right-to-left text.
func stripBidi(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u200f', '\u2066', '\u2067', '\u2068', '\u2069':
			return -1
		}
		return r
	}, s)
}
