// Package adapter binds the field engine to Go's time package: the token
// vocabulary, locale tables, formatting, strict parsing and calendar math.
package adapter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default formats per value shape, written with locale meta tokens.
const (
	FormatDate     = "L"
	FormatTime     = "LT"
	FormatTimeSecs = "LTS"
	FormatDateTime = "L LT"
	FormatMonth    = "MMMM"
	FormatWeekday  = "dddd"
)

const maxExpansions = 10

type Adapter struct {
	locale *Locale
	loc    *time.Location
}

// New returns an adapter for the locale closest to tag. A nil location means
// time.Local.
func New(tag string, loc *time.Location) *Adapter {
	return NewWithLocale(LookupLocale(tag), loc)
}

func NewWithLocale(l *Locale, loc *time.Location) *Adapter {
	if l == nil {
		l = LocaleEN
	}
	if loc == nil {
		loc = time.Local
	}
	return &Adapter{locale: l, loc: loc}
}

func (a *Adapter) Locale() *Locale          { return a.locale }
func (a *Adapter) Location() *time.Location { return a.loc }

// Date builds a time in the adapter's location.
func (a *Adapter) Date(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, a.loc)
}

// In converts t to the adapter's location.
func (a *Adapter) In(t time.Time) time.Time { return t.In(a.loc) }

// ExpandFormat replaces each localized meta token once. Escaped runs are
// copied unchanged. Callers expand repeatedly until the result is stable.
func (a *Adapter) ExpandFormat(format string) string {
	rs := []rune(format)
	var b strings.Builder
	for i := 0; i < len(rs); {
		if rs[i] == EscapeStart {
			if end := indexRune(rs, i+1, EscapeEnd); end >= 0 {
				b.WriteString(string(rs[i : end+1]))
				i = end + 1
				continue
			}
		}
		if meta := matchAt(rs, i, metaTokens); meta != "" {
			if repl, ok := a.locale.Formats[meta]; ok {
				b.WriteString(repl)
				i += len(meta)
				continue
			}
		}
		b.WriteRune(rs[i])
		i++
	}
	return b.String()
}

// ExpandAll expands meta tokens until the format stops changing.
func (a *Adapter) ExpandAll(format string) (string, error) {
	prev := format
	next := a.ExpandFormat(format)
	for n := 0; next != prev; n++ {
		if n >= maxExpansions {
			return "", fmt.Errorf("format %q does not converge after %d expansions", format, maxExpansions)
		}
		prev = next
		next = a.ExpandFormat(prev)
	}
	return next, nil
}

// Format renders t with format. Unexpandable formats render as given.
func (a *Adapter) Format(t time.Time, format string) string {
	expanded, err := a.ExpandAll(format)
	if err != nil {
		expanded = format
	}
	var b strings.Builder
	for _, it := range splitLayout(expanded) {
		if it.token == "" {
			b.WriteString(it.literal)
			continue
		}
		b.WriteString(a.FormatToken(t, it.token))
	}
	return b.String()
}

// FormatToken renders a single token code. Digits are localized.
func (a *Adapter) FormatToken(t time.Time, token string) string {
	l := a.locale
	switch token {
	case "YY":
		return a.digits(pad(mod(t.Year(), 100), 2))
	case "YYYY":
		return a.digits(pad(t.Year(), 4))
	case "M":
		return a.digits(strconv.Itoa(int(t.Month())))
	case "MM":
		return a.digits(pad(int(t.Month()), 2))
	case "MMM":
		return l.MonthsShort[t.Month()-1]
	case "MMMM":
		return l.Months[t.Month()-1]
	case "D":
		return a.digits(strconv.Itoa(t.Day()))
	case "DD":
		return a.digits(pad(t.Day(), 2))
	case "Do":
		return a.digits(l.ordinal(t.Day()))
	case "d":
		return a.digits(strconv.Itoa(int(t.Weekday())))
	case "dd":
		return l.WeekdaysMin[t.Weekday()]
	case "ddd":
		return l.WeekdaysShort[t.Weekday()]
	case "dddd":
		return l.Weekdays[t.Weekday()]
	case "H":
		return a.digits(strconv.Itoa(t.Hour()))
	case "HH":
		return a.digits(pad(t.Hour(), 2))
	case "h":
		return a.digits(strconv.Itoa(hour12(t.Hour())))
	case "hh":
		return a.digits(pad(hour12(t.Hour()), 2))
	case "m":
		return a.digits(strconv.Itoa(t.Minute()))
	case "mm":
		return a.digits(pad(t.Minute(), 2))
	case "s":
		return a.digits(strconv.Itoa(t.Second()))
	case "ss":
		return a.digits(pad(t.Second(), 2))
	case "A":
		return l.Upper(meridiem(l, t.Hour()))
	case "a":
		return l.Lower(meridiem(l, t.Hour()))
	case "Q":
		return a.digits(strconv.Itoa((int(t.Month())-1)/3 + 1))
	case "SSS":
		return a.digits(pad(t.Nanosecond()/int(time.Millisecond), 3))
	case "Z":
		return a.digits(t.Format("-07:00"))
	case "ZZ":
		return a.digits(t.Format("-0700"))
	case "X":
		return a.digits(strconv.FormatInt(t.Unix(), 10))
	}
	return token
}

func meridiem(l *Locale, hour int) string {
	if hour < 12 {
		return l.Meridiem[0]
	}
	return l.Meridiem[1]
}

func hour12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

func pad(n, width int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	if neg {
		return "-" + s
	}
	return s
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// LocalizedDigits returns the ten digit glyphs of the locale.
func (a *Adapter) LocalizedDigits() []rune {
	if len(a.locale.Digits) == 10 {
		return a.locale.Digits
	}
	return []rune("0123456789")
}

func (a *Adapter) digits(s string) string { return a.ApplyLocalizedDigits(s) }

// ApplyLocalizedDigits replaces ASCII digits with the locale's glyphs.
func (a *Adapter) ApplyLocalizedDigits(s string) string {
	if len(a.locale.Digits) != 10 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return a.locale.Digits[r-'0']
		}
		return r
	}, s)
}

// RemoveLocalizedDigits replaces the locale's digit glyphs with ASCII digits.
func (a *Adapter) RemoveLocalizedDigits(s string) string {
	if len(a.locale.Digits) != 10 {
		return s
	}
	return strings.Map(func(r rune) rune {
		for i, d := range a.locale.Digits {
			if r == d {
				return rune('0' + i)
			}
		}
		return r
	}, s)
}

// IsDigit reports whether r is an ASCII or localized digit.
func (a *Adapter) IsDigit(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	for _, d := range a.locale.Digits {
		if r == d {
			return true
		}
	}
	return false
}

// IsNumber reports whether s is a non-empty run of digits.
func (a *Adapter) IsNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !a.IsDigit(r) {
			return false
		}
	}
	return true
}

// MonthOptions returns the twelve months formatted with format.
func (a *Adapter) MonthOptions(format string) []string {
	out := make([]string, 12)
	for i := range out {
		out[i] = a.Format(a.Date(2000, time.Month(i+1), 1, 0, 0, 0), format)
	}
	return out
}

// WeekDates returns the seven days of the locale week containing t.
func (a *Adapter) WeekDates(t time.Time) []time.Time {
	start := a.StartOfWeek(t)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// WeekdayOptions formats each day of the locale week with format.
func (a *Adapter) WeekdayOptions(format string, now time.Time) []string {
	days := a.WeekDates(now)
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = a.Format(d, format)
	}
	return out
}

// MeridiemOptions formats the start and end of a day with format.
func (a *Adapter) MeridiemOptions(format string, now time.Time) []string {
	return []string{a.Format(StartOfDay(now), format), a.Format(EndOfDay(now), format)}
}
