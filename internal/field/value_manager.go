package field

import (
	"strconv"
	"time"

	"tempo-cli/internal/adapter"
)

type Kind string

const (
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
)

// NativeInput mirrors a field as the attributes of a native form input.
type NativeInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
	Step  string `json:"step,omitempty"`
}

// ValueManager carries what differs between date, time and date-time
// fields.
type ValueManager interface {
	Kind() Kind
	// DefaultFormat is used when Options.Format is empty.
	DefaultFormat() string
	// Bounds returns the constraint range boundaries are narrowed by. Zero
	// times mean unbounded.
	Bounds(o Options) (lo, hi time.Time)
	// Native renders v for a native input element.
	Native(v adapter.Date, o Options, seconds bool) NativeInput
	// Merge folds the date built from edited sections into the value
	// being edited. The built-in managers keep edited as is.
	Merge(edited, reference time.Time) time.Time
}

// ParseKind reads "date", "time" or "datetime" and returns its manager.
func ParseKind(s string) (ValueManager, bool) {
	switch Kind(s) {
	case KindDate:
		return DateManager, true
	case KindTime:
		return TimeManager, true
	case KindDateTime:
		return DateTimeManager, true
	}
	return nil, false
}

var (
	DateManager     ValueManager = manager{kind: KindDate, format: adapter.FormatDate, input: "date"}
	TimeManager     ValueManager = manager{kind: KindTime, format: adapter.FormatTime, input: "time"}
	DateTimeManager ValueManager = manager{kind: KindDateTime, format: adapter.FormatDateTime, input: "datetime-local"}
)

type manager struct {
	kind   Kind
	format string
	input  string
}

func (m manager) Kind() Kind            { return m.kind }
func (m manager) DefaultFormat() string { return m.format }

func (m manager) Merge(edited, _ time.Time) time.Time { return edited }

func (m manager) Bounds(o Options) (time.Time, time.Time) {
	if m.kind == KindTime {
		return clockOn(o.MinTime), clockOn(o.MaxTime)
	}
	return o.MinDate, o.MaxDate
}

// clockOn moves the clock of t onto a fixed day so time-only bounds always
// share a day.
func clockOn(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(2000, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func (m manager) layout(seconds bool) string {
	clock := "15:04"
	if seconds {
		clock = "15:04:05"
	}
	switch m.kind {
	case KindDate:
		return "2006-01-02"
	case KindTime:
		return clock
	}
	return "2006-01-02T" + clock
}

func (m manager) Native(v adapter.Date, o Options, seconds bool) NativeInput {
	layout := m.layout(seconds)
	render := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	}
	out := NativeInput{Type: m.input}
	if v.IsValid() {
		out.Value = v.Time().Format(layout)
	}
	if m.kind == KindTime {
		out.Min, out.Max = render(o.MinTime), render(o.MaxTime)
	} else {
		out.Min, out.Max = render(o.MinDate), render(o.MaxDate)
	}
	if m.kind != KindDate {
		if s := o.Steps[adapter.PartSeconds]; s > 1 {
			out.Step = strconv.Itoa(s)
		} else if s := o.Steps[adapter.PartMinutes]; s > 1 {
			out.Step = strconv.Itoa(s * 60)
		}
	}
	return out
}

type granularity int

const (
	byYear granularity = iota + 1
	byMonth
	byDay
	byHour
	byMinute
	bySecond
)

var partGranularity = map[adapter.Part]granularity{
	adapter.PartYear:     byYear,
	adapter.PartMonth:    byMonth,
	adapter.PartDay:      byDay,
	adapter.PartWeekday:  byDay,
	adapter.PartHours:    byHour,
	adapter.PartMeridiem: byHour,
	adapter.PartMinutes:  byMinute,
	adapter.PartSeconds:  bySecond,
}

func formatGranularity(p ParsedFormat) granularity {
	g := byYear
	for _, tok := range p.Tokens {
		g = max(g, partGranularity[tok.Part])
	}
	return g
}

func roundDate(t time.Time, g granularity) time.Time {
	switch g {
	case byYear:
		return adapter.StartOfYear(t)
	case byMonth:
		return adapter.StartOfMonth(t)
	case byDay:
		return adapter.StartOfDay(t)
	case byHour:
		return adapter.StartOfHour(t)
	case byMinute:
		return adapter.StartOfMinute(t)
	}
	return adapter.StartOfSecond(t)
}

// defaultReference rounds now to the finest unit the format shows and moves
// it inside the date and time constraints.
func defaultReference(now time.Time, g granularity, o Options) time.Time {
	ref := roundDate(now, g)
	if !o.MinDate.IsZero() && adapter.StartOfDay(o.MinDate).After(adapter.StartOfDay(ref)) {
		ref = roundDate(o.MinDate.In(now.Location()), g)
	}
	if !o.MaxDate.IsZero() && adapter.StartOfDay(o.MaxDate).Before(adapter.StartOfDay(ref)) {
		ref = roundDate(o.MaxDate.In(now.Location()), g)
	}
	if !o.MinTime.IsZero() && clockAfter(o.MinTime, ref) {
		ref = roundDate(adapter.MergeDateAndTime(ref, o.MinTime), g)
	}
	if !o.MaxTime.IsZero() && clockAfter(ref, o.MaxTime) {
		ref = roundDate(adapter.MergeDateAndTime(ref, o.MaxTime), g)
	}
	return ref
}

func clockAfter(a, b time.Time) bool {
	secs := func(t time.Time) int { return t.Hour()*3600 + t.Minute()*60 + t.Second() }
	return secs(a) > secs(b)
}
