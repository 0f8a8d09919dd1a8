// Package field is a keyboard editing engine for date and time values shown
// as a row of sections (year, month, day, hours...). A Field is built once
// from a format and its Options; every command takes a State and returns a
// new one.
package field

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tempo-cli/internal/adapter"
)

const DefaultQueryTimeout = 5 * time.Second

type Options struct {
	// Adapter defaults to English in the local time zone.
	Adapter *adapter.Adapter
	// Format defaults to the value manager's format.
	Format       string
	Direction    Direction
	Density      Density
	Placeholders Placeholders
	// ValueManager defaults to DateManager.
	ValueManager ValueManager

	MinDate, MaxDate time.Time
	MinTime, MaxTime time.Time
	// Steps sets the adjustment step per part, e.g. 15 for minutes.
	Steps map[adapter.Part]int

	ReferenceDate time.Time
	Now           func() time.Time

	RespectLeadingZeros bool
	QueryTimeout        time.Duration
	Logger              *slog.Logger
	ReadOnly            bool
	// Cache is shared between fields when set.
	Cache *LookupCache
}

type Field struct {
	adapter   *adapter.Adapter
	format    string
	manager   ValueManager
	opts      Options
	parsed    ParsedFormat
	layout    []Section
	order     SectionOrder
	direction Direction
	steps     map[adapter.Part]int
	lo, hi    time.Time
	now       func() time.Time
	timeout   time.Duration
	log       *slog.Logger
	readOnly  bool
	cache     *LookupCache
}

// New validates the options and parses the format. Every error it returns
// is a configuration mistake.
func New(opts Options) (*Field, error) {
	f := &Field{
		adapter:   opts.Adapter,
		manager:   opts.ValueManager,
		direction: opts.Direction,
		now:       opts.Now,
		timeout:   opts.QueryTimeout,
		log:       opts.Logger,
		readOnly:  opts.ReadOnly,
		cache:     opts.Cache,
	}
	if f.adapter == nil {
		f.adapter = adapter.New("en", time.Local)
	}
	if f.manager == nil {
		f.manager = DateManager
	}
	if f.now == nil {
		f.now = time.Now
	}
	if f.timeout <= 0 {
		f.timeout = DefaultQueryTimeout
	}
	if f.log == nil {
		f.log = slog.New(slog.DiscardHandler)
	}
	if f.cache == nil {
		f.cache = NewLookupCache()
	}
	f.format = opts.Format
	if strings.TrimSpace(f.format) == "" {
		f.format = f.manager.DefaultFormat()
	}

	f.steps = make(map[adapter.Part]int, len(opts.Steps))
	for part, step := range opts.Steps {
		if step < 1 {
			return nil, fmt.Errorf("%w: %s step %d", ErrInvalidStep, part, step)
		}
		f.steps[part] = step
	}

	parsed, err := f.cache.parsed(f.adapter, parseConfig{
		format:              f.format,
		direction:           opts.Direction,
		density:             opts.Density,
		respectLeadingZeros: opts.RespectLeadingZeros,
		placeholders:        opts.Placeholders,
		now:                 f.today(),
	})
	if err != nil {
		return nil, fmt.Errorf("field format %q: %w", f.format, err)
	}
	f.parsed = parsed
	f.opts = opts
	f.lo, f.hi = f.manager.Bounds(opts)
	f.layout = f.sectionsFromValue(adapter.Date{})
	f.order = sectionOrder(f.layout, f.direction == RTL)
	return f, nil
}

func (f *Field) today() time.Time { return f.adapter.In(f.now()) }

func (f *Field) Adapter() *adapter.Adapter   { return f.adapter }
func (f *Field) Format() string              { return f.format }
func (f *Field) Manager() ValueManager       { return f.manager }
func (f *Field) QueryTimeout() time.Duration { return f.timeout }
func (f *Field) ReadOnly() bool              { return f.readOnly }
func (f *Field) SectionOrder() SectionOrder  { return f.order }

// ParsedFormat returns a copy of the parsed format.
func (f *Field) ParsedFormat() ParsedFormat {
	p := f.parsed
	p.Tokens = append([]Token(nil), f.parsed.Tokens...)
	return p
}

// Sections returns a copy of the state's sections.
func (f *Field) Sections(st State) []Section {
	return append([]Section(nil), st.Sections...)
}

// ActiveSection returns the selected date-part section.
func (f *Field) ActiveSection(st State) (Section, int, bool) {
	idx, ok := st.Selection.Index()
	if !ok || idx >= len(st.Sections) || st.Sections[idx].Kind != DatePart {
		return Section{}, -1, false
	}
	return st.Sections[idx], idx, true
}

// Text renders the sections the way an input element shows them.
func (f *Field) Text(st State) string {
	var b strings.Builder
	for _, sec := range st.Sections {
		b.WriteString(f.DisplayValue(sec))
	}
	if f.direction == RTL {
		return "\u2066" + b.String() + "\u2069"
	}
	return b.String()
}

// ValueString formats a valid value with the field's format.
func (f *Field) ValueString(st State) string {
	if !st.Value.IsValid() {
		return st.Value.String()
	}
	return f.adapter.Format(st.Value.Time(), f.format)
}

// NativeMirror renders the value for a native form input.
func (f *Field) NativeMirror(st State) NativeInput {
	return f.manager.Native(st.Value, f.opts, hasPart(f.layout, adapter.PartSeconds))
}

// Init builds the first state for value. The reference is the value when
// valid, then Options.ReferenceDate, then now rounded to the format's finest
// unit and moved inside the constraints.
func (f *Field) Init(value adapter.Date) State {
	var ref time.Time
	switch {
	case value.IsValid():
		ref = value.Time()
	case !f.opts.ReferenceDate.IsZero():
		ref = f.adapter.In(f.opts.ReferenceDate)
	default:
		ref = defaultReference(f.today(), formatGranularity(f.parsed), f.opts)
	}
	return State{
		Value:     value,
		Reference: ref,
		Sections:  f.sectionsFromValue(value),
		Selection: SelectNone,
	}
}

// SetValue replaces the value from outside, rebuilding every section.
func (f *Field) SetValue(st State, value adapter.Date) State {
	next := st.withQuery(nil)
	next.Value = value
	next.Sections = f.sectionsFromValue(value)
	if value.IsValid() {
		next.Reference = value.Time()
	}
	return next
}

// SetSelection selects a date-part section, every section, or none. The
// pending query is dropped unless it targets the new selection.
func (f *Field) SetSelection(st State, sel Selection) State {
	if idx, ok := sel.Index(); ok && (idx >= len(st.Sections) || st.Sections[idx].Kind != DatePart) {
		return st
	}
	if sel != SelectNone && sel != SelectAll && sel < 0 {
		return st
	}
	next := st.clone()
	next.Selection = sel
	if next.Query != nil && (sel == SelectAll || int(sel) != next.Query.Section) {
		next.Query = nil
	}
	return next
}

// ClearActive empties the selected section. The value becomes invalid while
// other sections still hold text, empty otherwise.
func (f *Field) ClearActive(st State) State {
	if f.readOnly {
		return st
	}
	sec, idx, ok := f.ActiveSection(st)
	if !ok {
		return st
	}
	filled := 0
	for _, s := range st.Sections {
		if s.Kind == DatePart && s.Value != "" {
			filled++
		}
	}
	othersFilled := filled > 0 && !(filled == 1 && sec.Value != "")

	next := st.withQuery(nil)
	next.Sections[idx].Value = ""
	next.Sections[idx].Modified = true
	if othersFilled {
		next.Value = adapter.InvalidDate()
	} else {
		next.Value = adapter.Date{}
	}
	if !next.Value.Equal(st.Value) {
		f.log.Debug("value published", "value", next.Value.String())
	}
	return next
}

// ClearAll empties every section and the value. The reference is kept.
func (f *Field) ClearAll(st State) State {
	if f.readOnly {
		return st
	}
	next := st.withQuery(nil)
	next.Value = adapter.Date{}
	next.Sections = f.sectionsFromValue(adapter.Date{})
	f.log.Debug("value cleared")
	return next
}

// UpdateFromString parses s as a whole value. Text that does not parse
// leaves the state unchanged.
func (f *Field) UpdateFromString(st State, s string) State {
	if f.readOnly {
		return st
	}
	merged, ok := f.StringToValue(s, st.Reference)
	if !ok {
		f.log.Debug("string does not match format", "text", s, "format", f.format)
		return st
	}
	next := st.withQuery(nil)
	next.Sections = f.sectionsFromValue(adapter.DateOf(merged))
	return f.publish(next, adapter.DateOf(merged))
}

// updateSectionValue stores value in section idx, then recomposes the
// field value from the sections.
func (f *Field) updateSectionValue(st State, idx int, value string, advance bool) State {
	next := st.clone()
	next.Sections[idx].Value = value
	next.Sections[idx].Modified = true
	if advance {
		if to, ok := nextDatePart(next.Sections, idx); ok {
			next.Selection = Selection(to)
			next.Query = nil
		}
	}

	candidate := f.dateFromSections(next.Sections)
	switch {
	case candidate.IsValid():
		merged := f.Merge(candidate.Time(), next.Sections, st.Reference, true)
		return f.publish(next, adapter.DateOf(merged))
	case allFilled(next.Sections):
		return f.publish(next, adapter.InvalidDate())
	case !st.Value.IsEmpty():
		return f.publish(next, adapter.Date{})
	}
	return next
}

// publish sets the value. A valid value becomes the reference and rewrites
// the sections so derived text (weekday names, padding) stays in step.
func (f *Field) publish(st State, v adapter.Date) State {
	st.Value = v
	if v.IsValid() {
		st.Reference = v.Time()
		f.refreshSections(st.Sections, v.Time())
	}
	f.log.Debug("value published", "value", v.String())
	return st
}

// QueryDeadline reports when the pending query expires if no key arrives.
// The generation is passed back to ExpireQuery.
func (f *Field) QueryDeadline(st State, now time.Time) (gen uint64, deadline time.Time, ok bool) {
	if st.Query == nil {
		return 0, time.Time{}, false
	}
	return st.QueryGen, now.Add(f.timeout), true
}

// ExpireQuery drops the pending query if it is still generation gen.
func (f *Field) ExpireQuery(st State, gen uint64) State {
	if st.Query == nil || st.QueryGen != gen {
		return st
	}
	f.log.Debug("query expired", "query", st.Query.Value, "section", st.Query.Section)
	next := st.clone()
	next.Query = nil
	return next
}
