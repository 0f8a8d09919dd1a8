package field

import (
	"sync"
	"time"

	"tempo-cli/internal/adapter"
)

// LookupCache memoizes locale-derived option lists and parsed formats per
// adapter. Entries never change once stored, so one cache can back many
// fields on many goroutines.
type LookupCache struct {
	entries sync.Map
}

func NewLookupCache() *LookupCache { return &LookupCache{} }

type optionsKey struct {
	adapter *adapter.Adapter
	part    adapter.Part
	format  string
}

type formatKey struct {
	adapter             *adapter.Adapter
	format              string
	direction           Direction
	density             Density
	respectLeadingZeros bool
}

type formatEntry struct {
	parsed ParsedFormat
	err    error
}

// options returns the letter options of part rendered with format: month
// names, the locale week, or the two meridiem strings.
func (c *LookupCache) options(a *adapter.Adapter, part adapter.Part, format string, now time.Time) []string {
	key := optionsKey{adapter: a, part: part, format: format}
	if v, ok := c.entries.Load(key); ok {
		return v.([]string)
	}
	var opts []string
	switch part {
	case adapter.PartMonth:
		opts = a.MonthOptions(format)
	case adapter.PartWeekday:
		opts = a.WeekdayOptions(format, now)
	case adapter.PartMeridiem:
		opts = a.MeridiemOptions(format, now)
	}
	v, _ := c.entries.LoadOrStore(key, opts)
	return v.([]string)
}

// parsed memoizes parseFormat. Custom placeholders bypass the cache since
// functions cannot be compared.
func (c *LookupCache) parsed(a *adapter.Adapter, cfg parseConfig) (ParsedFormat, error) {
	if len(cfg.placeholders) > 0 {
		return parseFormat(a, cfg)
	}
	key := formatKey{adapter: a, format: cfg.format, direction: cfg.direction, density: cfg.density, respectLeadingZeros: cfg.respectLeadingZeros}
	if v, ok := c.entries.Load(key); ok {
		e := v.(formatEntry)
		return e.parsed, e.err
	}
	p, err := parseFormat(a, cfg)
	v, _ := c.entries.LoadOrStore(key, formatEntry{parsed: p, err: err})
	e := v.(formatEntry)
	return e.parsed, e.err
}
