package cli

import (
	"fmt"
	"strings"
	"time"

	"tempo-cli/internal/adapter"
	"tempo-cli/internal/field"
	"tempo-cli/internal/store"

	"github.com/spf13/cobra"
)

// fieldFlags are the flags shared by every command that builds a field.
type fieldFlags struct {
	layout       string
	excelFormat  string
	kind         string
	direction    string
	spacious     bool
	leadingZeros bool
	minutesStep  int
	minDate      string
	maxDate      string
	minTime      string
	maxTime      string
	readOnly     bool
}

func (ff *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.layout, "layout", "", "Field layout, e.g. \"MM/DD/YYYY hh:mm a\" or \"L LT\" (see: tempo docs tokens)")
	cmd.Flags().StringVar(&ff.excelFormat, "excel-format", "", "Spreadsheet number format to use as the layout, e.g. \"mm/dd/yyyy h:mm AM/PM\"")
	cmd.Flags().StringVar(&ff.kind, "kind", "", "Value kind (date|time|datetime); inferred from the layout when empty")
	cmd.Flags().StringVar(&ff.direction, "direction", "", "Text direction (ltr|rtl); follows the locale when empty")
	cmd.Flags().BoolVar(&ff.spacious, "spacious", false, "Pad / . - separators with spaces")
	cmd.Flags().BoolVar(&ff.leadingZeros, "leading-zeros", false, "Keep unpadded tokens unpadded while typing")
	cmd.Flags().IntVar(&ff.minutesStep, "minutes-step", 0, "Step for up/down on minutes")
	cmd.Flags().StringVar(&ff.minDate, "min", "", "Earliest accepted value (ISO 8601)")
	cmd.Flags().StringVar(&ff.maxDate, "max", "", "Latest accepted value (ISO 8601)")
	cmd.Flags().StringVar(&ff.minTime, "min-time", "", "Earliest accepted time of day (HH:mm[:ss])")
	cmd.Flags().StringVar(&ff.maxTime, "max-time", "", "Latest accepted time of day (HH:mm[:ss])")
	cmd.Flags().BoolVar(&ff.readOnly, "read-only", false, "Ignore every edit")
}

// locale resolves the locale tag: flag, then config, then English.
func (app *App) locale() string {
	if strings.TrimSpace(app.Locale) != "" {
		return app.Locale
	}
	if l := app.config().Locale; l != "" {
		return l
	}
	return "en"
}

func (app *App) location() (*time.Location, error) {
	if strings.TrimSpace(app.TZ) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(app.TZ)
	if err != nil {
		return nil, fmt.Errorf("--tz: %w", err)
	}
	return loc, nil
}

// build creates the field. Flags win over the config file.
func (ff *fieldFlags) build(app *App) (*field.Field, error) {
	cfg := app.config()
	loc, err := app.location()
	if err != nil {
		return nil, err
	}
	ad := adapter.New(app.locale(), loc)

	layout := ff.layout
	if layout == "" && ff.excelFormat != "" {
		layout, err = adapter.FromExcelFormat(ff.excelFormat)
		if err != nil {
			return nil, err
		}
	}
	if layout == "" {
		layout = cfg.Format
	}

	opts := field.Options{
		Adapter:             ad,
		Format:              layout,
		Direction:           ff.resolveDirection(cfg, ad),
		RespectLeadingZeros: ff.leadingZeros,
		ReadOnly:            ff.readOnly,
		Logger:              app.logger(),
	}
	if ff.spacious {
		opts.Density = field.Spacious
	}
	if ms := cfg.QueryTimeoutMs; ms > 0 {
		opts.QueryTimeout = time.Duration(ms) * time.Millisecond
	}
	step := ff.minutesStep
	if step == 0 {
		step = cfg.MinutesStep
	}
	if step != 0 {
		opts.Steps = map[adapter.Part]int{adapter.PartMinutes: step}
	}
	if opts.MinDate, err = parseBound("--min", ff.minDate, loc); err != nil {
		return nil, err
	}
	if opts.MaxDate, err = parseBound("--max", ff.maxDate, loc); err != nil {
		return nil, err
	}
	if opts.MinTime, err = parseClock("--min-time", ff.minTime, loc); err != nil {
		return nil, err
	}
	if opts.MaxTime, err = parseClock("--max-time", ff.maxTime, loc); err != nil {
		return nil, err
	}

	kind := ff.kind
	if kind == "" {
		kind = cfg.Kind
	}
	if kind != "" {
		m, ok := field.ParseKind(kind)
		if !ok {
			return nil, fmt.Errorf("--kind must be date, time or datetime, got %q", kind)
		}
		opts.ValueManager = m
		return field.New(opts)
	}

	f, err := field.New(opts)
	if err != nil || layout == "" {
		return f, err
	}
	if m := inferManager(f.ParsedFormat()); m != f.Manager() {
		opts.ValueManager = m
		return field.New(opts)
	}
	return f, nil
}

func (ff *fieldFlags) resolveDirection(cfg *store.Config, ad *adapter.Adapter) field.Direction {
	switch {
	case ff.direction != "":
		return field.ParseDirection(ff.direction)
	case cfg.Direction != "":
		return field.ParseDirection(cfg.Direction)
	case ad.Locale().RTL:
		return field.RTL
	}
	return field.LTR
}

// inferManager picks the value kind a layout edits.
func inferManager(p field.ParsedFormat) field.ValueManager {
	var date, clock bool
	for _, tok := range p.Tokens {
		switch tok.Part {
		case adapter.PartHours, adapter.PartMinutes, adapter.PartSeconds, adapter.PartMeridiem:
			clock = true
		default:
			date = true
		}
	}
	switch {
	case date && clock:
		return field.DateTimeManager
	case clock:
		return field.TimeManager
	}
	return field.DateManager
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

func parseISO(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func parseBound(flag, s string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, ok := parseISO(s, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("%s: %q is not an ISO 8601 date", flag, s)
	}
	return t, nil
}

// parseClock reads a time of day; only its clock is used.
func parseClock(flag, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q is not a time of day", flag, s)
}

// parseValue reads an initial value as ISO 8601 or in the field's own
// layout. An empty string is the empty value.
func parseValue(f *field.Field, s string) (adapter.Date, error) {
	if strings.TrimSpace(s) == "" {
		return adapter.Date{}, nil
	}
	if t, ok := parseISO(s, f.Adapter().Location()); ok {
		return adapter.DateOf(t), nil
	}
	ref := f.Init(adapter.Date{}).Reference
	if t, ok := f.StringToValue(s, ref); ok {
		return adapter.DateOf(t), nil
	}
	return adapter.Date{}, fmt.Errorf("--value %q matches neither ISO 8601 nor %q", s, f.Format())
}

// stateView is the output shape of a field state.
func stateView(f *field.Field, st field.State) map[string]any {
	out := map[string]any{
		"state":     valueState(st.Value),
		"value":     isoValue(st.Value),
		"text":      f.ValueString(st),
		"input":     f.Text(st),
		"selection": st.Selection.String(),
		"native":    f.NativeMirror(st),
	}
	if st.Query != nil {
		out["query"] = st.Query.Value
	}
	return out
}

func valueState(v adapter.Date) string {
	switch {
	case v.IsValid():
		return store.StateValid
	case v.IsInvalid():
		return store.StateInvalid
	}
	return store.StateEmpty
}

func isoValue(v adapter.Date) string {
	if !v.IsValid() {
		return ""
	}
	return v.Time().Format(time.RFC3339)
}

// saveValue records st's value under name.
func saveValue(cmd *cobra.Command, app *App, name string, f *field.Field, st field.State) (store.Entry, error) {
	vs, err := app.openValues(cmd)
	if err != nil {
		return store.Entry{}, err
	}
	defer vs.Close()
	return vs.Put(cmd.Context(), store.Entry{
		Name:   name,
		Kind:   string(f.Manager().Kind()),
		Format: f.Format(),
		Locale: f.Adapter().Locale().Name,
		Value:  isoValue(st.Value),
		State:  valueState(st.Value),
	})
}

func (app *App) openValues(cmd *cobra.Command) (*store.ValueStore, error) {
	path, err := app.config().DBPath()
	if err != nil {
		return nil, err
	}
	return store.OpenValueStore(cmd.Context(), path)
}
