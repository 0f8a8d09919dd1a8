package field

import (
	"testing"
	"time"

	"tempo-cli/internal/adapter"
)

var fixedNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func newTestField(t *testing.T, opts Options) *Field {
	t.Helper()
	if opts.Adapter == nil {
		opts.Adapter = adapter.New("en", time.UTC)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	f, err := New(opts)
	if err != nil {
		t.Fatalf("New(%q): %v", opts.Format, err)
	}
	return f
}

func typeString(f *Field, st State, s string) State {
	for _, r := range s {
		st = f.TypeKey(st, r)
	}
	return st
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func sectionValues(st State) []string {
	var out []string
	for _, sec := range st.Sections {
		if sec.Kind == DatePart {
			out = append(out, sec.Value)
		}
	}
	return out
}

func mustValue(t *testing.T, st State, want time.Time) {
	t.Helper()
	if !st.Value.IsValid() {
		t.Fatalf("expected valid value %v, got %v", want, st.Value)
	}
	if !st.Value.Time().Equal(want) {
		t.Fatalf("expected value %v, got %v", want, st.Value.Time())
	}
}
