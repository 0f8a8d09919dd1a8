package field

import (
	"testing"
	"time"

	"tempo-cli/internal/adapter"
)

func TestMerge_Idempotent(t *testing.T) {
	d := time.Date(2024, time.February, 29, 13, 45, 30, 0, time.UTC)
	formats := []string{
		"MM/DD/YYYY",
		"MM/DD/YYYY hh:mm:ss a",
		"YYYY-MM-DD HH:mm:ss",
		"dddd HH:mm",
		"MMMM Do YYYY",
		"ddd, MMM D YY h:mm A",
	}
	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			f := newTestField(t, Options{Format: format})
			got := f.Merge(d, f.sectionsFromValue(adapter.DateOf(d)), d, false)
			if !got.Equal(d) {
				t.Fatalf("expected %v, got %v", d, got)
			}
		})
	}
}

func TestMerge_HiddenUnitsComeFromReference(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	from := at(2030, time.June, 1, 0, 0)
	ref := at(2024, time.March, 15, 14, 30)
	got := f.Merge(from, f.sectionsFromValue(adapter.DateOf(from)), ref, false)
	if want := at(2030, time.June, 1, 14, 30); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMerge_EditedOnly(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	from := at(2030, time.June, 1, 0, 0)
	sections := f.sectionsFromValue(adapter.DateOf(from))
	sections[2].Modified = true

	got := f.Merge(from, sections, at(2024, time.March, 15, 9, 0), true)
	if want := at(2024, time.March, 1, 9, 0); !got.Equal(want) {
		t.Fatalf("expected only the day merged, got %v", got)
	}
}

func TestMerge_ClampsDayToMonth(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/YYYY"})
	from := at(2023, time.February, 1, 0, 0)
	got := f.Merge(from, f.sectionsFromValue(adapter.DateOf(from)), at(2024, time.January, 31, 8, 0), false)
	if want := at(2023, time.February, 28, 8, 0); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTypeKey_DateEditKeepsTime(t *testing.T) {
	for _, vm := range []ValueManager{DateManager, DateTimeManager} {
		t.Run(string(vm.Kind()), func(t *testing.T) {
			format := "MM/DD/YYYY"
			if vm == DateTimeManager {
				format = "MM/DD/YYYY HH:mm"
			}
			f := newTestField(t, Options{Format: format, ValueManager: vm})
			st := f.Init(adapter.DateOf(at(2024, time.March, 15, 14, 30)))
			st = typeString(f, f.SetSelection(st, 2), "20")
			mustValue(t, st, at(2024, time.March, 20, 14, 30))
		})
	}
}

func TestStringToValue(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	ref := at(2024, time.March, 15, 9, 45)

	got, ok := f.StringToValue("12/25/2025", ref)
	if !ok {
		t.Fatalf("expected text to parse")
	}
	if want := at(2025, time.December, 25, 9, 45); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, ok := f.StringToValue("next tuesday", ref); ok {
		t.Fatalf("expected free text to be rejected")
	}
}

type noonManager struct{ ValueManager }

func (noonManager) Merge(edited, _ time.Time) time.Time {
	return time.Date(edited.Year(), edited.Month(), edited.Day(), 12, 0, 0, 0, edited.Location())
}

func TestMerge_ValueManagerHook(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", ValueManager: noonManager{DateManager}})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 9, 45)))
	st = typeString(f, f.SetSelection(st, 2), "20")
	mustValue(t, st, at(2024, time.March, 20, 12, 0))

	got, ok := f.StringToValue("12/25/2025", at(2024, time.March, 15, 9, 45))
	if !ok || !got.Equal(at(2025, time.December, 25, 12, 0)) {
		t.Fatalf("expected the manager to place pasted dates at noon, got %v %v", got, ok)
	}
}
