package field

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tempo-cli/internal/adapter"
)

// Sections for "MM/DD/YYYY hh:mm a":
// 0 MM, 2 DD, 4 YYYY, 6 hh, 8 mm, 10 a.
func TestTypeKey_FullDateTime(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY hh:mm a", ValueManager: DateTimeManager})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 14, 30)))
	st = f.SetSelection(st, 0)

	st = typeString(f, st, "06")
	mustValue(t, st, at(2024, time.June, 15, 14, 30))
	if st.Selection != 2 {
		t.Fatalf("expected day selected after month, got %s", st.Selection)
	}

	st = typeString(f, st, "01")
	mustValue(t, st, at(2024, time.June, 1, 14, 30))
	if st.Selection != 4 {
		t.Fatalf("expected year selected after day, got %s", st.Selection)
	}

	st = typeString(f, st, "2030")
	mustValue(t, st, at(2030, time.June, 1, 14, 30))
	if st.Selection != 6 {
		t.Fatalf("expected hours selected after year, got %s", st.Selection)
	}
	if got := f.Text(st); got != "06/01/2030 02:30 pm" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTypeKey_MonthOverflowIsRejected(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)

	st = f.TypeKey(st, '1')
	if got := st.Sections[0].Value; got != "01" {
		t.Fatalf("expected 01 after first digit, got %q", got)
	}
	if st.Selection != 0 {
		t.Fatalf("expected month to stay selected, got %s", st.Selection)
	}

	before := st
	st = f.TypeKey(st, '3')
	if diff := cmp.Diff(before, st); diff != "" {
		t.Fatalf("expected 13 to be rejected (-before +after):\n%s", diff)
	}

	st = f.TypeKey(st, '2')
	if got := st.Sections[0].Value; got != "12" {
		t.Fatalf("expected 12, got %q", got)
	}
	if st.Selection != 2 {
		t.Fatalf("expected day selected, got %s", st.Selection)
	}
	if st.Query != nil {
		t.Fatalf("expected query cleared after advancing, got %+v", st.Query)
	}
}

func TestTypeKey_LeadingZeroIsTentative(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 2)

	st = f.TypeKey(st, '0')
	if st.Sections[2].Value != "" {
		t.Fatalf("expected no value for a lone zero, got %q", st.Sections[2].Value)
	}
	if st.Query == nil || st.Query.Value != "0" {
		t.Fatalf("expected pending query 0, got %+v", st.Query)
	}

	st = f.TypeKey(st, '9')
	if got := st.Sections[2].Value; got != "09" {
		t.Fatalf("expected 09, got %q", got)
	}
	if st.Selection != 4 {
		t.Fatalf("expected year selected, got %s", st.Selection)
	}
}

func TestTypeKey_LetterMonth(t *testing.T) {
	f := newTestField(t, Options{Format: "MMMM YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)

	steps := []struct {
		key     rune
		want    string
		advance bool
	}{
		{'j', "January", false},
		{'u', "June", false},
		{'n', "June", true},
	}
	for _, s := range steps {
		st = f.TypeKey(st, s.key)
		if got := st.Sections[0].Value; got != s.want {
			t.Fatalf("after %q expected %q, got %q", s.key, s.want, got)
		}
		if moved := st.Selection != 0; moved != s.advance {
			t.Fatalf("after %q expected advance=%v, selection %s", s.key, s.advance, st.Selection)
		}
	}
}

func TestTypeKey_UnmatchedLetterKeepsValue(t *testing.T) {
	f := newTestField(t, Options{Format: "MMMM YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = f.TypeKey(st, 'j')
	before := st
	st = f.TypeKey(st, 'x')
	if diff := cmp.Diff(before, st); diff != "" {
		t.Fatalf("expected jx to be rejected (-before +after):\n%s", diff)
	}
}

func TestTypeKey_LetterIntoDigitMonth(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = typeString(f, st, "mar")
	if got := st.Sections[0].Value; got != "03" {
		t.Fatalf("expected march as 03, got %q", got)
	}
	if st.Selection != 2 {
		t.Fatalf("expected year selected, got %s", st.Selection)
	}
}

func TestTypeKey_DigitIntoLetterMonth(t *testing.T) {
	f := newTestField(t, Options{Format: "MMM YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = typeString(f, st, "11")
	if got := st.Sections[0].Value; got != "Nov" {
		t.Fatalf("expected Nov, got %q", got)
	}
}

func TestTypeKey_Meridiem(t *testing.T) {
	f := newTestField(t, Options{Format: "hh:mm a", ValueManager: TimeManager})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 9, 15)))
	st = f.SetSelection(st, 4)
	st = f.TypeKey(st, 'p')
	mustValue(t, st, at(2024, time.March, 15, 21, 15))
	if got := st.Sections[4].Value; got != "pm" {
		t.Fatalf("expected pm, got %q", got)
	}
}

func TestTypeKey_TwelveHourKeepsHalfOfDay(t *testing.T) {
	f := newTestField(t, Options{Format: "hh:mm", ValueManager: TimeManager})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 15, 0)))
	if got := sectionValues(st); !cmp.Equal(got, []string{"03", "00"}) {
		t.Fatalf("unexpected sections %v", got)
	}
	st = typeString(f, f.SetSelection(st, 0), "04")
	mustValue(t, st, at(2024, time.March, 15, 16, 0))
}

func TestTypeKey_WeekdayShiftsWithinWeek(t *testing.T) {
	f := newTestField(t, Options{Format: "dddd HH:mm", ValueManager: DateTimeManager})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 10, 0)))
	st = f.TypeKey(f.SetSelection(st, 0), 'm')
	mustValue(t, st, at(2024, time.March, 11, 10, 0))
	if got := st.Sections[0].Value; got != "Monday" {
		t.Fatalf("expected Monday, got %q", got)
	}
}

func TestTypeKey_DigitWeekday(t *testing.T) {
	f := newTestField(t, Options{Format: "d HH:mm", ValueManager: DateTimeManager})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 10, 0)))
	st = f.TypeKey(f.SetSelection(st, 0), '1')
	mustValue(t, st, at(2024, time.March, 11, 10, 0))

	// A letter lands on the same padded value as the digit.
	st = f.Init(adapter.DateOf(at(2024, time.March, 15, 10, 0)))
	st = f.TypeKey(f.SetSelection(st, 0), 'm')
	mustValue(t, st, at(2024, time.March, 11, 10, 0))
}

func TestTypeKey_LetterIntoUnpaddedMonthMatchesDigits(t *testing.T) {
	f := newTestField(t, Options{Format: "M/YYYY"})
	byLetter := typeString(f, f.SetSelection(f.Init(adapter.Date{}), 0), "mar")
	byDigit := typeString(f, f.SetSelection(f.Init(adapter.Date{}), 0), "3")
	if a, b := byLetter.Sections[0].Value, byDigit.Sections[0].Value; a != b {
		t.Fatalf("expected letter and digit entry to store the same text, got %q and %q", a, b)
	}
}

func TestTypeKey_OrdinalDay(t *testing.T) {
	f := newTestField(t, Options{Format: "MMMM Do"})
	st := f.SetSelection(f.Init(adapter.Date{}), 2)
	st = f.TypeKey(st, '2')
	if got := st.Sections[2].Value; got != "2nd" {
		t.Fatalf("expected 2nd, got %q", got)
	}
	st = f.TypeKey(st, '3')
	if got := st.Sections[2].Value; got != "23rd" {
		t.Fatalf("expected 23rd, got %q", got)
	}
}

func TestTypeKey_LocalizedDigits(t *testing.T) {
	f := newTestField(t, Options{Format: "DD/MM/YYYY", Adapter: adapter.New("ar", time.UTC)})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = typeString(f, st, "\u0660\u0666")
	if got := st.Sections[0].Value; got != "\u0660\u0666" {
		t.Fatalf("expected localized 06, got %q", got)
	}
	if st.Selection != 2 {
		t.Fatalf("expected month selected, got %s", st.Selection)
	}
}

func TestTypeKey_SeparatorMovesToNextSection(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = f.TypeKey(st, '1')
	st = f.TypeKey(st, '/')
	if st.Selection != 2 {
		t.Fatalf("expected day selected, got %s", st.Selection)
	}
	if st.Sections[0].Value != "01" {
		t.Fatalf("expected month kept, got %q", st.Sections[0].Value)
	}

	st = f.TypeKey(st, '-')
	if st.Selection != 2 {
		t.Fatalf("expected unrelated punctuation to be ignored, got %s", st.Selection)
	}
}

func TestTypeKey_SelectAllRestarts(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 0, 0)))
	st = f.SetSelection(st, SelectAll)
	st = f.TypeKey(st, '0')
	if !st.Value.IsEmpty() {
		t.Fatalf("expected empty value, got %v", st.Value)
	}
	if st.Selection != 0 {
		t.Fatalf("expected first section selected, got %s", st.Selection)
	}
	if diff := cmp.Diff([]string{"", "", ""}, sectionValues(st)); diff != "" {
		t.Fatalf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeKey_ReadOnly(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", ReadOnly: true})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	before := st
	st = f.TypeKey(st, '1')
	st = f.Paste(st, "12/25/2025")
	if diff := cmp.Diff(before, st); diff != "" {
		t.Fatalf("expected read-only field to ignore input (-before +after):\n%s", diff)
	}
}

func TestExpireQuery_Generation(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY"})
	st := f.SetSelection(f.Init(adapter.Date{}), 0)
	st = f.TypeKey(st, '1')

	gen, deadline, ok := f.QueryDeadline(st, fixedNow)
	if !ok {
		t.Fatalf("expected a pending query")
	}
	if want := fixedNow.Add(DefaultQueryTimeout); !deadline.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, deadline)
	}

	if stale := f.ExpireQuery(st, gen-1); stale.Query == nil {
		t.Fatalf("expected a stale generation to be ignored")
	}
	st = f.ExpireQuery(st, gen)
	if st.Query != nil {
		t.Fatalf("expected query dropped, got %+v", st.Query)
	}

	st = f.TypeKey(st, '2')
	if got := st.Sections[0].Value; got != "02" {
		t.Fatalf("expected a fresh query after expiry, got %q", got)
	}
}

func TestBoundaries(t *testing.T) {
	f := newTestField(t, Options{
		Format:  "YYYY-MM-DD HH hh d",
		MinDate: at(2024, time.March, 5, 0, 0),
		MaxDate: at(2024, time.March, 20, 0, 0),
	})
	st := f.Init(adapter.DateOf(at(2024, time.March, 10, 0, 0)))

	cases := []struct {
		idx   int
		typed Boundaries
		value Boundaries
	}{
		{0, Boundaries{0, 9999, 0}, Boundaries{2024, 2024, 0}},
		{2, Boundaries{1, 12, 0}, Boundaries{3, 3, 0}},
		{4, Boundaries{1, 31, time.January}, Boundaries{5, 20, time.January}},
		{6, Boundaries{0, 23, 0}, Boundaries{0, 23, 0}},
		{8, Boundaries{1, 12, 0}, Boundaries{1, 12, 0}},
		{10, Boundaries{0, 6, 0}, Boundaries{0, 6, 0}},
	}
	for _, tc := range cases {
		got, ok := f.Boundaries(st, tc.idx)
		if !ok {
			t.Fatalf("section %d: expected boundaries", tc.idx)
		}
		if diff := cmp.Diff(tc.typed, got); diff != "" {
			t.Fatalf("section %d typed boundaries (-want +got):\n%s", tc.idx, diff)
		}
		got, _ = f.ValueBoundaries(st, tc.idx)
		if diff := cmp.Diff(tc.value, got); diff != "" {
			t.Fatalf("section %d value boundaries (-want +got):\n%s", tc.idx, diff)
		}
	}

	if _, ok := f.Boundaries(st, 1); ok {
		t.Fatalf("expected no boundaries for a separator")
	}
}

func TestBoundaries_TimeConstraints(t *testing.T) {
	clock := func(h, m int) time.Time { return time.Date(0, time.January, 1, h, m, 0, 0, time.UTC) }
	f := newTestField(t, Options{
		Format:       "HH:mm",
		ValueManager: TimeManager,
		MinTime:      clock(9, 15),
		MaxTime:      clock(9, 45),
	})
	st := f.Init(adapter.DateOf(at(2024, time.March, 15, 9, 30)))

	cases := []struct {
		idx   int
		typed Boundaries
		value Boundaries
	}{
		{0, Boundaries{0, 23, 0}, Boundaries{9, 9, 0}},
		{2, Boundaries{0, 59, 0}, Boundaries{15, 45, 0}},
	}
	for _, tc := range cases {
		got, _ := f.Boundaries(st, tc.idx)
		if diff := cmp.Diff(tc.typed, got); diff != "" {
			t.Fatalf("section %d typed boundaries (-want +got):\n%s", tc.idx, diff)
		}
		got, _ = f.ValueBoundaries(st, tc.idx)
		if diff := cmp.Diff(tc.value, got); diff != "" {
			t.Fatalf("section %d value boundaries (-want +got):\n%s", tc.idx, diff)
		}
	}

	// Now is 14:30, past the latest time, so the empty field's reference
	// is pulled back to 09:45.
	empty := f.Init(adapter.Date{})
	if want := at(2024, time.March, 15, 9, 45); !empty.Reference.Equal(want) {
		t.Fatalf("expected reference %v, got %v", want, empty.Reference)
	}
}
