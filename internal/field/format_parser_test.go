package field

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tempo-cli/internal/adapter"
)

type tokenSummary struct {
	Format    string
	Part      adapter.Part
	Separator string
}

func summarize(p ParsedFormat) []tokenSummary {
	var out []tokenSummary
	for _, tok := range p.Tokens {
		out = append(out, tokenSummary{tok.Format, tok.Part, tok.Separator})
	}
	return out
}

func TestParsedFormat_Tokens(t *testing.T) {
	cases := []struct {
		name   string
		format string
		prefix string
		suffix string
		want   []tokenSummary
	}{
		{
			name:   "slashes",
			format: "MM/DD/YYYY",
			want: []tokenSummary{
				{"MM", adapter.PartMonth, "/"},
				{"DD", adapter.PartDay, "/"},
				{"YYYY", adapter.PartYear, ""},
			},
		},
		{
			name:   "meta tokens expand",
			format: "LLL",
			want: []tokenSummary{
				{"MMMM", adapter.PartMonth, " "},
				{"D", adapter.PartDay, ", "},
				{"YYYY", adapter.PartYear, " "},
				{"h", adapter.PartHours, ":"},
				{"mm", adapter.PartMinutes, " "},
				{"A", adapter.PartMeridiem, ""},
			},
		},
		{
			name:   "escaped words stay literal",
			format: "[Due] YYYY [year] MM!",
			prefix: "Due ",
			suffix: "!",
			want: []tokenSummary{
				{"YYYY", adapter.PartYear, " year "},
				{"MM", adapter.PartMonth, ""},
			},
		},
		{
			name:   "words that are not tokens",
			format: "YYYY at HH",
			want: []tokenSummary{
				{"YYYY", adapter.PartYear, " at "},
				{"HH", adapter.PartHours, ""},
			},
		},
		{
			name:   "adjacent tokens",
			format: "YYYYMMDD",
			want: []tokenSummary{
				{"YYYY", adapter.PartYear, ""},
				{"MM", adapter.PartMonth, ""},
				{"DD", adapter.PartDay, ""},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestField(t, Options{Format: tc.format})
			p := f.ParsedFormat()
			if diff := cmp.Diff(tc.want, summarize(p)); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
			if p.Prefix != tc.prefix || p.Suffix != tc.suffix {
				t.Fatalf("expected prefix %q suffix %q, got %q %q", tc.prefix, tc.suffix, p.Prefix, p.Suffix)
			}
		})
	}
}

func TestParsedFormat_Padding(t *testing.T) {
	f := newTestField(t, Options{Format: "M/DD/YYYY h:mm"})
	toks := f.ParsedFormat().Tokens
	got := map[string][2]bool{}
	for _, tok := range toks {
		got[tok.Format] = [2]bool{tok.Padded, tok.PaddedInput}
	}
	want := map[string][2]bool{
		"M":    {false, true},
		"DD":   {true, true},
		"YYYY": {true, true},
		"h":    {false, true},
		"mm":   {true, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("padding mismatch (-want +got):\n%s", diff)
	}

	respect := newTestField(t, Options{Format: "M/DD", RespectLeadingZeros: true})
	if respect.ParsedFormat().Tokens[0].PaddedInput {
		t.Fatalf("expected M to stay unpadded when leading zeros are respected")
	}
}

func TestParsedFormat_Placeholders(t *testing.T) {
	f := newTestField(t, Options{Format: "dddd MMMM DD YY hh:mm:ss a"})
	var got []string
	for _, tok := range f.ParsedFormat().Tokens {
		got = append(got, tok.Placeholder)
	}
	want := []string{"EEEE", "MMMM", "DD", "YY", "hh", "mm", "ss", "aa"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("placeholder mismatch (-want +got):\n%s", diff)
	}

	custom := newTestField(t, Options{
		Format: "YYYY",
		Placeholders: Placeholders{
			adapter.PartYear: func(Token) string { return "AAAA" },
		},
	})
	if got := custom.ParsedFormat().Tokens[0].Placeholder; got != "AAAA" {
		t.Fatalf("expected custom placeholder, got %q", got)
	}
}

func TestParsedFormat_RTLReversesWords(t *testing.T) {
	f := newTestField(t, Options{Format: "YYYY-MM-DD HH:mm", Direction: RTL})
	var got []string
	for _, tok := range f.ParsedFormat().Tokens {
		got = append(got, tok.Format)
	}
	want := []string{"HH", "mm", "YYYY", "MM", "DD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token order mismatch (-want +got):\n%s", diff)
	}
	if sep := f.ParsedFormat().Tokens[1].Separator; sep != "\u2069 \u2066" {
		t.Fatalf("expected isolated space separator, got %q", sep)
	}
}

func TestParsedFormat_SpaciousDensity(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD", Density: Spacious})
	if sep := f.ParsedFormat().Tokens[0].Separator; sep != " / " {
		t.Fatalf("expected padded separator, got %q", sep)
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	_, err := New(Options{Adapter: adapter.New("en", time.UTC), Format: "YYYY Q"})
	if !errors.Is(err, ErrUnsupportedToken) {
		t.Fatalf("expected ErrUnsupportedToken, got %v", err)
	}

	l := *adapter.LocaleEN
	l.Formats = map[string]string{"L": "L L"}
	_, err = New(Options{Adapter: adapter.NewWithLocale(&l, time.UTC), Format: "L"})
	if !errors.Is(err, ErrFormatExpansion) {
		t.Fatalf("expected ErrFormatExpansion, got %v", err)
	}

	_, err = New(Options{Format: "HH:mm", Steps: map[adapter.Part]int{adapter.PartMinutes: 0}})
	if !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

func TestParsedFormat_LayoutParsesText(t *testing.T) {
	f := newTestField(t, Options{Format: "MM/DD/YYYY", Density: Spacious})
	st := f.Init(adapter.DateOf(at(2025, time.December, 25, 0, 0)))
	text := f.Text(st)
	if text != "12 / 25 / 2025" {
		t.Fatalf("unexpected text %q", text)
	}
	back := f.UpdateFromString(f.Init(adapter.Date{}), text)
	mustValue(t, back, at(2025, time.December, 25, 0, 0))
}
