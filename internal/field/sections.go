package field

import (
	"strconv"
	"strings"
	"time"

	"tempo-cli/internal/adapter"
)

type SectionKind int

const (
	DatePart SectionKind = iota
	Separator
)

func (k SectionKind) String() string {
	if k == Separator {
		return "separator"
	}
	return "datePart"
}

// Section is one unit of the rendered field. Date-part sections carry a
// token and the text typed into it; separator sections carry literal text.
type Section struct {
	Kind     SectionKind
	Token    Token
	Text     string
	Value    string
	Modified bool
}

// Display returns the section value, or its placeholder when empty.
func (s Section) Display() string {
	if s.Kind == Separator {
		return s.Text
	}
	if s.Value == "" {
		return s.Token.Placeholder
	}
	return s.Value
}

// Selection is a section index, SelectNone or SelectAll.
type Selection int

const (
	SelectNone Selection = -1
	SelectAll  Selection = -2
)

func (s Selection) Index() (int, bool) { return int(s), s >= 0 }

func (s Selection) String() string {
	switch s {
	case SelectNone:
		return "none"
	case SelectAll:
		return "all"
	}
	return strconv.Itoa(int(s))
}

// CharacterQuery accumulates keystrokes typed into one section.
type CharacterQuery struct {
	Value   string
	Section int
	Part    adapter.Part
}

// State is an immutable snapshot of a field. Commands never modify the
// State they receive.
type State struct {
	Value adapter.Date
	// Reference supplies the components no section currently holds. It is
	// always a real date.
	Reference time.Time
	Sections  []Section
	Selection Selection
	Query     *CharacterQuery
	// QueryGen identifies the stored query for expiry.
	QueryGen uint64
}

func (st State) clone() State {
	next := st
	next.Sections = make([]Section, len(st.Sections))
	copy(next.Sections, st.Sections)
	if st.Query != nil {
		q := *st.Query
		next.Query = &q
	}
	return next
}

func (st State) withQuery(q *CharacterQuery) State {
	next := st.clone()
	next.Query = q
	if q != nil {
		next.QueryGen++
	}
	return next
}

// sectionsFromValue lays the parsed format out as sections holding the
// components of v. Invalid and empty values produce empty sections.
func (f *Field) sectionsFromValue(v adapter.Date) []Section {
	p := f.parsed
	out := make([]Section, 0, 2*len(p.Tokens)+2)
	if p.Prefix != "" {
		out = append(out, Section{Kind: Separator, Text: p.Prefix})
	}
	for _, tok := range p.Tokens {
		sec := Section{Kind: DatePart, Token: tok}
		if v.IsValid() {
			sec.Value = f.sectionValueFromDate(v.Time(), tok)
		}
		out = append(out, sec)
		if tok.Separator != "" {
			out = append(out, Section{Kind: Separator, Text: tok.Separator})
		}
	}
	if p.Suffix != "" {
		out = append(out, Section{Kind: Separator, Text: p.Suffix})
	}
	return out
}

func (f *Field) sectionValueFromDate(t time.Time, tok Token) string {
	v := f.adapter.FormatToken(t, tok.Format)
	if tok.PaddedInput && !tok.Padded {
		v = f.adapter.ApplyLocalizedDigits(cleanLeadingZeros(f.adapter.RemoveLocalizedDigits(v), tok.MaxLength))
	}
	return v
}

// refreshSections rewrites every date-part value from t, keeping the
// modified flags.
func (f *Field) refreshSections(sections []Section, t time.Time) {
	for i, sec := range sections {
		if sec.Kind == DatePart {
			sections[i].Value = f.sectionValueFromDate(t, sec.Token)
		}
	}
}

// nonInputValue is the section value as the format would print it.
func (f *Field) nonInputValue(sec Section) string {
	v := sec.Value
	if sec.Token.PaddedInput && !sec.Token.Padded {
		if n, err := strconv.Atoi(f.adapter.RemoveLocalizedDigits(v)); err == nil {
			v = strconv.Itoa(n)
		}
	}
	return v
}

// DisplayValue renders a date-part section the way an input element shows
// it: placeholder when empty, an invisible mark after lone unpadded digits,
// isolated when the field is right to left.
func (f *Field) DisplayValue(sec Section) string {
	if sec.Kind == Separator {
		return sec.Text
	}
	v := sec.Display()
	if sec.Token.Content == adapter.ContentDigit && !sec.Token.PaddedInput && len([]rune(v)) == 1 {
		v += "\u200e"
	}
	if f.direction == RTL {
		v = "\u2068" + v + "\u2069"
	}
	return v
}

func cleanLeadingZeros(s string, size int) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	out := strconv.Itoa(n)
	if len(out) < size {
		out = strings.Repeat("0", size-len(out)) + out
	}
	return out
}

func datePartIndices(sections []Section) []int {
	out := make([]int, 0, len(sections))
	for i, sec := range sections {
		if sec.Kind == DatePart {
			out = append(out, i)
		}
	}
	return out
}

func firstDatePart(sections []Section) (int, bool) {
	for i, sec := range sections {
		if sec.Kind == DatePart {
			return i, true
		}
	}
	return 0, false
}

func nextDatePart(sections []Section, from int) (int, bool) {
	for i := from + 1; i < len(sections); i++ {
		if sections[i].Kind == DatePart {
			return i, true
		}
	}
	return 0, false
}

func hasPart(sections []Section, part adapter.Part) bool {
	for _, sec := range sections {
		if sec.Kind == DatePart && sec.Token.Part == part {
			return true
		}
	}
	return false
}

func allFilled(sections []Section) bool {
	for _, sec := range sections {
		if sec.Kind == DatePart && sec.Value == "" {
			return false
		}
	}
	return true
}

func isASCIINumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// leadingInt parses the digits at the start of s ("5th" -> 5).
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
