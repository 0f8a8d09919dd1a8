package field

import (
	"strconv"
	"strings"
	"time"

	"tempo-cli/internal/adapter"
)

// queryResponse is the outcome of resolving a query against one section.
type queryResponse struct {
	value   string
	advance bool
	// save keeps an unresolved query so the next keystroke extends it.
	save bool
	// overflow marks a numeric query above the section maximum.
	overflow bool
}

// applyQuery resolves key into the section at idx, extending the pending
// query when it targets the same section.
func (f *Field) applyQuery(st State, idx int, key rune) State {
	sec := st.Sections[idx]
	numeric := f.adapter.IsDigit(key)
	k := string(key)
	resolve := f.resolveLetters
	usable := func(q string) bool { return !isASCIINumber(q) }
	if numeric {
		k = f.adapter.RemoveLocalizedDigits(k)
		resolve = f.resolveDigits
		usable = isASCIINumber
	} else {
		k = f.adapter.Locale().Lower(k)
	}

	if q := st.Query; q != nil && q.Section == idx && q.Part == sec.Token.Part && usable(q.Value) {
		concat := q.Value + k
		r := resolve(concat, sec.Token)
		if r.value != "" {
			return f.commitQuery(st, idx, concat, r)
		}
		if r.overflow || (!numeric && sec.Value != "") {
			f.log.Debug("keystroke rejected", "section", idx, "query", concat)
			return st
		}
	}

	r := resolve(k, sec.Token)
	if r.value == "" && !r.save {
		f.log.Debug("keystroke unresolved", "section", idx, "key", k)
		return st.withQuery(nil)
	}
	q := &CharacterQuery{Value: k, Section: idx, Part: sec.Token.Part}
	if r.value == "" {
		return st.withQuery(q)
	}
	return f.commitQuery(st, idx, k, r)
}

func (f *Field) commitQuery(st State, idx int, query string, r queryResponse) State {
	next := st.withQuery(&CharacterQuery{Value: query, Section: idx, Part: st.Sections[idx].Token.Part})
	return f.updateSectionValue(next, idx, r.value, r.advance)
}

func (f *Field) resolveDigits(q string, tok Token) queryResponse {
	switch tok.Content {
	case adapter.ContentDigit, adapter.ContentDigitWithLetter:
		r, _ := f.digitValue(q, tok, false)
		return r
	}
	switch tok.Part {
	case adapter.PartMonth:
		mm := Token{Format: "MM", Part: adapter.PartMonth, Content: adapter.ContentDigit, Padded: true, PaddedInput: true, MaxLength: 2}
		r, n := f.digitValue(q, mm, true)
		if r.value == "" {
			return r
		}
		r.value = f.adapter.FormatToken(f.adapter.Date(2000, time.Month(n), 1, 0, 0, 0), tok.Format)
		return r
	case adapter.PartWeekday:
		r, n := f.digitValue(q, tok, true)
		if r.value == "" {
			return r
		}
		opts := f.letterOptions(tok)
		if n < 1 || n > len(opts) {
			return queryResponse{}
		}
		r.value = opts[n-1]
		return r
	}
	return queryResponse{}
}

// digitValue checks a numeric query against the provisional boundaries.
// A lone digit below the minimum of a multi-digit section is kept as a
// pending query so "0" then "9" reads as 09.
func (f *Field) digitValue(q string, tok Token, skipBelowMin bool) (queryResponse, int) {
	n, err := strconv.Atoi(q)
	if err != nil {
		return queryResponse{}, 0
	}
	b := f.tokenBoundaries(tok, nil)
	if n > b.Max {
		return queryResponse{overflow: true}, n
	}
	if n < b.Min {
		if len(q) == 1 && (skipBelowMin || b.Max >= 10) {
			return queryResponse{save: true}, n
		}
		return queryResponse{}, n
	}
	advance := n*10 > b.Max || len(q) == len(strconv.Itoa(b.Max))
	return queryResponse{value: f.cleanDigitValue(n, b, tok), advance: advance}, n
}

// cleanDigitValue renders n the way the section stores it.
func (f *Field) cleanDigitValue(n int, b Boundaries, tok Token) string {
	if tok.Part == adapter.PartDay && tok.Content == adapter.ContentDigitWithLetter {
		d := f.adapter.Date(f.today().Year(), b.LongestMonth, n, 0, 0, 0)
		return f.adapter.FormatToken(d, tok.Format)
	}
	s := strconv.Itoa(n)
	if tok.PaddedInput {
		s = cleanLeadingZeros(s, tok.MaxLength)
	}
	return f.adapter.ApplyLocalizedDigits(s)
}

func (f *Field) resolveLetters(q string, tok Token) queryResponse {
	switch tok.Part {
	case adapter.PartMonth:
		return f.matchLetters(q, tok, adapter.FormatMonth, func(i int) string {
			return f.cleanDigitValue(i+1, Boundaries{}, tok)
		})
	case adapter.PartWeekday:
		week := f.adapter.WeekDates(f.today())
		return f.matchLetters(q, tok, adapter.FormatWeekday, func(i int) string {
			v := f.adapter.FormatToken(week[i], tok.Format)
			if n, err := strconv.Atoi(f.adapter.RemoveLocalizedDigits(v)); err == nil {
				return f.cleanDigitValue(n, Boundaries{}, tok)
			}
			return v
		})
	case adapter.PartMeridiem:
		return f.matchLetters(q, tok, "", nil)
	}
	return queryResponse{}
}

// matchLetters filters the token's options by prefix. Digit tokens match
// against the fallback letter format and re-encode the chosen option.
func (f *Field) matchLetters(q string, tok Token, fallback string, encode func(i int) string) queryResponse {
	if tok.Content == adapter.ContentLetter {
		r, _ := f.findOption(f.letterOptions(tok), q)
		return r
	}
	if fallback == "" || encode == nil {
		return queryResponse{}
	}
	opts := f.cache.options(f.adapter, tok.Part, fallback, f.today())
	r, i := f.findOption(opts, q)
	if r.value == "" {
		return r
	}
	r.value = encode(i)
	return r
}

func (f *Field) findOption(opts []string, q string) (queryResponse, int) {
	first, count := -1, 0
	for i, opt := range opts {
		if strings.HasPrefix(f.adapter.Locale().Lower(opt), q) {
			if first < 0 {
				first = i
			}
			count++
		}
	}
	if first < 0 {
		return queryResponse{}, -1
	}
	return queryResponse{value: opts[first], advance: count == 1}, first
}

func (f *Field) letterOptions(tok Token) []string {
	return f.cache.options(f.adapter, tok.Part, tok.Format, f.today())
}
