package adapter

import "sort"

// Part names the calendar component a format token displays.
type Part string

const (
	PartYear     Part = "year"
	PartMonth    Part = "month"
	PartDay      Part = "day"
	PartWeekday  Part = "weekDay"
	PartHours    Part = "hours"
	PartMinutes  Part = "minutes"
	PartSeconds  Part = "seconds"
	PartMeridiem Part = "meridiem"
	// PartNone marks tokens that format fine but cannot be edited.
	PartNone Part = ""
)

// Content describes what kind of characters a token renders.
type Content string

const (
	ContentDigit           Content = "digit"
	ContentLetter          Content = "letter"
	ContentDigitWithLetter Content = "digit-with-letter"
)

type TokenInfo struct {
	Part    Part
	Content Content
	// MaxLength is the digit width used when an unpadded token is padded
	// for input. Zero for letter tokens.
	MaxLength int
}

var tokenTable = map[string]TokenInfo{
	"YY":   {PartYear, ContentDigit, 2},
	"YYYY": {PartYear, ContentDigit, 4},
	"M":    {PartMonth, ContentDigit, 2},
	"MM":   {PartMonth, ContentDigit, 2},
	"MMM":  {PartMonth, ContentLetter, 0},
	"MMMM": {PartMonth, ContentLetter, 0},
	"D":    {PartDay, ContentDigit, 2},
	"DD":   {PartDay, ContentDigit, 2},
	"Do":   {PartDay, ContentDigitWithLetter, 0},
	"d":    {PartWeekday, ContentDigit, 2},
	"dd":   {PartWeekday, ContentLetter, 0},
	"ddd":  {PartWeekday, ContentLetter, 0},
	"dddd": {PartWeekday, ContentLetter, 0},
	"H":    {PartHours, ContentDigit, 2},
	"HH":   {PartHours, ContentDigit, 2},
	"h":    {PartHours, ContentDigit, 2},
	"hh":   {PartHours, ContentDigit, 2},
	"m":    {PartMinutes, ContentDigit, 2},
	"mm":   {PartMinutes, ContentDigit, 2},
	"s":    {PartSeconds, ContentDigit, 2},
	"ss":   {PartSeconds, ContentDigit, 2},
	"A":    {PartMeridiem, ContentLetter, 0},
	"a":    {PartMeridiem, ContentLetter, 0},

	// Display-only tokens.
	"Q":   {PartNone, ContentDigit, 0},
	"SSS": {PartNone, ContentDigit, 0},
	"Z":   {PartNone, ContentDigit, 0},
	"ZZ":  {PartNone, ContentDigit, 0},
	"X":   {PartNone, ContentDigit, 0},
}

var sortedTokens = func() []string {
	out := make([]string, 0, len(tokenTable))
	for k := range tokenTable {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}()

// Tokens returns every recognized token code, longest first.
func Tokens() []string {
	out := make([]string, len(sortedTokens))
	copy(out, sortedTokens)
	return out
}

func LookupToken(code string) (TokenInfo, bool) {
	info, ok := tokenTable[code]
	return info, ok
}

// Meta tokens expand to locale formats. Longest first.
var metaTokens = []string{"LLLL", "LTS", "LLL", "LL", "LT", "L"}

// EscapeStart and EscapeEnd delimit literal text inside a format.
const (
	EscapeStart = '['
	EscapeEnd   = ']'
)

// matchAt returns the longest entry of vocab that prefixes rs[i:].
func matchAt(rs []rune, i int, vocab []string) string {
	for _, tok := range vocab {
		n := len(tok)
		if i+n > len(rs) {
			continue
		}
		if string(rs[i:i+n]) == tok {
			return tok
		}
	}
	return ""
}

type layoutItem struct {
	token   string
	literal string
}

// splitLayout tokenizes an expanded format the way the formatter reads it:
// escaped runs are literal, any recognized token matches at any position.
func splitLayout(format string) []layoutItem {
	rs := []rune(format)
	var items []layoutItem
	var lit []rune
	flush := func() {
		if len(lit) > 0 {
			items = append(items, layoutItem{literal: string(lit)})
			lit = nil
		}
	}
	for i := 0; i < len(rs); {
		if rs[i] == EscapeStart {
			end := indexRune(rs, i+1, EscapeEnd)
			if end >= 0 {
				lit = append(lit, rs[i+1:end]...)
				i = end + 1
				continue
			}
		}
		if tok := matchAt(rs, i, sortedTokens); tok != "" {
			flush()
			items = append(items, layoutItem{token: tok})
			i += len(tok)
			continue
		}
		lit = append(lit, rs[i])
		i++
	}
	flush()
	return items
}

func indexRune(rs []rune, from int, r rune) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}
