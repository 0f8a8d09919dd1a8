package field

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tempo-cli/internal/adapter"
)

type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection reads "ltr" or "rtl"; anything else is LTR.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "rtl") {
		return RTL
	}
	return LTR
}

// Density controls separator spacing in rendered text.
type Density int

const (
	Dense Density = iota
	// Spacious pads "/", "." and "-" separators with a space on each side.
	Spacious
)

// Token is one editable format code with the literal text that follows it.
type Token struct {
	Format  string          `json:"format"`
	Part    adapter.Part    `json:"part"`
	Content adapter.Content `json:"content"`
	// Padded reports whether formatted output carries leading zeros.
	Padded bool `json:"padded"`
	// PaddedInput reports whether typed digits are zero padded to MaxLength.
	PaddedInput bool   `json:"paddedInput"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Placeholder string `json:"placeholder"`
	Separator   string `json:"separator,omitempty"`
}

// ParsedFormat is a format split into tokens. Prefix holds literal text
// before the first token, Suffix the text after the last one.
type ParsedFormat struct {
	Format string  `json:"format"`
	Prefix string  `json:"prefix,omitempty"`
	Tokens []Token `json:"tokens"`
	Suffix string  `json:"suffix,omitempty"`
}

// Layout rebuilds a format string from the parsed tokens with every
// separator escaped, so rendered text can be parsed back.
func (p ParsedFormat) Layout() string {
	var b strings.Builder
	b.WriteString(escapeText(p.Prefix))
	for i, tok := range p.Tokens {
		b.WriteString(tok.Format)
		if i < len(p.Tokens)-1 {
			b.WriteString(escapeText(tok.Separator))
		}
	}
	b.WriteString(escapeText(p.Suffix))
	return b.String()
}

func escapeText(s string) string {
	s = stripIsolation(s)
	if s == "" || strings.ContainsRune(s, adapter.EscapeEnd) {
		return s
	}
	return string(adapter.EscapeStart) + s + string(adapter.EscapeEnd)
}

type parseConfig struct {
	format              string
	direction           Direction
	density             Density
	respectLeadingZeros bool
	placeholders        Placeholders
	now                 time.Time
}

func parseFormat(a *adapter.Adapter, cfg parseConfig) (ParsedFormat, error) {
	expanded, err := a.ExpandAll(cfg.format)
	if err != nil {
		return ParsedFormat{}, fmt.Errorf("%w: %v", ErrFormatExpansion, err)
	}
	if cfg.direction == RTL {
		words := strings.Split(expanded, " ")
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
		expanded = strings.Join(words, " ")
	}

	rs := []rune(expanded)
	escapes := escapeRanges(rs)
	vocab := adapter.Tokens()

	out := ParsedFormat{Format: expanded}
	var sep strings.Builder
	commit := func(code string) error {
		info, _ := adapter.LookupToken(code)
		if info.Part == adapter.PartNone {
			return errUnsupportedToken(code, cfg.format)
		}
		if len(out.Tokens) == 0 {
			out.Prefix = sep.String()
		} else {
			out.Tokens[len(out.Tokens)-1].Separator = sep.String()
		}
		sep.Reset()
		out.Tokens = append(out.Tokens, buildToken(a, code, info, cfg))
		return nil
	}

	for i := 0; i < len(rs); {
		esc, escaped := escapes.at(i)
		if !escaped && isASCIILetter(rs[i]) {
			word := letterRun(rs, i)
			if codes, ok := splitWord(word, vocab); ok {
				for _, code := range codes {
					if err := commit(code); err != nil {
						return ParsedFormat{}, err
					}
				}
				i += len(word)
				continue
			}
		}
		if !(escaped && (esc.start == i || esc.end == i)) {
			sep.WriteRune(rs[i])
		}
		i++
	}
	out.Suffix = sep.String()

	clean := func(s string) string { return cleanSeparator(s, cfg.direction, cfg.density) }
	out.Prefix = clean(out.Prefix)
	out.Suffix = clean(out.Suffix)
	for i := range out.Tokens {
		out.Tokens[i].Separator = clean(out.Tokens[i].Separator)
	}
	return out, nil
}

func buildToken(a *adapter.Adapter, code string, info adapter.TokenInfo, cfg parseConfig) Token {
	tok := Token{Format: code, Part: info.Part, Content: info.Content}
	tok.Padded = hasLeadingZerosInFormat(a, tok, cfg.now)
	if cfg.respectLeadingZeros {
		tok.PaddedInput = tok.Padded
	} else {
		tok.PaddedInput = tok.Content == adapter.ContentDigit
	}
	width := utf8.RuneCountInString(a.FormatToken(cfg.now, code))
	switch {
	case tok.PaddedInput && tok.Padded:
		tok.MaxLength = width
	case tok.Content == adapter.ContentDigit:
		tok.MaxLength = info.MaxLength
	}
	tok.Placeholder = defaultPlaceholder(tok, width)
	if fn, ok := cfg.placeholders[tok.Part]; ok && fn != nil {
		tok.Placeholder = fn(tok)
	}
	return tok
}

// hasLeadingZerosInFormat formats a small sample value through the token and
// checks whether the output is wider than the bare number.
func hasLeadingZerosInFormat(a *adapter.Adapter, tok Token, now time.Time) bool {
	if tok.Content != adapter.ContentDigit {
		return false
	}
	f := func(t time.Time) string { return a.RemoveLocalizedDigits(a.FormatToken(t, tok.Format)) }
	switch tok.Part {
	case adapter.PartYear:
		if len(f(now)) == 4 {
			return f(adapter.SetYear(now, 1)) == "0001"
		}
		return f(adapter.SetYear(now, 2001)) == "01"
	case adapter.PartMonth:
		return len(f(adapter.StartOfYear(now))) > 1
	case adapter.PartDay:
		return len(f(adapter.StartOfMonth(now))) > 1
	case adapter.PartWeekday:
		return len(f(a.StartOfWeek(now))) > 1
	case adapter.PartHours:
		return len(f(adapter.SetHours(now, 1))) > 1
	case adapter.PartMinutes:
		return len(f(adapter.SetMinutes(now, 1))) > 1
	case adapter.PartSeconds:
		return len(f(adapter.SetSeconds(now, 1))) > 1
	}
	return false
}

func cleanSeparator(s string, dir Direction, density Density) string {
	if dir == RTL && strings.Contains(s, " ") {
		s = "\u2069" + s + "\u2066"
	}
	if density == Spacious && (s == "/" || s == "." || s == "-") {
		s = " " + s + " "
	}
	return s
}

func stripIsolation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200e', '\u2066', '\u2067', '\u2068', '\u2069':
			return -1
		}
		return r
	}, s)
}

type escapeRange struct{ start, end int }

type escapeSet []escapeRange

func (s escapeSet) at(i int) (escapeRange, bool) {
	for _, r := range s {
		if r.start <= i && i <= r.end {
			return r, true
		}
	}
	return escapeRange{}, false
}

// escapeRanges returns the rune spans of each non-empty bracketed run,
// delimiters included.
func escapeRanges(rs []rune) escapeSet {
	var out escapeSet
	for i := 0; i < len(rs); i++ {
		if rs[i] != adapter.EscapeStart || (i+1 < len(rs) && rs[i+1] == adapter.EscapeEnd) {
			continue
		}
		for j := i + 2; j < len(rs); j++ {
			if rs[j] == adapter.EscapeEnd {
				out = append(out, escapeRange{start: i, end: j})
				i = j
				break
			}
		}
	}
	return out
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func letterRun(rs []rune, i int) string {
	j := i
	for j < len(rs) && isASCIILetter(rs[j]) {
		j++
	}
	return string(rs[i:j])
}

// splitWord splits word into token codes, preferring the longest code at
// each position. It fails when any part of the word is not a token.
func splitWord(word string, vocab []string) ([]string, bool) {
	if word == "" {
		return nil, true
	}
	for _, code := range vocab {
		if !strings.HasPrefix(word, code) {
			continue
		}
		if rest, ok := splitWord(word[len(code):], vocab); ok {
			return append([]string{code}, rest...), true
		}
	}
	return nil, false
}
