package adapter

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/nfp"
)

// FromExcelFormat converts a spreadsheet number format such as
// "mm/dd/yyyy h:mm AM/PM" into the token format fields understand. Only the
// first (positive) section is used.
func FromExcelFormat(format string) (string, error) {
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(format)
	if len(sections) == 0 {
		return "", fmt.Errorf("excel format %q: no sections", format)
	}
	items := sections[0].Items

	hasMeridiem := false
	for _, tok := range items {
		if tok.TType == nfp.TokenTypeDateTimes {
			upper := strings.ToUpper(tok.TValue)
			if upper == "AM/PM" || upper == "A/P" {
				hasMeridiem = true
			}
		}
	}

	var b strings.Builder
	sawDate := false
	lastWasHour := false
	for i, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			upper := strings.ToUpper(tok.TValue)
			code, err := excelToken(upper, hasMeridiem, lastWasHour, nextIsSeconds(items, i))
			if err != nil {
				return "", fmt.Errorf("excel format %q: %w", format, err)
			}
			b.WriteString(code)
			sawDate = true
			lastWasHour = upper == "H" || upper == "HH"
		case nfp.TokenTypeElapsedDateTimes:
			return "", fmt.Errorf("excel format %q: elapsed token [%s] is not editable", format, tok.TValue)
		case nfp.TokenTypeColor, nfp.TokenTypeCondition, nfp.TokenTypeCurrencyLanguage, nfp.TokenTypeAlignment:
			// Decoration only.
		default:
			// A literal between an hour and M/MM keeps the minute reading.
			b.WriteString(escapeLiteral(tok.TValue))
		}
	}
	if !sawDate {
		return "", fmt.Errorf("excel format %q: no date or time tokens", format)
	}
	return b.String(), nil
}

func nextIsSeconds(items []nfp.Token, i int) bool {
	for _, tok := range items[i+1:] {
		if tok.TType != nfp.TokenTypeDateTimes {
			continue
		}
		upper := strings.ToUpper(tok.TValue)
		return upper == "S" || upper == "SS"
	}
	return false
}

func excelToken(upper string, hasMeridiem, lastWasHour, beforeSeconds bool) (string, error) {
	switch upper {
	case "YYYY", "YYY":
		return "YYYY", nil
	case "YY", "Y":
		return "YY", nil
	case "M", "MM":
		if lastWasHour || beforeSeconds {
			return strings.ToLower(upper), nil
		}
		return upper, nil
	case "MMM":
		return "MMM", nil
	case "MMMM":
		return "MMMM", nil
	case "D":
		return "D", nil
	case "DD":
		return "DD", nil
	case "DDD":
		return "ddd", nil
	case "DDDD":
		return "dddd", nil
	case "H", "HH":
		if hasMeridiem {
			return strings.ToLower(upper), nil
		}
		return upper, nil
	case "S", "SS":
		return strings.ToLower(upper), nil
	case "AM/PM", "A/P":
		return "A", nil
	}
	return "", fmt.Errorf("unsupported token %q", upper)
}

// escapeLiteral wraps text containing letters in escape brackets so the
// field parser does not read it as tokens.
func escapeLiteral(s string) string {
	s = strings.Trim(s, `"`)
	s = strings.TrimPrefix(s, `\`)
	for _, r := range s {
		if unicode.IsLetter(r) {
			return string(EscapeStart) + s + string(EscapeEnd)
		}
	}
	return s
}
