package field

import "tempo-cli/internal/adapter"

func adjustDelta(code KeyCode) int {
	switch code {
	case KeyUp:
		return 1
	case KeyDown:
		return -1
	case KeyPageUp:
		return 5
	case KeyPageDown:
		return -5
	}
	return 0
}

func isAdjustKey(code KeyCode) bool {
	switch code {
	case KeyUp, KeyDown, KeyPageUp, KeyPageDown, KeyHome, KeyEnd:
		return true
	}
	return false
}

// Adjust moves the selected section by an arrow, page, home or end key.
// With every section selected the first one is adjusted.
func (f *Field) Adjust(st State, code KeyCode) State {
	if f.readOnly || !isAdjustKey(code) {
		return st
	}
	idx, ok := st.Selection.Index()
	if st.Selection == SelectAll {
		idx, ok = firstDatePart(st.Sections)
	}
	if !ok || idx >= len(st.Sections) || st.Sections[idx].Kind != DatePart {
		return st
	}
	next := st.withQuery(nil)
	next.Selection = Selection(idx)
	value := f.adjustedValue(next, idx, code)
	return f.updateSectionValue(next, idx, value, false)
}

func (f *Field) adjustedValue(st State, idx int, code KeyCode) string {
	sec := st.Sections[idx]
	if sec.Token.Content == adapter.ContentLetter {
		return f.adjustLetter(sec, code)
	}
	return f.adjustDigit(st, idx, code)
}

func (f *Field) adjustDigit(st State, idx int, code KeyCode) string {
	sec := st.Sections[idx]
	tok := sec.Token
	b, _ := f.ValueBoundaries(st, idx)
	delta := adjustDelta(code)
	isStart, isEnd := code == KeyHome, code == KeyEnd
	step := f.step(tok.Part)

	var n int
	if sec.Value == "" || isStart || isEnd {
		if tok.Part == adapter.PartYear && !isStart && !isEnd {
			return f.currentYear(tok, b)
		}
		if delta > 0 || isStart {
			n = b.Min
		} else {
			n = b.Max
		}
	} else {
		cur, ok := leadingInt(f.adapter.RemoveLocalizedDigits(sec.Value))
		if !ok {
			cur = b.Min
		}
		n = cur + delta*step
	}

	if mod(n, step) != 0 {
		if delta < 0 || isStart {
			n += step - mod(step+n, step)
		}
		if delta > 0 || isEnd {
			n -= mod(n, step)
		}
	}

	span := b.Max - b.Min + 1
	switch {
	case n > b.Max:
		n = b.Min + (n-b.Max-1)%span
	case n < b.Min:
		n = b.Max - (b.Min-n-1)%span
	}
	return f.cleanDigitValue(n, b, tok)
}

// currentYear is where an empty year section lands, kept inside the
// constraint range.
func (f *Field) currentYear(tok Token, b Boundaries) string {
	now := f.today()
	if b.Max == 99 {
		return f.adapter.FormatToken(now, tok.Format)
	}
	y := min(max(now.Year(), b.Min), b.Max)
	return f.adapter.FormatToken(adapter.SetYear(now, y), tok.Format)
}

func (f *Field) adjustLetter(sec Section, code KeyCode) string {
	opts := f.letterOptions(sec.Token)
	if len(opts) == 0 {
		return sec.Value
	}
	delta := adjustDelta(code)
	if sec.Value == "" || code == KeyHome || code == KeyEnd {
		if delta > 0 || code == KeyHome {
			return opts[0]
		}
		return opts[len(opts)-1]
	}
	cur := -1
	for i, opt := range opts {
		if opt == sec.Value {
			cur = i
			break
		}
	}
	return opts[mod(cur+delta, len(opts))]
}

func (f *Field) step(part adapter.Part) int {
	if s, ok := f.steps[part]; ok && s > 0 {
		return s
	}
	return 1
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
