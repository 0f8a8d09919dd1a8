package field

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tempo-cli/internal/adapter"
)

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeySelectAll
	KeyEscape
	KeyPaste
)

// Key is one input event. Rune is set for KeyRune, Text for KeyPaste.
type Key struct {
	Code KeyCode
	Rune rune
	Text string
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		return string(k.Rune)
	case KeyPaste:
		return "<paste:" + k.Text + ">"
	}
	if name, ok := keyNames[k.Code]; ok {
		return "<" + name + ">"
	}
	return fmt.Sprintf("<key %d>", int(k.Code))
}

var keyNames = map[KeyCode]string{
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySelectAll: "ctrl+a",
	KeyEscape:    "escape",
}

var namedKeys = map[string]KeyCode{
	"left":      KeyLeft,
	"right":     KeyRight,
	"up":        KeyUp,
	"down":      KeyDown,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdown":    KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"backspace": KeyBackspace,
	"delete":    KeyDelete,
	"del":       KeyDelete,
	"ctrl+a":    KeySelectAll,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
}

// ParseKeys reads a key script. Each argument is either a named key in
// angle brackets ("<up>", "<ctrl+a>", "<paste:12/25/2025>") or plain text
// typed one rune at a time.
func ParseKeys(args []string) ([]Key, error) {
	var out []Key
	for _, arg := range args {
		rest := arg
		for rest != "" {
			if strings.HasPrefix(rest, "<") {
				end := strings.Index(rest, ">")
				if end > 0 {
					k, err := parseNamedKey(rest[1:end])
					if err != nil {
						return nil, err
					}
					out = append(out, k)
					rest = rest[end+1:]
					continue
				}
			}
			r, size := utf8.DecodeRuneInString(rest)
			out = append(out, Key{Code: KeyRune, Rune: r})
			rest = rest[size:]
		}
	}
	return out, nil
}

func parseNamedKey(name string) (Key, error) {
	if text, ok := strings.CutPrefix(name, "paste:"); ok {
		return Key{Code: KeyPaste, Text: text}, nil
	}
	code, ok := namedKeys[strings.ToLower(name)]
	if !ok {
		return Key{}, fmt.Errorf("unknown key <%s>", name)
	}
	return Key{Code: code}, nil
}

// HandleKey dispatches one input event to the matching command.
func (f *Field) HandleKey(st State, k Key) State {
	switch k.Code {
	case KeySelectAll:
		return f.SetSelection(st, SelectAll)
	case KeyEscape:
		return f.SetSelection(st, SelectNone)
	case KeyLeft, KeyRight:
		return f.move(st, k.Code)
	case KeyBackspace, KeyDelete:
		if _, ok := st.Selection.Index(); ok {
			return f.ClearActive(st)
		}
		return f.ClearAll(st)
	case KeyUp, KeyDown, KeyPageUp, KeyPageDown, KeyHome, KeyEnd:
		if st.Selection == SelectNone {
			return st
		}
		return f.Adjust(st, k.Code)
	case KeyPaste:
		return f.Paste(st, k.Text)
	case KeyRune:
		return f.TypeKey(st, k.Rune)
	}
	return st
}

func (f *Field) move(st State, code KeyCode) State {
	o := f.order
	if o.Start < 0 {
		return st
	}
	right := code == KeyRight
	switch st.Selection {
	case SelectNone:
		if right {
			return f.SetSelection(st, Selection(o.Start))
		}
		return f.SetSelection(st, Selection(o.End))
	case SelectAll:
		if right {
			return f.SetSelection(st, Selection(o.End))
		}
		return f.SetSelection(st, Selection(o.Start))
	}
	n, ok := o.Neighbors[int(st.Selection)]
	if !ok {
		return st
	}
	target := n.Left
	if right {
		target = n.Right
	}
	if target < 0 {
		return st
	}
	return f.SetSelection(st, Selection(target))
}

// TypeKey types r into the selected section. With every section selected
// the value is cleared and typing starts in the first section. Typing the
// separator that follows the section moves to the next one.
func (f *Field) TypeKey(st State, r rune) State {
	if f.readOnly {
		return st
	}
	if st.Selection == SelectAll {
		first, ok := firstDatePart(st.Sections)
		if !ok {
			return st
		}
		st = f.ClearAll(st)
		st.Selection = Selection(first)
	}
	idx, ok := st.Selection.Index()
	if !ok || idx >= len(st.Sections) || st.Sections[idx].Kind != DatePart {
		return st
	}
	if !unicode.IsLetter(r) && !f.adapter.IsDigit(r) {
		if f.separatorFollows(st.Sections, idx, r) {
			if next, ok := nextDatePart(st.Sections, idx); ok {
				return f.SetSelection(st, Selection(next))
			}
		}
		return st
	}
	return f.applyQuery(st, idx, r)
}

func (f *Field) separatorFollows(sections []Section, idx int, r rune) bool {
	if idx+1 >= len(sections) || sections[idx+1].Kind != Separator {
		return false
	}
	sep := strings.TrimSpace(stripIsolation(sections[idx+1].Text))
	return sep != "" && strings.ContainsRune(sep, r)
}

// Paste writes text into the selected section when it fits the section's
// content; otherwise the text is parsed as a whole value.
func (f *Field) Paste(st State, text string) State {
	if f.readOnly {
		return st
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return st
	}
	letters, digits := true, true
	for _, r := range text {
		if !unicode.IsLetter(r) {
			letters = false
		}
		if !f.adapter.IsDigit(r) {
			digits = false
		}
	}
	mixed := true
	for _, r := range text {
		if !unicode.IsLetter(r) && !f.adapter.IsDigit(r) {
			mixed = false
		}
	}

	if idx, ok := st.Selection.Index(); ok && idx < len(st.Sections) && st.Sections[idx].Kind == DatePart {
		fits := false
		switch st.Sections[idx].Token.Content {
		case adapter.ContentLetter:
			fits = letters
		case adapter.ContentDigit:
			fits = digits
		case adapter.ContentDigitWithLetter:
			fits = mixed
		}
		if fits {
			return f.updateSectionValue(st.withQuery(nil), idx, text, true)
		}
		if letters || digits {
			return st
		}
	}
	return f.UpdateFromString(st, text)
}
