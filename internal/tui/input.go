package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in a form field.
const maxInputLen = 256

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for named keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if r, _ := utf8.DecodeRuneInString(key); r < ' ' || r == 0x7f {
				return text
			}
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// insertText appends pasted text, dropping control characters and
// clamping the result to maxInputLen runes.
func insertText(text string, paste []rune) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	var b strings.Builder
	b.WriteString(text)
	for _, r := range paste {
		if room <= 0 {
			break
		}
		if r < ' ' || r == 0x7f {
			continue
		}
		b.WriteRune(r)
		room--
	}
	return b.String()
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formField is one input of a form. A field with choices cycles through
// them with left/right instead of accepting text.
type formField struct {
	label   string
	value   string
	secret  bool
	choices []string
}

// form is a vertical list of fields with a single focus.
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	for i := range fields {
		if len(fields[i].choices) > 0 && fields[i].value == "" {
			fields[i].value = fields[i].choices[0]
		}
	}
	return form{fields: fields}
}

// handleKey applies a key press. It returns true when the form should be
// submitted: ctrl+s anywhere, or enter on the last field.
func (f *form) handleKey(msg tea.KeyMsg) bool {
	n := len(f.fields)
	if n == 0 {
		return false
	}
	field := &f.fields[f.focus]

	switch msg.String() {
	case "ctrl+s":
		return true
	case "enter":
		if f.focus == n-1 {
			return true
		}
		f.focus++
	case "tab", "down":
		f.focus = (f.focus + 1) % n
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + n) % n
	case "left", "right":
		if len(field.choices) > 0 {
			idx := 0
			for i, c := range field.choices {
				if c == field.value {
					idx = i
					break
				}
			}
			step := 1
			if msg.String() == "left" {
				step = len(field.choices) - 1
			}
			field.value = field.choices[(idx+step)%len(field.choices)]
		}
	default:
		if len(field.choices) > 0 {
			break
		}
		if msg.Type == tea.KeyRunes && (msg.Paste || len(msg.Runes) > 1) {
			field.value = insertText(field.value, msg.Runes)
		} else {
			field.value = editRune(field.value, msg.String())
		}
	}
	return false
}

func (f form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].value
}

// clearSecrets empties every secret field.
func (f *form) clearSecrets() {
	for i := range f.fields {
		if f.fields[i].secret {
			f.fields[i].value = ""
		}
	}
}

func (f form) View() string {
	var b strings.Builder
	width := 0
	for _, fld := range f.fields {
		width = max(width, len(fld.label))
	}
	for i, fld := range f.fields {
		cursor := " "
		style := metaStyle
		if i == f.focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}
		value := fld.value
		if fld.secret {
			value = strings.Repeat("•", utf8.RuneCountInString(value))
		}
		switch {
		case len(fld.choices) > 0:
			value = accentStyle.Render(value) + dimStyle.Render("  (←/→)")
		case i == f.focus:
			value = normalStyle.Render(value) + accentStyle.Render("█")
		case value == "":
			value = inputPlaceholderStyle.Render("…")
		default:
			value = normalStyle.Render(value)
		}
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, style.Render(fmt.Sprintf("%-*s", width, fld.label)), value)
	}
	return b.String()
}
