package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/chutelab/chute/internal/ui/theme"
)

// InputKind restricts which characters a TextInput accepts.
type InputKind int

const (
	InputText InputKind = iota
	InputInteger
	InputDecimal
)

// TextInput wraps bubbles/textinput with Chute styling.
type TextInput struct {
	Model     textinput.Model
	Kind      InputKind
	MaxWidth  int
	submitted bool
	valid     bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, kind InputKind, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		Kind:     kind,
		MaxWidth: maxWidth,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.submitted = false
}

// Update handles messages. Keys that the input kind does not accept are dropped.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !t.accepts(key[0]) {
			return t, nil
		}
		t.submitted = false
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) accepts(c byte) bool {
	isDigit := c >= '0' && c <= '9'
	switch t.Kind {
	case InputInteger:
		return isDigit
	case InputDecimal:
		return isDigit || c == '.' || c == ','
	default:
		return true
	}
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// IntValue returns the input value as an integer.
func (t TextInput) IntValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}

// FloatValue returns the input value as a float. A decimal comma is accepted.
func (t TextInput) FloatValue() (float64, error) {
	v := strings.ReplaceAll(strings.TrimSpace(t.Model.Value()), ",", ".")
	return strconv.ParseFloat(v, 64)
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}
