package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func typeKeys(t TextInput, s string) TextInput {
	for _, r := range s {
		t, _ = t.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return t
}

func TestTextInput_IntegerFiltersKeys(t *testing.T) {
	in := NewTextInput("120", InputInteger, 6)
	in.Focus()
	in = typeKeys(in, "1a2.3")

	if in.Value() != "123" {
		t.Fatalf("Value() = %q, want %q", in.Value(), "123")
	}
	n, err := in.IntValue()
	if err != nil || n != 123 {
		t.Errorf("IntValue() = %d, %v; want 123", n, err)
	}
}

func TestTextInput_DecimalComma(t *testing.T) {
	in := NewTextInput("0.8", InputDecimal, 8)
	in.Focus()
	in = typeKeys(in, "0,75x")

	f, err := in.FloatValue()
	if err != nil {
		t.Fatalf("FloatValue: %v", err)
	}
	if f != 0.75 {
		t.Errorf("FloatValue() = %v, want 0.75", f)
	}
}

func TestTextInput_SetValueAndFocus(t *testing.T) {
	in := NewTextInput("", InputText, 0)
	if in.Focused() {
		t.Error("new input should start blurred")
	}
	in.Focus()
	if !in.Focused() {
		t.Error("expected focus")
	}
	in.SetValue("abc")
	in.Blur()
	if in.Focused() || in.Value() != "abc" {
		t.Errorf("Focused=%v Value=%q", in.Focused(), in.Value())
	}
}

func TestTextInput_SubmitMarker(t *testing.T) {
	in := NewTextInput("", InputInteger, 4)
	in.SetValue("7")
	in.Submit(false)
	if !strings.Contains(in.View(), "✗") {
		t.Error("expected invalid marker after Submit(false)")
	}
	in.Submit(true)
	if !strings.Contains(in.View(), "✓") {
		t.Error("expected valid marker after Submit(true)")
	}
}

func TestButton_Press(t *testing.T) {
	pressed := false
	b := NewButton("Simulate", true, func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !pressed {
		t.Error("expected OnPress on Enter")
	}

	pressed = false
	b.Active = false
	b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if pressed {
		t.Error("inactive button should ignore Enter")
	}
}

func TestProgressBar_View(t *testing.T) {
	p := NewProgressBar("1/3", 0.4567, true, 60)
	view := p.View()
	if !strings.Contains(view, "45.67%") {
		t.Errorf("expected percentage in view, got %q", view)
	}
	if !strings.Contains(view, "1/3") {
		t.Errorf("expected label in view, got %q", view)
	}
}
