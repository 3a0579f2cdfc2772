package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/theme"
)

// Field is a labelled single-line text input.
type Field struct {
	Label    string
	Required bool
	Model    textinput.Model
}

// NewField creates a blurred field. charLimit 0 means unlimited.
func NewField(label, placeholder string, charLimit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return Field{Label: label, Model: ti}
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes keyboard focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Focused reports whether the field has focus.
func (f Field) Focused() bool {
	return f.Model.Focused()
}

// Update forwards messages to the input.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// Value returns the trimmed input value.
func (f Field) Value() string {
	return strings.TrimSpace(f.Model.Value())
}

// SetValue replaces the input value.
func (f *Field) SetValue(s string) {
	f.Model.SetValue(s)
}

// Missing reports whether a required field is empty.
func (f Field) Missing() bool {
	return f.Required && f.Value() == ""
}

// View renders the label above the input.
func (f Field) View() string {
	label := f.Label
	if f.Required {
		label += " *"
	}
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if f.Focused() {
		style = theme.Selected
	}
	return style.Render(label) + "\n" + f.Model.View()
}
