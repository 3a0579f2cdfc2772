package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/theme"
)

// Button is the call to action at the foot of a screen. It only renders;
// the owning screen checks Triggers and runs the action itself, so an
// inactive button can still explain why it is blocked.
type Button struct {
	Label   string
	Key     string // shortcut shown beside the label; enter always works
	Active  bool
	Blocked string // shown after an inactive button
}

// Triggers reports whether key presses the button.
func (b Button) Triggers(key string) bool {
	return key == "enter" || (b.Key != "" && key == b.Key)
}

func (b Button) View() string {
	label := "  ▸ " + b.Label + " "
	if b.Key != "" {
		label += "(" + b.Key + ") "
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	out := theme.ButtonInactive.Render(label)
	if b.Blocked != "" {
		out += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + b.Blocked)
	}
	return out
}
