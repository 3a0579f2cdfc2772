package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/ui/theme"
)

// MenuItem is one choice. Key picks it directly; Note is shown dimmed
// after the label, usually to say why the item is disabled.
type MenuItem struct {
	Label    string
	Key      string
	Note     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of choices. The selection never rests on a
// disabled item while an enabled one exists.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if len(items) > 0 && items[0].Disabled {
		m.move(1)
	}
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key == key && m.enabled(i) {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

// move steps to the next enabled item in direction dir, staying put at
// either end.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if m.enabled(i) {
			m.Selected = i
			return
		}
	}
}

func (m Menu) enabled(i int) bool {
	return i >= 0 && i < len(m.Items) && !m.Items[i].Disabled
}

func (m Menu) activate(i int) tea.Cmd {
	if !m.enabled(i) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// Keyed reports whether any item has a shortcut, in which case every row
// reserves room for one so labels line up.
func (m Menu) Keyed() bool {
	for _, item := range m.Items {
		if item.Key != "" {
			return true
		}
	}
	return false
}

func (m Menu) View() string {
	var (
		keyed    = m.Keyed()
		dim      = lipgloss.NewStyle().Foreground(theme.TextDim)
		normal   = lipgloss.NewStyle().Foreground(theme.Text)
		selected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		b        strings.Builder
	)
	for i, item := range m.Items {
		label := item.Label
		if keyed {
			key := "   "
			if item.Key != "" {
				key = "[" + item.Key + "]"
			}
			label = key + " " + label
		}

		switch {
		case item.Disabled:
			b.WriteString(dim.Render("    " + label))
		case i == m.Selected:
			b.WriteString(selected.Render("  ▸ " + label))
		default:
			b.WriteString(normal.Render("    " + label))
		}
		if item.Note != "" {
			b.WriteString(dim.Render("  " + item.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}
