package components

import (
	"image/color"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/abhisek/sppa/internal/ui/theme"
)

func TestRatingForKey(t *testing.T) {
	tests := []struct {
		key  string
		want tasklist.Rating
		ok   bool
	}{
		{"1", tasklist.Breakdown, true},
		{"2", tasklist.Partial, true},
		{"3", tasklist.MinimalSustained, true},
		{"4", tasklist.FullySustained, true},
		{"0", tasklist.Unset, false},
		{"5", tasklist.Unset, false},
		{"a", tasklist.Unset, false},
		{"12", tasklist.Unset, false},
	}
	for _, tt := range tests {
		got, ok := RatingForKey(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("RatingForKey(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRatingBar_ShowsAllLabels(t *testing.T) {
	bar := RatingBar(tasklist.Unset, true)
	for _, r := range tasklist.Ratings() {
		if !strings.Contains(bar, r.Label()) {
			t.Errorf("rating bar missing %q", r.Label())
		}
	}
}

func TestWindow(t *testing.T) {
	blocks := []string{"a\nb\n", "c\nd\n", "e\nf\n", "g\nh\n"}

	if got := Window(nil, 0, 10); got != nil {
		t.Errorf("Window(nil) = %v, want nil", got)
	}

	all := Window(blocks, 0, 100)
	if len(all) != len(blocks) {
		t.Errorf("len = %d, want %d", len(all), len(blocks))
	}

	got := Window(blocks, 3, 6)
	if len(got) != 2 || got[len(got)-1] != blocks[3] {
		t.Errorf("Window around last block = %q", got)
	}

	tight := Window(blocks, 1, 1)
	if len(tight) != 1 || tight[0] != blocks[1] {
		t.Errorf("cursor block must always be included, got %q", tight)
	}

	outOfRange := Window(blocks, 9, 3)
	if len(outOfRange) == 0 || outOfRange[0] != blocks[0] {
		t.Errorf("out of range cursor should start at first block, got %q", outOfRange)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Level 1", Action: pick("1"), Disabled: true},
		{Label: "Level 2", Action: pick("2")},
		{Label: "Level 3", Action: pick("3")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up onto a disabled item moved selection to %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if chosen != "3" {
		t.Errorf("chosen = %q, want 3", chosen)
	}
}

func TestMenu_Shortcuts(t *testing.T) {
	var chosen string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			chosen = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "Level 1", Key: "1", Action: pick("1"), Disabled: true, Note: "below the working level"},
		{Label: "Level 2", Key: "2", Action: pick("2")},
		{Label: "Level 3", Key: "3", Action: pick("3")},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if chosen != "" || m.Selected != 1 {
		t.Errorf("disabled shortcut fired: chosen = %q, selected = %d", chosen, m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if chosen != "3" || m.Selected != 2 {
		t.Errorf("chosen = %q, selected = %d; want 3, 2", chosen, m.Selected)
	}

	view := m.View()
	for _, want := range []string{"[1] Level 1", "[3] Level 3", "below the working level"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q:\n%s", want, view)
		}
	}
	if NewMenu([]MenuItem{{Label: "Level 0+"}}).Keyed() {
		t.Error("a menu without shortcuts should not reserve key columns")
	}
}

func TestButton(t *testing.T) {
	b := Button{Label: "Calculate Score", Key: "c", Blocked: "2 left to rate"}
	for key, want := range map[string]bool{"c": true, "enter": true, "x": false, "": false} {
		if got := b.Triggers(key); got != want {
			t.Errorf("Triggers(%q) = %v, want %v", key, got, want)
		}
	}
	if v := b.View(); !strings.Contains(v, "(c)") || !strings.Contains(v, "2 left to rate") {
		t.Errorf("inactive view = %q", v)
	}

	b.Active = true
	if strings.Contains(b.View(), "2 left to rate") {
		t.Error("an active button should not explain itself")
	}
	if (Button{Label: "Begin Session"}).Triggers("c") {
		t.Error("a button without a shortcut only answers to enter")
	}
}

func TestRoundProgress(t *testing.T) {
	tasks := []tasklist.AdministeredTask{
		{Name: "Narration (Past)", Rating: tasklist.Breakdown, Status: tasklist.StatusDone},
		{Name: "Instructions", Rating: tasklist.FullySustained, Status: tasklist.StatusDone},
		{Name: "Hypothesizing", Rating: tasklist.Unset, Status: tasklist.StatusPending},
	}
	p := RoundProgress(tasks, 2, 40)

	if p.Label != "Rated 2/3" {
		t.Errorf("Label = %q", p.Label)
	}
	if p.LabelColor != theme.LevelColor(2) {
		t.Error("label should take the working level's color")
	}
	want := []color.Color{theme.RatingColor(0), theme.RatingColor(3), theme.Border}
	if len(p.Segments) != len(want) {
		t.Fatalf("segments = %d, want %d", len(p.Segments), len(want))
	}
	for i := range want {
		if p.Segments[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, p.Segments[i], want[i])
		}
	}
	if w := lipgloss.Width(p.View()); w != 40 {
		t.Errorf("rendered width = %d, want 40", w)
	}
}

func TestField_MissingAndValue(t *testing.T) {
	f := NewField("Language", "", 20)
	f.Required = true
	if !f.Missing() {
		t.Error("empty required field should be missing")
	}
	f.SetValue("  Tagalog ")
	if f.Missing() {
		t.Error("filled field should not be missing")
	}
	if f.Value() != "Tagalog" {
		t.Errorf("Value = %q, want trimmed", f.Value())
	}
}
