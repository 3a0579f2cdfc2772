package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sppa/internal/router"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/screens/intake"
	"github.com/abhisek/sppa/internal/session"
)

// stubScreen is a minimal screen that can claim the keyboard.
type stubScreen struct {
	title     string
	capturing bool
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string { return s.title }
func (s *stubScreen) CapturingInput() bool { return s.capturing }
func (s *stubScreen) Status() string { return "Tagalog" }

func testModel() AppModel {
	return newAppModel(Options{Env: &screen.Env{
		Now: func() time.Time { return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC) },
	}})
}

func TestNewAppModel_StartsOnIntake(t *testing.T) {
	m := testModel()
	if _, ok := m.router.Active().(*intake.IntakeScreen); !ok {
		t.Fatalf("active = %T, want intake", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected Init to focus the first field")
	}
}

func TestNewAppModel_NilEnv(t *testing.T) {
	m := newAppModel(Options{})
	if m.env == nil {
		t.Fatal("expected a default env")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_EscPops(t *testing.T) {
	m := testModel()
	m.router.Push(&stubScreen{title: "Survey"})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg")
	}
}

func TestAppModel_EscIgnoredWhileCapturing(t *testing.T) {
	m := testModel()
	m.router.Push(&stubScreen{title: "Survey", capturing: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc must not pop while the screen captures input")
		}
	}
}

func TestAppModel_EscOnRootScreen(t *testing.T) {
	m := testModel()
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_RestartReturnsToIntake(t *testing.T) {
	m := testModel()
	m.router.Reset(&stubScreen{title: "Summary"})

	m.Update(screen.RestartMsg{})
	if _, ok := m.router.Active().(*intake.IntakeScreen); !ok {
		t.Fatalf("active = %T, want intake", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestAppModel_ViewShowsTitleAndStatus(t *testing.T) {
	m := testModel()
	m.router.Push(&stubScreen{title: "Language Survey"})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	out := updated.(AppModel).render()
	for _, want := range []string{"Language Survey", "Tagalog", "Quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_ViewBeforeResize(t *testing.T) {
	if testModel().render() != "" {
		t.Error("expected empty content before the first WindowSizeMsg")
	}
}

func TestAppModel_JournalSurvivesRestart(t *testing.T) {
	env := &screen.Env{Journal: session.NewJournal(nil)}
	m := newAppModel(Options{Env: env})
	m.Update(screen.RestartMsg{})
	if m.env != env {
		t.Error("restart should keep the injected env")
	}
}
