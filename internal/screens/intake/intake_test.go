package intake

import (
	"context"
	"reflect"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sppa/internal/router"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/screens/survey"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
)

// mockEvents implements session.EventAppender for testing.
type mockEvents struct {
	events []store.SessionEventData
}

func (m *mockEvents) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.events = append(m.events, data)
	return nil
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

func newTestScreen(events *mockEvents) *IntakeScreen {
	s := New(&screen.Env{
		Journal: session.NewJournal(events),
		Now:     func() time.Time { return testNow },
	})
	s.Init()
	return s
}

func typeText(s *IntakeScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// drain runs cmd and every command batched or sequenced inside it.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, drain(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func TestIntakeScreen_Title(t *testing.T) {
	s := newTestScreen(&mockEvents{})
	if s.Title() != "Session Information" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestIntakeScreen_DatePrefilled(t *testing.T) {
	s := newTestScreen(&mockEvents{})
	if got := s.fields[fieldDate].Value(); got != "2026-03-14" {
		t.Errorf("date = %q, want 2026-03-14", got)
	}
}

func TestIntakeScreen_RequiresLanguage(t *testing.T) {
	s := newTestScreen(&mockEvents{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when the language is missing")
	}
	if s.errMsg != "Enter the language being assessed." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestIntakeScreen_RejectsBadDate(t *testing.T) {
	s := newTestScreen(&mockEvents{})
	typeText(s, "Tagalog")
	s.fields[fieldDate].SetValue("14/03/2026")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for an invalid date")
	}
	if s.errMsg != "Interview date must be YYYY-MM-DD." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestIntakeScreen_TabCyclesFocus(t *testing.T) {
	s := newTestScreen(&mockEvents{})
	for i := 0; i < len(s.fields)+1; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if s.focus != fieldLanguage {
		t.Errorf("focus = %d after a full cycle, want %d", s.focus, fieldLanguage)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != focusButton {
		t.Errorf("shift+tab focus = %d, want button", s.focus)
	}
}

func TestIntakeScreen_SubmitPushesSurvey(t *testing.T) {
	events := &mockEvents{}
	s := newTestScreen(events)
	typeText(s, "Tagalog")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "Ana")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.errMsg != "" {
		t.Fatalf("unexpected error: %s", s.errMsg)
	}

	var pushed *survey.SurveyScreen
	for _, msg := range drain(cmd) {
		if push, ok := msg.(router.PushScreenMsg); ok {
			pushed, _ = push.Screen.(*survey.SurveyScreen)
		}
	}
	if pushed == nil {
		t.Fatal("expected a PushScreenMsg with the survey screen")
	}
	if pushed.Status() != "Tagalog" {
		t.Errorf("survey status = %q, want Tagalog", pushed.Status())
	}

	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	ev := events.events[0]
	if ev.Action != session.ActionStarted || ev.Detail != "Tagalog" || ev.Phase != "survey" {
		t.Errorf("event = %+v", ev)
	}
}

func TestParseDate(t *testing.T) {
	if _, msg := parseDate(""); msg == "" {
		t.Error("expected a message for an empty date")
	}
	if _, msg := parseDate("2026-02-30"); msg == "" {
		t.Error("expected a message for an impossible date")
	}
	d, msg := parseDate("2026-03-14")
	if msg != "" {
		t.Fatalf("unexpected message %q", msg)
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 14 {
		t.Errorf("date = %v", d)
	}
}
