// Package intake is the first interview screen: language, date and
// optional learner details.
package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/router"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/screens/survey"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/ui/components"
	"github.com/abhisek/sppa/internal/ui/layout"
	"github.com/abhisek/sppa/internal/ui/theme"
)

const (
	fieldLanguage = iota
	fieldDate
	fieldName
	fieldID
	focusButton
)

// IntakeScreen collects the session details.
type IntakeScreen struct {
	env    *screen.Env
	fields []components.Field
	focus  int
	errMsg string
}

var _ screen.Screen = (*IntakeScreen)(nil)
var _ screen.KeyHintProvider = (*IntakeScreen)(nil)

// New creates an IntakeScreen with the date prefilled to today.
func New(env *screen.Env) *IntakeScreen {
	lang := components.NewField("Language Being Assessed", "e.g. Tagalog", 64)
	lang.Required = true
	date := components.NewField("Interview Date (YYYY-MM-DD)", time.DateOnly, 10)
	date.Required = true
	date.SetValue(env.Clock().Format(time.DateOnly))

	return &IntakeScreen{
		env: env,
		fields: []components.Field{
			lang,
			date,
			components.NewField("Learner Name (optional)", "", 80),
			components.NewField("Learner ID (optional)", "", 40),
		},
	}
}

func (s *IntakeScreen) Init() tea.Cmd {
	return s.fields[fieldLanguage].Focus()
}

func (s *IntakeScreen) Title() string {
	return "Session Information"
}

func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Begin session"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			return s.submit()
		}
	}

	if s.focus < len(s.fields) {
		var cmd tea.Cmd
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *IntakeScreen) moveFocus(delta int) tea.Cmd {
	if s.focus < len(s.fields) {
		s.fields[s.focus].Blur()
	}
	n := len(s.fields) + 1
	s.focus = (s.focus + delta + n) % n
	if s.focus < len(s.fields) {
		return s.fields[s.focus].Focus()
	}
	return nil
}

// submit validates the form, begins the session and moves to the survey.
func (s *IntakeScreen) submit() (screen.Screen, tea.Cmd) {
	s.errMsg = ""

	date, problem := parseDate(s.fields[fieldDate].Value())
	if problem != "" {
		s.errMsg = problem
		return s, nil
	}

	sess, err := session.New(s.env.Clock()).Begin(s.fields[fieldLanguage].Value(), date)
	if err != nil {
		if errors.Is(err, session.ErrMissingLanguage) {
			s.errMsg = "Enter the language being assessed."
		} else {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	sess, err = sess.SetLearner(s.fields[fieldName].Value(), s.fields[fieldID].Value())
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	journal := s.env.Journal
	started := sess
	return s, tea.Batch(
		func() tea.Msg {
			journal.Record(context.Background(), started, session.ActionStarted, started.Language)
			return nil
		},
		func() tea.Msg { return router.PushScreenMsg{Screen: survey.New(s.env, started)} },
	)
}

// parseDate returns the date or a message for the examiner.
func parseDate(v string) (time.Time, string) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, "Enter the interview date."
	}
	d, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return time.Time{}, "Interview date must be YYYY-MM-DD."
	}
	return d, ""
}

func (s *IntakeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Speaking Proficiency Placement Assessment"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Enter the session information to begin."))
	b.WriteString("\n\n")

	for _, f := range s.fields {
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}

	btn := components.Button{Label: "Begin Session", Active: s.focus == focusButton}
	b.WriteString(btn.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Banner(components.BannerError, s.errMsg, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Panel(b.String(), cw, theme.Primary))
}
