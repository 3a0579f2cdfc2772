// Package survey is the warm-up screen: background questions, examiner
// notes and the choice of initial working level.
package survey

import (
	"context"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/router"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/screens/round"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/ui/components"
	"github.com/abhisek/sppa/internal/ui/layout"
	"github.com/abhisek/sppa/internal/ui/theme"
)

// SurveyScreen shows the warm-up survey and starts the first round.
type SurveyScreen struct {
	env     *screen.Env
	sess    session.Session
	notes   textarea.Model
	editing bool
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)
var _ screen.StatusProvider = (*SurveyScreen)(nil)
var _ screen.InputCapturer = (*SurveyScreen)(nil)

// levelChosenMsg carries the examiner's choice from the menu.
type levelChosenMsg struct {
	Level catalog.Level
}

// New creates a SurveyScreen for a session in the survey phase.
func New(env *screen.Env, sess session.Session) *SurveyScreen {
	ta := textarea.New()
	ta.Placeholder = "Warm-up notes: work, interests, travel..."
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetValue(sess.Notes)

	var items []components.MenuItem
	for _, l := range catalog.Levels() {
		if !l.Selectable() {
			continue
		}
		level := l
		items = append(items, components.MenuItem{
			Label:  level.DisplayName(),
			Key:    strconv.Itoa(int(level)),
			Action: func() tea.Cmd { return func() tea.Msg { return levelChosenMsg{Level: level} } },
		})
	}

	return &SurveyScreen{
		env:   env,
		sess:  sess,
		notes: ta,
		menu:  components.NewMenu(items),
	}
}

func (s *SurveyScreen) Init() tea.Cmd {
	return nil
}

func (s *SurveyScreen) Title() string {
	return "Language Survey (Warm-Up)"
}

func (s *SurveyScreen) Status() string {
	return s.sess.Language
}

func (s *SurveyScreen) CapturingInput() bool {
	return s.editing
}

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Level"},
		{Key: "Enter", Description: "Start tasks"},
		{Key: "1-2", Description: "Start at level"},
		{Key: "N", Description: "Notes"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case levelChosenMsg:
		return s.startRound(msg.Level)

	case tea.KeyMsg:
		if s.editing {
			switch msg.String() {
			case "esc", "tab":
				s.editing = false
				s.notes.Blur()
				return s, nil
			}
			var cmd tea.Cmd
			s.notes, cmd = s.notes.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "n", "tab":
			s.editing = true
			return s, s.notes.Focus()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	if s.editing {
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd
	}
	return s, nil
}

// startRound records the notes, selects the level and hands over to the
// task round. The round becomes the only screen so Esc cannot abandon it.
func (s *SurveyScreen) startRound(level catalog.Level) (screen.Screen, tea.Cmd) {
	next, err := s.sess.SetNotes(s.notes.Value()).SelectLevel(level)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.sess = next

	journal := s.env.Journal
	return s, tea.Batch(
		func() tea.Msg {
			journal.Record(context.Background(), next, session.ActionLevelSelected, next.CurrentLevel.String())
			return nil
		},
		func() tea.Msg { return router.ResetScreenMsg{Screen: round.New(s.env, next)} },
	)
}

func (s *SurveyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.notes.SetWidth(cw - 4)

	var b strings.Builder
	b.WriteString(components.Banner(components.BannerInfo, catalog.SurveyIntro, cw))
	b.WriteString("\n")
	b.WriteString(components.Banner(components.BannerWarning, "Note on Sensitive Topics: "+catalog.SensitiveTopicsNote, cw))
	b.WriteString("\n\n")

	for _, q := range catalog.SurveyQuestions() {
		b.WriteString(theme.Body.Render("  • " + q))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	notesBorder := theme.Border
	if s.editing {
		notesBorder = theme.Primary
	}
	b.WriteString(components.Panel(s.notes.View(), cw-2, notesBorder))
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render("Select Initial Working Level"))
	b.WriteString("\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(components.Banner(components.BannerError, s.errMsg, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}
