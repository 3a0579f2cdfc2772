// Package summary shows the final level, the reasoning and every rated
// task, and lets the examiner annotate tasks and export the report.
package summary

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sppa/internal/llm"
	"github.com/abhisek/sppa/internal/prompts"
	"github.com/abhisek/sppa/internal/report"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/ui/components"
	"github.com/abhisek/sppa/internal/ui/layout"
	"github.com/abhisek/sppa/internal/ui/theme"
)

// Annotation fields editable from the summary.
type field int

const (
	fieldTopic field = iota
	fieldPrompt
	fieldComment
)

var fieldLabels = map[field]string{
	fieldTopic:   "Topic",
	fieldPrompt:  "Task Prompt",
	fieldComment: "Comment on Learner Response",
}

// annotationsSavedMsg reports the outcome of persisting annotations.
type annotationsSavedMsg struct {
	Err error
}

// exportedMsg reports a written report file.
type exportedMsg struct {
	Path string
	Err  error
}

// suggestionMsg delivers a drafted topic and prompt for a task.
type suggestionMsg struct {
	Position   int
	Suggestion *prompts.Suggestion
	Err        error
}

// SummaryScreen displays the final assessment.
type SummaryScreen struct {
	env  *screen.Env
	sess session.Session
	id   int64 // storage ID; 0 when the session was not saved

	annotations []store.AnnotationData
	cursor      int
	editing     bool
	editField   field
	input       components.Field

	pending map[int]bool
	spinner spinner.Model

	banner     string
	bannerKind components.BannerKind
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)
var _ screen.InputCapturer = (*SummaryScreen)(nil)

// New creates a SummaryScreen for a finalized session. drafts are prompt
// suggestions made during the rounds, keyed by task position. warning,
// when set, is shown until the examiner acts.
func New(env *screen.Env, sess session.Session, id int64, drafts map[int]store.AnnotationData, warning string) *SummaryScreen {
	anns := make([]store.AnnotationData, len(sess.TasksCompleted))
	for i := range anns {
		anns[i] = store.AnnotationData{Position: i}
		if d, ok := drafts[i]; ok {
			anns[i].Topic = d.Topic
			anns[i].Prompt = d.Prompt
			anns[i].Comment = d.Comment
		}
	}

	s := &SummaryScreen{
		env:         env,
		sess:        sess,
		id:          id,
		annotations: anns,
		pending:     make(map[int]bool),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if warning != "" {
		s.setBanner(components.BannerWarning, warning)
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	for _, a := range s.annotations {
		if !a.Empty() {
			return s.persist()
		}
	}
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Final Proficiency Assessment Summary"
}

func (s *SummaryScreen) Status() string {
	return fmt.Sprintf("%s · %s", s.sess.Language, s.sess.FinalLevel)
}

func (s *SummaryScreen) CapturingInput() bool {
	return s.editing
}

// Annotations returns a copy of the current annotations.
func (s *SummaryScreen) Annotations() []store.AnnotationData {
	out := make([]store.AnnotationData, len(s.annotations))
	copy(out, s.annotations)
	return out
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Task"},
		{Key: "T/P/C", Description: "Edit"},
	}
	if s.env.Prompts != nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Suggest"})
	}
	return append(hints,
		layout.KeyHint{Key: "E", Description: "Export"},
		layout.KeyHint{Key: "J", Description: "JSON"},
		layout.KeyHint{Key: "N", Description: "New interview"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case annotationsSavedMsg:
		if msg.Err != nil {
			s.setBanner(components.BannerWarning, fmt.Sprintf("Annotations were not saved: %v", msg.Err))
		}
		return s, nil

	case exportedMsg:
		if msg.Err != nil {
			s.setBanner(components.BannerError, fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			s.setBanner(components.BannerSuccess, "Report written to "+msg.Path)
		}
		return s, nil

	case suggestionMsg:
		delete(s.pending, msg.Position)
		if msg.Err != nil {
			s.setBanner(components.BannerWarning, "Could not draft a prompt. "+llm.Hint(msg.Err))
			return s, nil
		}
		a := &s.annotations[msg.Position]
		a.Topic = msg.Suggestion.Topic
		a.Prompt = msg.Suggestion.Prompt
		return s, s.persist()

	case spinner.TickMsg:
		if len(s.pending) == 0 {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.editing {
			return s.handleEditKey(msg)
		}
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SummaryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.annotations)-1 {
			s.cursor++
		}
	case "t":
		return s, s.startEdit(fieldTopic)
	case "p":
		return s, s.startEdit(fieldPrompt)
	case "c":
		return s, s.startEdit(fieldComment)
	case "s":
		return s, s.suggest()
	case "e":
		return s, s.export(s.env.ReportFormat)
	case "J":
		return s, s.export("json")
	case "n":
		return s, s.newInterview()
	}
	return s, nil
}

func (s *SummaryScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.editing = false
		s.input.Blur()
		s.setField(s.cursor, s.editField, s.input.Value())
		return s, s.persist()
	case "esc":
		s.editing = false
		s.input.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) startEdit(f field) tea.Cmd {
	if len(s.annotations) == 0 {
		return nil
	}
	s.editing = true
	s.editField = f
	s.input = components.NewField(fieldLabels[f], "", 0)
	s.input.SetValue(s.getField(s.cursor, f))
	return s.input.Focus()
}

func (s *SummaryScreen) getField(i int, f field) string {
	a := s.annotations[i]
	switch f {
	case fieldTopic:
		return a.Topic
	case fieldPrompt:
		return a.Prompt
	default:
		return a.Comment
	}
}

func (s *SummaryScreen) setField(i int, f field, v string) {
	a := &s.annotations[i]
	switch f {
	case fieldTopic:
		a.Topic = v
	case fieldPrompt:
		a.Prompt = v
	default:
		a.Comment = v
	}
}

// persist writes the annotations when the session was saved.
func (s *SummaryScreen) persist() tea.Cmd {
	if s.env.Sessions == nil || s.id == 0 {
		return nil
	}
	repo, id, anns := s.env.Sessions, s.id, s.Annotations()
	return func() tea.Msg {
		return annotationsSavedMsg{Err: repo.SaveAnnotations(context.Background(), id, anns)}
	}
}

func (s *SummaryScreen) export(format string) tea.Cmd {
	data := s.sess.Data()
	data.ID = s.id
	doc := report.Build(data, s.Annotations())
	dir := s.env.ReportDir
	if format == "" {
		format = "markdown"
	}
	return func() tea.Msg {
		path, err := report.WriteFile(dir, format, doc)
		return exportedMsg{Path: path, Err: err}
	}
}

func (s *SummaryScreen) suggest() tea.Cmd {
	if s.env.Prompts == nil {
		s.setBanner(components.BannerWarning, "Prompt drafting is unavailable: no LLM provider is configured.")
		return nil
	}
	if len(s.annotations) == 0 || s.pending[s.cursor] {
		return nil
	}
	pos := s.cursor
	s.pending[pos] = true

	t := s.sess.TasksCompleted[pos]
	var prior []string
	for i, a := range s.annotations {
		if i != pos && a.Topic != "" {
			prior = append(prior, a.Topic)
		}
	}
	in := prompts.Input{
		Task:        t.Name,
		Level:       t.Level,
		Language:    s.sess.Language,
		SessionID:   s.sess.ID,
		Notes:       s.sess.Notes,
		PriorTopics: prior,
	}
	svc := s.env.Prompts
	call := func() tea.Msg {
		sug, err := svc.Suggest(context.Background(), in)
		return suggestionMsg{Position: pos, Suggestion: sug, Err: err}
	}
	if len(s.pending) == 1 {
		return tea.Batch(call, s.spinner.Tick)
	}
	return call
}

func (s *SummaryScreen) newInterview() tea.Cmd {
	journal := s.env.Journal
	sess := s.sess
	return tea.Sequence(
		func() tea.Msg {
			journal.Record(context.Background(), sess, session.ActionReset, "new interview")
			return nil
		},
		screen.Restart,
	)
}

func (s *SummaryScreen) setBanner(kind components.BannerKind, text string) {
	s.bannerKind = kind
	s.banner = text
}

func (s *SummaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	section := theme.Title

	var top strings.Builder
	top.WriteString(section.Render("Session Details"))
	top.WriteString("\n")
	top.WriteString(label.Render("Interview Date: ") + theme.Body.Render(s.sess.InterviewDate.Format("January 02, 2006")))
	top.WriteString("\n")
	top.WriteString(label.Render("Language: ") + theme.Body.Render(s.sess.Language))
	if s.sess.LearnerName != "" {
		top.WriteString("\n")
		top.WriteString(label.Render("Learner: ") + theme.Body.Render(s.sess.LearnerName))
	}
	top.WriteString("\n\n")

	top.WriteString(section.Render("Assessment Result"))
	top.WriteString("\n")
	top.WriteString(label.Render("Suggested Proficiency Level: ") +
		lipgloss.NewStyle().Bold(true).Foreground(theme.Success).Render(string(s.sess.FinalLevel)))
	top.WriteString("\n")
	top.WriteString(theme.Hint.Width(cw).Render("Reasoning: " + s.sess.FinalReasoning))
	top.WriteString("\n\n")
	top.WriteString(section.Render("Task Performance Breakdown"))
	top.WriteString("\n")

	var bottom strings.Builder
	if s.editing {
		bottom.WriteString(s.input.View())
		bottom.WriteString("\n")
	}
	if s.banner != "" {
		bottom.WriteString(components.Banner(s.bannerKind, s.banner, cw))
		bottom.WriteString("\n")
	}

	avail := height - lipgloss.Height(top.String()) - lipgloss.Height(bottom.String())
	blocks := make([]string, len(s.sess.TasksCompleted))
	for i := range blocks {
		blocks[i] = s.renderTask(i, cw)
	}
	body := strings.Join(components.Window(blocks, s.cursor, avail), "")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(top.String()+body+bottom.String()))
}

func (s *SummaryScreen) renderTask(i, cw int) string {
	t := s.sess.TasksCompleted[i]

	marker := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.cursor {
		marker = "▸ "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	var b strings.Builder
	b.WriteString(style.Render(fmt.Sprintf("%sTask %d: %s (%s)", marker, i+1, t.Name, t.Level)))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.RatingColor(t.Rating.Rank())).Render(t.Rating.Label()))
	b.WriteString("\n")

	dim := theme.Hint.Width(cw - 4)
	for _, f := range []field{fieldTopic, fieldPrompt, fieldComment} {
		v := s.getField(i, f)
		if v == "" {
			v = "-"
		}
		b.WriteString(dim.Render(fmt.Sprintf("    %s: %s", fieldLabels[f], v)))
		b.WriteString("\n")
	}
	if s.pending[i] {
		b.WriteString("    " + s.spinner.View() + theme.Hint.Render(" Drafting a prompt..."))
		b.WriteString("\n")
	}
	return b.String()
}
