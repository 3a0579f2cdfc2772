// Package round is the task phase screen: the examiner rates each task,
// calculates the score and handles promotion, degenerate rounds and
// INVALID results.
package round

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/llm"
	"github.com/abhisek/sppa/internal/prompts"
	"github.com/abhisek/sppa/internal/router"
	"github.com/abhisek/sppa/internal/scoring"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/screens/summary"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/abhisek/sppa/internal/ui/components"
	"github.com/abhisek/sppa/internal/ui/layout"
)

type mode int

const (
	modeRating mode = iota
	modeChoice
	modeOverrideReason
	modeConfirmRestart
	modeSaving
)

// RoundScreen administers rounds until a final level is recorded.
type RoundScreen struct {
	env  *screen.Env
	sess session.Session

	mode      mode
	cursor    int
	showInstr bool
	menu      components.Menu
	reason    components.Field
	override  scoring.Outcome

	// drafts holds prompt suggestions keyed by position in the session
	// history, so they line up with annotations after the round is
	// submitted.
	drafts  map[int]store.AnnotationData
	pending map[int]bool
	spinner spinner.Model

	banner     string
	bannerKind components.BannerKind
}

var _ screen.Screen = (*RoundScreen)(nil)
var _ screen.KeyHintProvider = (*RoundScreen)(nil)
var _ screen.StatusProvider = (*RoundScreen)(nil)
var _ screen.InputCapturer = (*RoundScreen)(nil)

// New creates a RoundScreen for a session in the task round phase.
func New(env *screen.Env, sess session.Session) *RoundScreen {
	reason := components.NewField("Reason for override (optional)", "", 200)
	return &RoundScreen{
		env:       env,
		sess:      sess,
		showInstr: true,
		reason:    reason,
		drafts:    make(map[int]store.AnnotationData),
		pending:   make(map[int]bool),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *RoundScreen) Init() tea.Cmd {
	return nil
}

func (s *RoundScreen) Title() string {
	return fmt.Sprintf("Task Phase (Testing at %s)", s.sess.CurrentLevel)
}

func (s *RoundScreen) Status() string {
	return fmt.Sprintf("%s · Round %d", s.sess.Language, s.sess.RoundNumber)
}

func (s *RoundScreen) CapturingInput() bool {
	return s.mode == modeOverrideReason
}

// Session returns the session as the screen currently holds it.
func (s *RoundScreen) Session() session.Session {
	return s.sess
}

func (s *RoundScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeChoice:
		hints := []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
		if s.menu.Keyed() {
			hints = append(hints, layout.KeyHint{Key: "[key]", Description: "Pick directly"})
		}
		return hints
	case modeOverrideReason:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Record level"},
			{Key: "Esc", Description: "Back"},
		}
	case modeConfirmRestart:
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all and restart"},
			{Key: "N", Description: "Keep going"},
		}
	case modeSaving:
		return nil
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Task"},
		{Key: "1-4", Description: "Rate"},
		{Key: "I", Description: "Instructions"},
	}
	if s.env.Prompts != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Draft prompt"})
	}
	if s.sess.RoundComplete() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Calculate score"})
	}
	return append(hints, layout.KeyHint{Key: "X", Description: "Restart"})
}

func (s *RoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionMsg:
		return s.handleSuggestion(msg)
	case savedMsg:
		return s.handleSaved(msg)
	case choiceMsg:
		return s.handleChoice(msg)
	case spinner.TickMsg:
		if len(s.pending) == 0 {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeOverrideReason {
		var cmd tea.Cmd
		s.reason, cmd = s.reason.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *RoundScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeSaving:
		return s, nil

	case modeConfirmRestart:
		switch key {
		case "y":
			return s, s.restart()
		case "n", "esc":
			s.mode = modeRating
		}
		return s, nil

	case modeChoice:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case modeOverrideReason:
		switch key {
		case "enter":
			return s.applyOverride()
		case "esc":
			s.reason.Blur()
			s.openHaltedMenu()
			return s, nil
		}
		var cmd tea.Cmd
		s.reason, cmd = s.reason.Update(msg)
		return s, cmd
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.sess.Round)-1 {
			s.cursor++
		}
	case "i":
		s.showInstr = !s.showInstr
	case "p":
		return s, s.suggest(s.cursor)
	case "x":
		s.mode = modeConfirmRestart
	default:
		if s.calculate().Triggers(key) {
			return s.submit()
		}
		if r, ok := components.RatingForKey(key); ok {
			s.rate(r)
		}
	}
	return s, nil
}

func (s *RoundScreen) rate(r tasklist.Rating) {
	next, err := s.sess.Rate(s.cursor, r)
	if err != nil {
		s.setBanner(components.BannerWarning, userMessage(err))
		return
	}
	s.sess = next
	s.banner = ""

	// Move to the next unrated task.
	for i := 1; i <= len(next.Round); i++ {
		j := (s.cursor + i) % len(next.Round)
		if !next.Round[j].Done() {
			s.cursor = j
			return
		}
	}
}

// submit runs Calculate Score.
// calculate is the Calculate Score button, live once every task is rated.
func (s *RoundScreen) calculate() components.Button {
	btn := components.Button{Label: "Calculate Score", Key: "c", Active: s.sess.RoundComplete()}
	if left := len(s.sess.Round) - tasklist.CountDone(s.sess.Round); left > 0 {
		btn.Blocked = fmt.Sprintf("%d left to rate", left)
	}
	return btn
}

func (s *RoundScreen) submit() (screen.Screen, tea.Cmd) {
	if !s.sess.RoundComplete() {
		left := len(s.sess.Round) - tasklist.CountDone(s.sess.Round)
		s.setBanner(components.BannerWarning, fmt.Sprintf("Rate every task before calculating the score (%d left).", left))
		return s, nil
	}

	next, tr, err := s.sess.SubmitRound()
	if errors.Is(err, session.ErrDegenerateRound) {
		s.setBanner(components.BannerError, session.DegenerateMessage)
		s.openDegenerateMenu()
		return s, s.record(s.sess, session.ActionDegenerate, fmt.Sprintf("round %d", s.sess.RoundNumber))
	}
	if err != nil {
		s.setBanner(components.BannerError, err.Error())
		return s, nil
	}

	s.sess = next
	journal := s.env.Journal
	logCmd := func() tea.Msg {
		journal.RecordTransition(context.Background(), next, tr)
		return nil
	}

	switch tr.Kind {
	case session.TransitionPromoted:
		s.cursor = 0
		s.setBanner(components.BannerInfo, fmt.Sprintf("Performance warrants moving to %s. Presenting new tasks.", tr.ToLevel))
		return s, logCmd
	case session.TransitionHalted:
		s.setBanner(components.BannerError, tr.Result.Reason)
		s.openHaltedMenu()
		return s, logCmd
	default:
		return s, tea.Batch(logCmd, s.save())
	}
}

func (s *RoundScreen) handleChoice(msg choiceMsg) (screen.Screen, tea.Cmd) {
	switch msg.Choice {
	case choiceRetestPick:
		s.openRetestMenu()
		return s, nil

	case choiceRetest:
		next, err := s.sess.Retest(msg.Level)
		if err != nil {
			s.setBanner(components.BannerError, userMessage(err))
			return s, nil
		}
		s.sess = next
		s.dropRoundDrafts()
		s.mode = modeRating
		s.cursor = 0
		s.setBanner(components.BannerInfo, fmt.Sprintf("Retesting at %s with new tasks.", msg.Level))
		return s, s.record(next, session.ActionRetest, msg.Level.String())

	case choiceFloor:
		next, err := s.sess.AcceptFloor()
		if err != nil {
			s.setBanner(components.BannerError, userMessage(err))
			return s, nil
		}
		s.sess = next
		return s, tea.Batch(s.record(next, session.ActionFloor, next.FinalReasoning), s.save())

	case choiceOverridePick:
		s.openOverrideMenu()
		return s, nil

	case choiceOverrideLevel:
		s.override = scoring.Outcome(msg.Final)
		s.mode = modeOverrideReason
		return s, s.reason.Focus()

	case choiceRestart:
		s.mode = modeConfirmRestart
		return s, nil
	}
	return s, nil
}

func (s *RoundScreen) applyOverride() (screen.Screen, tea.Cmd) {
	next, err := s.sess.Override(s.override, s.reason.Value())
	if err != nil {
		s.setBanner(components.BannerError, userMessage(err))
		return s, nil
	}
	s.reason.Blur()
	s.sess = next
	return s, tea.Batch(
		s.record(next, session.ActionOverridden, fmt.Sprintf("%s: %s", next.FinalLevel, next.FinalReasoning)),
		s.save(),
	)
}

// save persists the finalized session, then the summary takes over.
func (s *RoundScreen) save() tea.Cmd {
	s.mode = modeSaving
	repo := s.env.Sessions
	sess := s.sess
	return func() tea.Msg {
		if repo == nil {
			return savedMsg{}
		}
		id, err := session.Save(context.Background(), repo, sess)
		return savedMsg{ID: id, Err: err}
	}
}

func (s *RoundScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	warning := ""
	if msg.Err != nil {
		warning = fmt.Sprintf("The session could not be saved: %v", msg.Err)
	}
	next := summary.New(s.env, s.sess, msg.ID, s.drafts, warning)
	return s, func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

func (s *RoundScreen) restart() tea.Cmd {
	return tea.Sequence(
		s.record(s.sess, session.ActionReset, ""),
		screen.Restart,
	)
}

// suggest asks the LLM for a topic and prompt for round task i.
func (s *RoundScreen) suggest(i int) tea.Cmd {
	if s.env.Prompts == nil {
		s.setBanner(components.BannerWarning, "Prompt drafting is unavailable: no LLM provider is configured.")
		return nil
	}
	if i < 0 || i >= len(s.sess.Round) {
		return nil
	}
	pos := len(s.sess.TasksCompleted) + i
	if s.pending[pos] {
		return nil
	}
	s.pending[pos] = true

	in := prompts.Input{
		Task:        s.sess.Round[i].Name,
		Level:       s.sess.Round[i].Level,
		Language:    s.sess.Language,
		SessionID:   s.sess.ID,
		Notes:       s.sess.Notes,
		PriorTopics: s.priorTopics(),
	}
	svc := s.env.Prompts
	round := s.sess.RoundNumber
	call := func() tea.Msg {
		sug, err := svc.Suggest(context.Background(), in)
		return suggestionMsg{Position: pos, Round: round, Suggestion: sug, Err: err}
	}
	if len(s.pending) == 1 {
		return tea.Batch(call, s.spinner.Tick)
	}
	return call
}

func (s *RoundScreen) handleSuggestion(msg suggestionMsg) (screen.Screen, tea.Cmd) {
	delete(s.pending, msg.Position)
	if msg.Err != nil {
		s.setBanner(components.BannerWarning, "Could not draft a prompt. "+llm.Hint(msg.Err))
		return s, nil
	}
	// A retest discarded the task this draft was for.
	if msg.Position >= len(s.sess.TasksCompleted) && msg.Round != s.sess.RoundNumber {
		return s, nil
	}
	s.drafts[msg.Position] = store.AnnotationData{
		Position: msg.Position,
		Topic:    msg.Suggestion.Topic,
		Prompt:   msg.Suggestion.Prompt,
	}
	return s, nil
}

func (s *RoundScreen) priorTopics() []string {
	var topics []string
	for pos := 0; pos < len(s.sess.TasksCompleted)+len(s.sess.Round); pos++ {
		if d, ok := s.drafts[pos]; ok && d.Topic != "" {
			topics = append(topics, d.Topic)
		}
	}
	return topics
}

// dropRoundDrafts forgets drafts for tasks that were never submitted.
func (s *RoundScreen) dropRoundDrafts() {
	for pos := range s.drafts {
		if pos >= len(s.sess.TasksCompleted) {
			delete(s.drafts, pos)
		}
	}
}

func (s *RoundScreen) record(sess session.Session, action, detail string) tea.Cmd {
	journal := s.env.Journal
	return func() tea.Msg {
		journal.Record(context.Background(), sess, action, detail)
		return nil
	}
}

func (s *RoundScreen) setBanner(kind components.BannerKind, text string) {
	s.bannerKind = kind
	s.banner = text
}

func (s *RoundScreen) openDegenerateMenu() {
	level := s.sess.CurrentLevel
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retest at " + level.String() + " with different questions", Key: "r", Action: emit(choiceMsg{Choice: choiceRetest, Level: level})},
		{Label: "Rate the learner at Level 0", Key: "0", Action: emit(choiceMsg{Choice: choiceFloor})},
		{Label: "Clear all and restart", Key: "x", Action: emit(choiceMsg{Choice: choiceRestart})},
	})
	s.mode = modeChoice
}

func (s *RoundScreen) openHaltedMenu() {
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retest the learner", Key: "r", Action: emit(choiceMsg{Choice: choiceRetestPick})},
		{Label: "Record the examiner's level", Key: "o", Action: emit(choiceMsg{Choice: choiceOverridePick})},
		{Label: "Clear all and restart", Key: "x", Action: emit(choiceMsg{Choice: choiceRestart})},
	})
	s.mode = modeChoice
}

func (s *RoundScreen) openRetestMenu() {
	var items []components.MenuItem
	for _, l := range catalog.Levels() {
		item := components.MenuItem{
			Label:  l.DisplayName(),
			Key:    strconv.Itoa(int(l)),
			Action: emit(choiceMsg{Choice: choiceRetest, Level: l}),
		}
		if l < s.sess.CurrentLevel {
			item.Disabled = true
			item.Note = "below the working level"
		}
		items = append(items, item)
	}
	s.menu = components.NewMenu(items)
	s.mode = modeChoice
}

func (s *RoundScreen) openOverrideMenu() {
	var items []components.MenuItem
	for _, o := range scoring.FinalOutcomes() {
		items = append(items, components.MenuItem{
			Label:  "Level " + string(o),
			Action: emit(choiceMsg{Choice: choiceOverrideLevel, Final: string(o)}),
		})
	}
	s.menu = components.NewMenu(items)
	s.mode = modeChoice
}

func emit(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}

// userMessage turns state machine errors into examiner-facing text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, session.ErrAlreadyRated):
		return "This task is already rated. Ratings cannot be changed."
	case errors.Is(err, session.ErrLevelDecrease):
		return "The working level cannot go down. Restart the interview to test a lower level."
	default:
		return err.Error()
	}
}
