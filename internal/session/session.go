package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/scoring"
	"github.com/abhisek/sppa/internal/tasklist"
)

// FloorReason is recorded when the examiner accepts Level 0 after a
// degenerate round.
const FloorReason = "Examiner rated the learner at Level 0 after every task in the round was rated Total Breakdown."

// TransitionKind classifies the effect of a submitted round.
type TransitionKind int

const (
	TransitionPromoted  TransitionKind = iota + 1 // New round at a higher level
	TransitionHalted                              // INVALID, examiner must intervene
	TransitionFinalized                           // Final level recorded
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionPromoted:
		return "promoted"
	case TransitionHalted:
		return "halted"
	case TransitionFinalized:
		return "finalized"
	default:
		return "none"
	}
}

// Transition describes what SubmitRound did.
type Transition struct {
	Kind      TransitionKind
	Result    scoring.Result
	FromLevel catalog.Level
	ToLevel   catalog.Level
}

// Begin records the intake details and moves to the survey. A zero date
// keeps the default set by New.
func (s Session) Begin(language string, date time.Time) (Session, error) {
	if s.Phase != PhaseIntake {
		return s, transitionError("begin", s.Phase)
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return s, ErrMissingLanguage
	}

	next := s.clone()
	next.Language = language
	if !date.IsZero() {
		next.InterviewDate = dateOf(date)
	}
	next.Phase = PhaseSurvey
	return next, nil
}

// SetLearner records the optional learner name and identifier. Allowed
// until a final level is recorded.
func (s Session) SetLearner(name, id string) (Session, error) {
	if s.Phase == PhaseSummary {
		return s, transitionError("set learner", s.Phase)
	}
	next := s.clone()
	next.LearnerName = strings.TrimSpace(name)
	next.LearnerID = strings.TrimSpace(id)
	return next, nil
}

// SetNotes records the examiner's warm-up notes.
func (s Session) SetNotes(notes string) Session {
	next := s.clone()
	next.Notes = strings.TrimSpace(notes)
	return next
}

// SelectLevel chooses the working level after the survey and generates
// the first round.
func (s Session) SelectLevel(level catalog.Level) (Session, error) {
	if s.Phase != PhaseSurvey {
		return s, transitionError("select level", s.Phase)
	}
	if !level.Selectable() {
		return s, fmt.Errorf("%w: got %d", ErrInvalidLevel, int(level))
	}

	tasks, err := tasklist.Generate(level)
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.InitialLevel = level
	next.CurrentLevel = level
	next.Round = tasks
	next.RoundNumber = 1
	next.Phase = PhaseTaskRound
	return next, nil
}

// Rate assigns a rating to a pending task in the current round. A task is
// rated exactly once.
func (s Session) Rate(index int, rating tasklist.Rating) (Session, error) {
	if s.Phase != PhaseTaskRound {
		return s, transitionError("rate", s.Phase)
	}
	if index < 0 || index >= len(s.Round) {
		return s, fmt.Errorf("%w: %d of %d", ErrTaskIndex, index, len(s.Round))
	}
	if !rating.Valid() {
		return s, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if s.Round[index].Done() {
		return s, fmt.Errorf("%w: %s", ErrAlreadyRated, s.Round[index].Name)
	}

	next := s.clone()
	next.Round[index].Rating = rating
	next.Round[index].Status = tasklist.StatusDone
	return next, nil
}

// SubmitRound scores the cumulative history once every task in the round
// is rated. A round rated Breakdown on every task is rejected with
// ErrDegenerateRound before the scorer runs, and the session is returned
// unchanged.
func (s Session) SubmitRound() (Session, Transition, error) {
	if s.Phase != PhaseTaskRound {
		return s, Transition{}, transitionError("submit round", s.Phase)
	}
	if !tasklist.AllDone(s.Round) {
		return s, Transition{}, ErrRoundIncomplete
	}
	if tasklist.AllBreakdown(s.Round) {
		return s, Transition{}, ErrDegenerateRound
	}

	next := s.clone()
	next.TasksCompleted = append(next.TasksCompleted, next.Round...)
	next.Round = nil

	result, err := scoring.Score(next.CurrentLevel, next.TasksCompleted)
	if err != nil {
		return s, Transition{}, fmt.Errorf("score round: %w", err)
	}
	next.LastResult = result

	tr := Transition{Result: result, FromLevel: s.CurrentLevel, ToLevel: s.CurrentLevel}

	if level, ok := result.Outcome.PromotionLevel(); ok {
		if level <= next.CurrentLevel {
			return s, Transition{}, fmt.Errorf("%w: promotion from %s to %s", ErrInvalidTransition, next.CurrentLevel, level)
		}
		tasks, err := tasklist.Generate(level)
		if err != nil {
			return s, Transition{}, err
		}
		next.CurrentLevel = level
		next.Round = tasks
		next.RoundNumber++
		tr.Kind = TransitionPromoted
		tr.ToLevel = level
		return next, tr, nil
	}

	if result.Outcome == scoring.Invalid {
		next.Phase = PhaseHalted
		tr.Kind = TransitionHalted
		return next, tr, nil
	}

	next.FinalLevel = result.Outcome
	next.FinalReasoning = result.Reason
	next.Phase = PhaseSummary
	tr.Kind = TransitionFinalized
	return next, tr, nil
}

// Retest starts a fresh round at level, discarding the unsubmitted round.
// It recovers from a halted session or replaces a degenerate round. Level
// may not be lower than the current level; a lower level needs Reset.
func (s Session) Retest(level catalog.Level) (Session, error) {
	if s.Phase != PhaseHalted && !s.RoundDegenerate() {
		return s, transitionError("retest", s.Phase)
	}
	if !level.Valid() {
		return s, fmt.Errorf("%w: %d", tasklist.ErrInvalidLevel, int(level))
	}
	if level < s.CurrentLevel {
		return s, fmt.Errorf("%w: %s < %s", ErrLevelDecrease, level, s.CurrentLevel)
	}

	tasks, err := tasklist.Generate(level)
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.CurrentLevel = level
	next.Round = tasks
	next.RoundNumber++
	next.LastResult = scoring.Result{}
	next.Phase = PhaseTaskRound
	return next, nil
}

// AcceptFloor records Level 0 for a degenerate round. The round's tasks
// are kept in the history.
func (s Session) AcceptFloor() (Session, error) {
	if !s.RoundDegenerate() {
		return s, transitionError("accept floor", s.Phase)
	}

	next := s.clone()
	next.TasksCompleted = append(next.TasksCompleted, next.Round...)
	next.Round = nil
	next.FinalLevel = scoring.Level0
	next.FinalReasoning = FloorReason
	next.LastResult = scoring.Result{Outcome: scoring.Level0, Reason: FloorReason}
	next.Phase = PhaseSummary
	return next, nil
}

// Override records a level chosen by the examiner for a halted session.
func (s Session) Override(outcome scoring.Outcome, reason string) (Session, error) {
	if s.Phase != PhaseHalted {
		return s, transitionError("override", s.Phase)
	}
	if !outcome.IsFinalLevel() {
		return s, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}

	reasoning := "Examiner override after an invalid result."
	if r := strings.TrimSpace(reason); r != "" {
		reasoning = "Examiner override: " + r
	}

	next := s.clone()
	next.FinalLevel = outcome
	next.FinalReasoning = reasoning
	next.Phase = PhaseSummary
	return next, nil
}

// Reset discards the session and starts a new one.
func (s Session) Reset(now time.Time) Session {
	return New(now)
}
