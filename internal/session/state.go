// Package session drives an interview from intake to a final level.
//
// A Session is a value. Every transition returns an updated copy and leaves
// the receiver untouched, so the presentation layer can hold the current
// session in its model and replace it wholesale.
package session

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/scoring"
	"github.com/abhisek/sppa/internal/tasklist"
)

// Phase is the step of the interview protocol a session is in.
type Phase int

const (
	PhaseIntake    Phase = iota // Collecting language and interview date
	PhaseSurvey                 // Warm-up questions and level choice
	PhaseTaskRound              // Administering and rating a round of tasks
	PhaseHalted                 // INVALID outcome, waiting on the examiner
	PhaseSummary                // Final level recorded
)

var phaseNames = [...]string{"intake", "survey", "task-round", "halted", "summary"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Session is the record of one interview.
type Session struct {
	// ID identifies the interview in the event log and in storage.
	ID string

	Language      string
	InterviewDate time.Time
	LearnerName   string
	LearnerID     string

	// Notes are the examiner's warm-up observations.
	Notes string

	// InitialLevel is the level chosen after the warm-up survey.
	InitialLevel catalog.Level

	// CurrentLevel advances on promotion and never decreases.
	CurrentLevel catalog.Level

	// Round holds the tasks of the round being administered.
	Round []tasklist.AdministeredTask

	// RoundNumber counts rounds started, starting at 1.
	RoundNumber int

	// TasksCompleted accumulates every submitted task across rounds.
	// Indices into it are stable.
	TasksCompleted []tasklist.AdministeredTask

	FinalLevel     scoring.Outcome
	FinalReasoning string

	// LastResult is the most recent scorer result, including promotions
	// and INVALID.
	LastResult scoring.Result

	Phase Phase
}

// New starts a session in the intake phase. The interview date defaults to
// the calendar day of now.
func New(now time.Time) Session {
	return Session{
		ID:            uuid.NewString(),
		InterviewDate: dateOf(now),
		Phase:         PhaseIntake,
	}
}

// Finalized reports whether a final level has been recorded.
func (s Session) Finalized() bool {
	return s.Phase == PhaseSummary
}

// RoundDegenerate reports whether the current round is fully rated and
// every task was rated Breakdown.
func (s Session) RoundDegenerate() bool {
	return s.Phase == PhaseTaskRound &&
		tasklist.AllDone(s.Round) &&
		tasklist.AllBreakdown(s.Round)
}

// RoundComplete reports whether every task in the current round is rated.
func (s Session) RoundComplete() bool {
	return tasklist.AllDone(s.Round)
}

func (s Session) clone() Session {
	s.Round = slices.Clone(s.Round)
	s.TasksCompleted = slices.Clone(s.TasksCompleted)
	return s
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
