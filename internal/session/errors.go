package session

import (
	"errors"
	"fmt"
)

var (
	ErrMissingLanguage   = errors.New("target language is required")
	ErrInvalidLevel      = errors.New("level must be 1 or 2")
	ErrLevelDecrease     = errors.New("level cannot be lower than the current level")
	ErrTaskIndex         = errors.New("task index out of range")
	ErrInvalidRating     = errors.New("invalid rating")
	ErrAlreadyRated      = errors.New("task already rated")
	ErrRoundIncomplete   = errors.New("all tasks in the round must be rated")
	ErrDegenerateRound   = errors.New("every task in the round was rated Total Breakdown")
	ErrInvalidOutcome    = errors.New("outcome is not a final level")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotFinalized      = errors.New("session has no final level")
)

// DegenerateMessage is the guidance shown when a round is rated Total
// Breakdown on every task.
const DegenerateMessage = "Retest the learner with different level-appropriate questions or rate the learner at Level 0."

func transitionError(op string, from Phase) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, from)
}
