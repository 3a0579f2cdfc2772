package round

import (
	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/prompts"
)

// suggestionMsg delivers a drafted prompt for the task at Position in the
// session history, requested during round Round.
type suggestionMsg struct {
	Position   int
	Round      int
	Suggestion *prompts.Suggestion
	Err        error
}

// savedMsg reports the outcome of persisting a finalized session.
type savedMsg struct {
	ID  int64
	Err error
}

// choiceMsg is emitted by the recovery menus.
type choiceMsg struct {
	Choice choice
	Level  catalog.Level
	Final  string
}

type choice int

const (
	choiceRetest choice = iota
	choiceRetestPick
	choiceFloor
	choiceOverridePick
	choiceOverrideLevel
	choiceRestart
)
