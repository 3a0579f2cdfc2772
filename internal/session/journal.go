package session

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/sppa/internal/store"
)

// Event actions written to the session event log.
const (
	ActionStarted       = "started"
	ActionLevelSelected = "level-selected"
	ActionRoundSubmit   = "round-submitted"
	ActionPromoted      = "promoted"
	ActionDegenerate    = "degenerate-round"
	ActionHalted        = "halted"
	ActionRetest        = "retest"
	ActionFinalized     = "finalized"
	ActionFloor         = "floor-accepted"
	ActionOverridden    = "overridden"
	ActionReset         = "reset"
)

// EventAppender is the part of store.EventRepo the journal needs.
type EventAppender interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Journal writes state machine activity to the event log. A nil Journal
// or one without a repo discards events.
type Journal struct {
	repo EventAppender
}

// NewJournal returns a Journal backed by repo.
func NewJournal(repo EventAppender) *Journal {
	return &Journal{repo: repo}
}

// Record appends an event for s. Failures are reported on stderr and never
// interrupt the interview.
func (j *Journal) Record(ctx context.Context, s Session, action, detail string) {
	if j == nil || j.repo == nil {
		return
	}
	if err := j.repo.AppendSessionEvent(ctx, EventFor(s, action, detail)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log session event %q: %v\n", action, err)
	}
}

// RecordTransition logs the effect of a submitted round.
func (j *Journal) RecordTransition(ctx context.Context, s Session, tr Transition) {
	j.Record(ctx, s, ActionRoundSubmit, fmt.Sprintf("round %d", s.RoundNumber))
	switch tr.Kind {
	case TransitionPromoted:
		j.Record(ctx, s, ActionPromoted, fmt.Sprintf("%s -> %s", tr.FromLevel, tr.ToLevel))
	case TransitionHalted:
		j.Record(ctx, s, ActionHalted, tr.Result.Reason)
	case TransitionFinalized:
		j.Record(ctx, s, ActionFinalized, tr.Result.Reason)
	}
}

// EventFor builds the event payload for s.
func EventFor(s Session, action, detail string) store.SessionEventData {
	return store.SessionEventData{
		SessionID: s.ID,
		Action:    action,
		Phase:     s.Phase.String(),
		Level:     int(s.CurrentLevel),
		Outcome:   string(s.LastResult.Outcome),
		Detail:    detail,
	}
}
