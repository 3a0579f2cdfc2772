package selfupdate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
)

// ErrInterviewOpen is returned when an interview was started recently and
// never saved. Replacing the binary under a running interview loses it.
var ErrInterviewOpen = errors.New("an interview is still in progress")

// openWindow bounds how far back the guard looks for started interviews.
const openWindow = 12 * time.Hour

// Guard looks for interviews that are journalled but not yet saved.
type Guard struct {
	Events   EventSource
	Sessions SessionSource
	now      func() time.Time
}

// EventSource is the part of store.EventRepo the guard reads.
type EventSource interface {
	QuerySessionEvents(ctx context.Context, sessionID string, opts store.QueryOpts) ([]store.SessionEvent, error)
}

// SessionSource is the part of store.SessionRepo the guard reads.
type SessionSource interface {
	GetSessionByUUID(ctx context.Context, uuid string) (*store.SessionData, error)
}

// Check returns ErrInterviewOpen naming the first unsaved interview whose
// last journal entry is not a reset.
func (g *Guard) Check(ctx context.Context) error {
	if g == nil || g.Events == nil || g.Sessions == nil {
		return nil
	}
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	events, err := g.Events.QuerySessionEvents(ctx, "", store.QueryOpts{From: now().UTC().Add(-openWindow)})
	if err != nil {
		return fmt.Errorf("read interview journal: %w", err)
	}

	last := make(map[string]store.SessionEvent)
	var order []string
	for _, e := range events {
		if _, seen := last[e.SessionID]; !seen {
			order = append(order, e.SessionID)
		}
		last[e.SessionID] = e
	}

	for _, id := range order {
		if last[id].Action == session.ActionReset {
			continue
		}
		_, err := g.Sessions.GetSessionByUUID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			e := last[id]
			return fmt.Errorf("%w: %s (last %s at %s)", ErrInterviewOpen, id, e.Action, e.Timestamp.Local().Format("15:04"))
		}
		if err != nil {
			return fmt.Errorf("look up interview %s: %w", id, err)
		}
	}
	return nil
}
