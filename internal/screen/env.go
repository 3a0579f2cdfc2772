package screen

import (
	"context"
	"time"

	"github.com/abhisek/sppa/internal/prompts"
	"github.com/abhisek/sppa/internal/session"
	"github.com/abhisek/sppa/internal/store"
)

// Suggester drafts task prompts. *prompts.Service implements it.
type Suggester interface {
	Suggest(ctx context.Context, in prompts.Input) (*prompts.Suggestion, error)
}

// Env carries the collaborators shared by the interview screens. Any of
// Sessions and Prompts may be nil; the screens degrade accordingly.
type Env struct {
	Journal  *session.Journal
	Sessions store.SessionRepo
	Prompts  Suggester

	ReportDir    string
	ReportFormat string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Clock returns the current time from Now.
func (e *Env) Clock() time.Time {
	if e == nil || e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
