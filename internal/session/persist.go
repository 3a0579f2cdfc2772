package session

import (
	"context"
	"fmt"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/scoring"
	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/tasklist"
)

// Persister stores finalized sessions.
type Persister interface {
	SaveSession(ctx context.Context, data store.SessionData) (int64, error)
}

// Save persists a finalized session and returns its storage ID.
func Save(ctx context.Context, p Persister, s Session) (int64, error) {
	if !s.Finalized() {
		return 0, ErrNotFinalized
	}
	id, err := p.SaveSession(ctx, s.Data())
	if err != nil {
		return 0, fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Data maps the session to its storage shape. Tasks keep their order;
// positions are the zero-based indices into TasksCompleted.
func (s Session) Data() store.SessionData {
	tasks := make([]store.TaskResponseData, len(s.TasksCompleted))
	for i, t := range s.TasksCompleted {
		tasks[i] = store.TaskResponseData{
			Position: i,
			Name:     t.Name,
			Level:    int(t.Level),
			Rating:   t.Rating.Rank(),
		}
	}
	return store.SessionData{
		UUID:           s.ID,
		Language:       s.Language,
		InterviewDate:  s.InterviewDate,
		LearnerName:    s.LearnerName,
		LearnerID:      s.LearnerID,
		InitialLevel:   int(s.InitialLevel),
		CurrentLevel:   int(s.CurrentLevel),
		FinalLevel:     string(s.FinalLevel),
		FinalReasoning: s.FinalReasoning,
		Tasks:          tasks,
	}
}

// FromData rebuilds a finalized session from storage.
func FromData(d store.SessionData) (Session, error) {
	tasks := make([]tasklist.AdministeredTask, len(d.Tasks))
	for i, t := range d.Tasks {
		level := catalog.Level(t.Level)
		if !level.Valid() {
			return Session{}, fmt.Errorf("task %d: invalid level %d", i, t.Level)
		}
		rating := tasklist.Rating(t.Rating)
		if !rating.Valid() {
			return Session{}, fmt.Errorf("task %d: invalid rating %d", i, t.Rating)
		}
		tasks[i] = tasklist.AdministeredTask{
			Name:   t.Name,
			Level:  level,
			Rating: rating,
			Status: tasklist.StatusDone,
		}
	}

	return Session{
		ID:             d.UUID,
		Language:       d.Language,
		InterviewDate:  d.InterviewDate,
		LearnerName:    d.LearnerName,
		LearnerID:      d.LearnerID,
		InitialLevel:   catalog.Level(d.InitialLevel),
		CurrentLevel:   catalog.Level(d.CurrentLevel),
		TasksCompleted: tasks,
		FinalLevel:     scoring.Outcome(d.FinalLevel),
		FinalReasoning: d.FinalReasoning,
		Phase:          PhaseSummary,
	}, nil
}
