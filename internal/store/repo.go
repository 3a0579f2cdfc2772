package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence (events) or id (sessions) > After
	Before int64     // sequence (events) or id (sessions) < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SessionData is the persisted shape of a finalized interview.
type SessionData struct {
	ID             int64 // assigned on save
	UUID           string
	Language       string
	LearnerName    string
	LearnerID      string
	InterviewDate  time.Time
	InitialLevel   int
	CurrentLevel   int
	FinalLevel     string
	FinalReasoning string
	CreatedAt      time.Time
	Tasks          []TaskResponseData
}

// TaskResponseData is one rated task. Position is the zero-based index
// into the session's task history.
type TaskResponseData struct {
	Position int
	Name     string
	Level    int
	Rating   int
}

// AnnotationData holds the examiner's free-text notes for one task.
type AnnotationData struct {
	Position int
	Topic    string
	Prompt   string
	Comment  string
}

// Empty reports whether the annotation carries no text.
func (a AnnotationData) Empty() bool {
	return a.Topic == "" && a.Prompt == "" && a.Comment == ""
}

// SessionRepo stores finalized sessions and their annotations.
type SessionRepo interface {
	// SaveSession stores a session with its ordered tasks and returns
	// the new row ID.
	SaveSession(ctx context.Context, data SessionData) (int64, error)

	// GetSession returns the session with the given ID, or ErrNotFound.
	GetSession(ctx context.Context, id int64) (*SessionData, error)

	// GetSessionByUUID returns the session with the given UUID, or
	// ErrNotFound.
	GetSessionByUUID(ctx context.Context, uuid string) (*SessionData, error)

	// ListSessions returns sessions newest first, without tasks.
	ListSessions(ctx context.Context, opts QueryOpts) ([]SessionData, error)

	// DeleteSession removes a session, its tasks and annotations.
	DeleteSession(ctx context.Context, id int64) error

	// SaveAnnotations replaces the annotations of a session. Empty
	// annotations are dropped.
	SaveAnnotations(ctx context.Context, sessionID int64, annotations []AnnotationData) error

	// Annotations returns a session's annotations ordered by position.
	Annotations(ctx context.Context, sessionID int64) ([]AnnotationData, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string

	// SessionID and Task tie a suggestion request to the interview and
	// task it drafted for. Both may be empty.
	SessionID string
	Task      string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SessionEventData captures a state machine event of an interview.
type SessionEventData struct {
	SessionID string
	Action    string
	Phase     string
	Level     int
	Outcome   string
	Detail    string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records an interview state machine event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event by ID, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMEventsForSession returns the LLM events of one interview in
	// sequence order.
	LLMEventsForSession(ctx context.Context, sessionID string) ([]LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// QuerySessionEvents returns session events in sequence order. An
	// empty sessionID matches all sessions.
	QuerySessionEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]SessionEvent, error)
}
