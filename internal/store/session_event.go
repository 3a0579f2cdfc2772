package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action", "phase", "level", "outcome", "detail",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := sqlite.Insert(sessionEventsTable).
		Columns(sessionEventColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.Action,
			data.Phase, data.Level, data.Outcome, data.Detail,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, sessionID string, opts QueryOpts) ([]SessionEvent, error) {
	sel := sqlite.Select(sessionEventColumns...).
		From(entsql.Table(sessionEventsTable)).
		OrderBy("sequence")
	if sessionID != "" {
		sel.Where(entsql.EQ("session_id", sessionID))
	}
	applyEventOpts(sel, opts)

	q, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Action,
			&e.Phase, &e.Level, &e.Outcome, &e.Detail,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
