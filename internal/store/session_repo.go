package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var sqlite = entsql.Dialect(dialect.SQLite)

var sessionColumns = []string{
	"id", "uuid", "language", "learner_name", "learner_id", "interview_date",
	"initial_level", "current_level", "final_level", "final_reasoning", "created_at",
}

// sessionRepo implements SessionRepo with ent's SQL builders.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) SaveSession(ctx context.Context, data SessionData) (id int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	q, args := sqlite.Insert(sessionsTable).
		Columns(sessionColumns[1:]...).
		Values(
			data.UUID, data.Language, data.LearnerName, data.LearnerID, data.InterviewDate,
			data.InitialLevel, data.CurrentLevel, data.FinalLevel, data.FinalReasoning, createdAt,
		).
		Query()
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}

	if len(data.Tasks) > 0 {
		ins := sqlite.Insert(taskResponsesTable).
			Columns("session_id", "position", "task_name", "task_level", "rating")
		for _, t := range data.Tasks {
			ins.Values(id, t.Position, t.Name, t.Level, t.Rating)
		}
		q, args := ins.Query()
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return 0, fmt.Errorf("insert task responses: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit session: %w", err)
	}
	return id, nil
}

func (r *sessionRepo) GetSession(ctx context.Context, id int64) (*SessionData, error) {
	return r.getSession(ctx, entsql.EQ("id", id))
}

func (r *sessionRepo) GetSessionByUUID(ctx context.Context, uuid string) (*SessionData, error) {
	return r.getSession(ctx, entsql.EQ("uuid", uuid))
}

func (r *sessionRepo) getSession(ctx context.Context, where *entsql.Predicate) (*SessionData, error) {
	q, args := sqlite.Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(where).
		Limit(1).
		Query()

	data, err := scanSession(r.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	tasks, err := r.tasks(ctx, data.ID)
	if err != nil {
		return nil, err
	}
	data.Tasks = tasks
	return &data, nil
}

func (r *sessionRepo) tasks(ctx context.Context, sessionID int64) ([]TaskResponseData, error) {
	q, args := sqlite.Select("position", "task_name", "task_level", "rating").
		From(entsql.Table(taskResponsesTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query task responses: %w", err)
	}
	defer rows.Close()

	var tasks []TaskResponseData
	for rows.Next() {
		var t TaskResponseData
		if err := rows.Scan(&t.Position, &t.Name, &t.Level, &t.Rating); err != nil {
			return nil, fmt.Errorf("scan task response: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *sessionRepo) ListSessions(ctx context.Context, opts QueryOpts) ([]SessionData, error) {
	sel := sqlite.Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("id"))
	if opts.After > 0 {
		sel.Where(entsql.GT("id", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	q, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionData
	for rows.Next() {
		data, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (r *sessionRepo) DeleteSession(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{taskAnnotationsTable, taskResponsesTable} {
		q, args := sqlite.Delete(table).Where(entsql.EQ("session_id", id)).Query()
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	q, args := sqlite.Delete(sessionsTable).Where(entsql.EQ("id", id)).Query()
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrNotFound
		return err
	}
	return tx.Commit()
}

func (r *sessionRepo) SaveAnnotations(ctx context.Context, sessionID int64, annotations []AnnotationData) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	q, args := sqlite.Delete(taskAnnotationsTable).Where(entsql.EQ("session_id", sessionID)).Query()
	if _, err = tx.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("clear annotations: %w", err)
	}

	now := time.Now().UTC()
	ins := sqlite.Insert(taskAnnotationsTable).
		Columns("session_id", "position", "topic", "prompt", "comment", "updated_at")
	n := 0
	for _, a := range annotations {
		if a.Empty() {
			continue
		}
		ins.Values(sessionID, a.Position, a.Topic, a.Prompt, a.Comment, now)
		n++
	}
	if n > 0 {
		q, args := ins.Query()
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert annotations: %w", err)
		}
	}

	return tx.Commit()
}

func (r *sessionRepo) Annotations(ctx context.Context, sessionID int64) ([]AnnotationData, error) {
	q, args := sqlite.Select("position", "topic", "prompt", "comment").
		From(entsql.Table(taskAnnotationsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("position").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query annotations: %w", err)
	}
	defer rows.Close()

	var out []AnnotationData
	for rows.Next() {
		var a AnnotationData
		if err := rows.Scan(&a.Position, &a.Topic, &a.Prompt, &a.Comment); err != nil {
			return nil, fmt.Errorf("scan annotation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionData, error) {
	var d SessionData
	err := row.Scan(
		&d.ID, &d.UUID, &d.Language, &d.LearnerName, &d.LearnerID, &d.InterviewDate,
		&d.InitialLevel, &d.CurrentLevel, &d.FinalLevel, &d.FinalReasoning, &d.CreatedAt,
	)
	return d, err
}
