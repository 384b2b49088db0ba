package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const sessionColumns = `id::text, user_id::text, workout_date::text, COALESCE(session_name, ''),
	start_time, end_time, COALESCE(duration_minutes, 0), total_sets, total_reps, total_volume_kg,
	COALESCE(notes, ''), is_completed, created_at, updated_at`

func scanSession(row pgx.Row) (*workouts.Session, error) {
	var s workouts.Session
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.Name,
		&s.StartTime, &s.EndTime, &s.DurationMinutes, &s.TotalSets, &s.TotalReps, &s.TotalVolumeKg,
		&s.Notes, &s.IsCompleted, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) CreateSession(ctx context.Context, session workouts.Session) (_ *workouts.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session.Date = workouts.NormalizeDate(session.Date)
	if err := s.db.QueryRow(
		ctx,
		`INSERT INTO workout_sessions (user_id, workout_date, session_name, start_time, notes)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at, updated_at`,
		session.UserID, session.Date, session.Name, session.StartTime, session.Notes,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return nil, storeError("create session", err)
	}

	span.SetAttributes(attribute.String("session.id", session.ID))
	return &session, nil
}

func (s *Store) GetSession(ctx context.Context, userID, id string) (_ *workouts.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := scanSession(s.db.QueryRow(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		return nil, notFoundOr("get session", err, workouts.ErrSessionNotFound)
	}
	return session, nil
}

func (s *Store) ListSessions(ctx context.Context, userID string, filter workouts.DateFilter) (_ []workouts.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	if filter.From != "" {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("workout_date >= $%d", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("workout_date <= $%d", len(args)))
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions
			WHERE `+strings.Join(conditions, " AND ")+`
			ORDER BY workout_date, created_at`,
		args...,
	)
	if err != nil {
		return nil, storeError("list sessions", err)
	}
	defer rows.Close()

	var sessions []workouts.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, storeError("list sessions", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list sessions", err)
	}
	return sessions, nil
}

func (s *Store) UpdateSession(ctx context.Context, session workouts.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", session.ID))

	tag, err := s.db.Exec(
		ctx,
		`UPDATE workout_sessions SET
			session_name = $3, start_time = $4, end_time = $5, duration_minutes = $6,
			total_sets = $7, total_reps = $8, total_volume_kg = $9,
			notes = $10, is_completed = $11, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		session.ID, session.UserID,
		session.Name, session.StartTime, session.EndTime, session.DurationMinutes,
		session.TotalSets, session.TotalReps, session.TotalVolumeKg,
		session.Notes, session.IsCompleted,
	)
	if err != nil {
		return notFoundOr("update session", err, workouts.ErrSessionNotFound)
	}
	if tag.RowsAffected() == 0 {
		return workouts.ErrSessionNotFound
	}
	return nil
}

// DeleteSessionAndSets does not rely on the ON DELETE CASCADE of the schema,
// the sets go first in the same transaction.
func (s *Store) DeleteSessionAndSets(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	return s.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(
			ctx,
			`DELETE FROM exercise_sets WHERE workout_session_id = $1 AND user_id = $2`,
			id, userID,
		); err != nil {
			return notFoundOr("delete session sets", err, workouts.ErrSessionNotFound)
		}

		tag, err := tx.Exec(
			ctx,
			`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`,
			id, userID,
		)
		if err != nil {
			return notFoundOr("delete session", err, workouts.ErrSessionNotFound)
		}
		if tag.RowsAffected() == 0 {
			return workouts.ErrSessionNotFound
		}
		return nil
	})
}
