package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

// sets always come joined with their session, the date lives there
const setColumns = `s.id::text, s.user_id::text, s.workout_session_id::text, s.exercise_name, s.body_part,
	s.set_number, s.reps, s.weight_kg, COALESCE(s.rest_time_seconds, 0), COALESCE(s.notes, ''),
	ws.workout_date::text, s.created_at`

const setsFrom = ` FROM exercise_sets s INNER JOIN workout_sessions ws ON ws.id = s.workout_session_id`

func scanSet(row pgx.Row) (*workouts.ExerciseSet, error) {
	var s workouts.ExerciseSet
	if err := row.Scan(
		&s.ID, &s.UserID, &s.SessionID, &s.ExerciseName, &s.BodyPart,
		&s.SetNumber, &s.Reps, &s.WeightKg, &s.RestSeconds, &s.Notes,
		&s.Date, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) AddSets(ctx context.Context, sets []workouts.ExerciseSet) (_ []workouts.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sets", len(sets)))

	if len(sets) == 0 {
		return nil, nil
	}

	added := make([]workouts.ExerciseSet, 0, len(sets))
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		dates := map[string]string{}
		for _, set := range sets {
			date, ok := dates[set.SessionID]
			if !ok {
				if err := tx.QueryRow(
					ctx,
					`SELECT workout_date::text FROM workout_sessions WHERE id = $1 AND user_id = $2`,
					set.SessionID, set.UserID,
				).Scan(&date); err != nil {
					return fmt.Errorf("set of [%s]: %w", set.ExerciseName,
						notFoundOr("add sets", err, workouts.ErrSessionNotFound))
				}
				dates[set.SessionID] = date
			}

			if err := tx.QueryRow(
				ctx,
				`INSERT INTO exercise_sets
					(workout_session_id, user_id, exercise_name, body_part, set_number, reps, weight_kg, rest_time_seconds, notes)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id::text, created_at`,
				set.SessionID, set.UserID, set.ExerciseName, set.BodyPart, set.SetNumber,
				set.Reps, set.WeightKg, set.RestSeconds, set.Notes,
			).Scan(&set.ID, &set.CreatedAt); err != nil {
				if pkg.IsForeignKeyViolationError(err) {
					return fmt.Errorf("set of [%s]: %w", set.ExerciseName, workouts.ErrSessionNotFound)
				}
				return storeError("add sets", err)
			}
			set.Date = date
			added = append(added, set)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) GetSet(ctx context.Context, userID, id string) (_ *workouts.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	set, err := scanSet(s.db.QueryRow(
		ctx,
		`SELECT `+setColumns+setsFrom+` WHERE s.id = $1 AND s.user_id = $2`,
		id, userID,
	))
	if err != nil {
		return nil, notFoundOr("get set", err, workouts.ErrSetNotFound)
	}
	return set, nil
}

func setConditions(userID string, filter workouts.SetFilter) (string, []any) {
	conditions := []string{"s.user_id = $1"}
	args := []any{userID}
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.SessionID != "" {
		add("s.workout_session_id = $%d", filter.SessionID)
	}
	if filter.Date != "" {
		add("ws.workout_date = $%d", filter.Date)
	}
	if filter.From != "" {
		add("ws.workout_date >= $%d", filter.From)
	}
	if filter.To != "" {
		add("ws.workout_date <= $%d", filter.To)
	}
	if filter.ExerciseName != "" {
		add("s.exercise_name = $%d", filter.ExerciseName)
	}
	if filter.BodyPart != "" {
		add("s.body_part = $%d", filter.BodyPart)
	}
	return strings.Join(conditions, " AND "), args
}

func (s *Store) ListSets(ctx context.Context, userID string, filter workouts.SetFilter) (_ []workouts.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	where, args := setConditions(userID, filter)
	rows, err := s.db.Query(
		ctx,
		`SELECT `+setColumns+setsFrom+` WHERE `+where+`
			ORDER BY ws.workout_date, s.workout_session_id, s.set_number`,
		args...,
	)
	if err != nil {
		return nil, storeError("list sets", err)
	}
	defer rows.Close()

	var sets []workouts.ExerciseSet
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, storeError("list sets", err)
		}
		sets = append(sets, *set)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list sets", err)
	}
	return sets, nil
}

func (s *Store) UpdateSet(ctx context.Context, set workouts.ExerciseSet) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(
		ctx,
		`UPDATE exercise_sets SET reps = $3, weight_kg = $4, rest_time_seconds = $5, notes = $6, updated_at = NOW()
			WHERE id = $1 AND user_id = $2`,
		set.ID, set.UserID, set.Reps, set.WeightKg, set.RestSeconds, set.Notes,
	)
	if err != nil {
		return notFoundOr("update set", err, workouts.ErrSetNotFound)
	}
	if tag.RowsAffected() == 0 {
		return workouts.ErrSetNotFound
	}
	return nil
}

func (s *Store) DeleteSet(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(ctx, `DELETE FROM exercise_sets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return notFoundOr("delete set", err, workouts.ErrSetNotFound)
	}
	if tag.RowsAffected() == 0 {
		return workouts.ErrSetNotFound
	}
	return nil
}

func (s *Store) DeleteSets(ctx context.Context, userID string, ids []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.deleteMany")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(ids) == 0 {
		return nil
	}
	if _, err := s.db.Exec(
		ctx,
		`DELETE FROM exercise_sets WHERE user_id = $1 AND id = ANY($2::uuid[])`,
		userID, ids,
	); err != nil {
		return storeError("delete sets", err)
	}
	return nil
}
