package postgres

import (
	"context"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// RefreshProgress recomputes the exercise_progress row of one exercise from
// its sets, dropping the row once no set is left.
func (s *Store) RefreshProgress(ctx context.Context, userID, exerciseName string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.Exec(
		ctx,
		`WITH s AS (
			SELECT es.workout_session_id, es.reps, es.weight_kg, ws.workout_date
			FROM exercise_sets es INNER JOIN workout_sessions ws ON ws.id = es.workout_session_id
			WHERE es.user_id = $1 AND es.exercise_name = $2
		), agg AS (
			SELECT MAX(weight_kg) AS max_weight, MAX(reps) AS max_reps, SUM(reps * weight_kg) AS volume,
				COUNT(DISTINCT workout_session_id) AS sessions, MAX(workout_date) AS last_date
			FROM s HAVING COUNT(*) > 0
		)
		INSERT INTO exercise_progress
			(user_id, exercise_name, max_weight_kg, max_reps, total_volume_kg, total_sessions,
			last_performed_date, personal_best_date, updated_at)
		SELECT $1, $2, agg.max_weight, agg.max_reps, agg.volume, agg.sessions, agg.last_date,
			(SELECT MIN(workout_date) FROM s WHERE s.weight_kg = agg.max_weight), NOW()
		FROM agg
		ON CONFLICT (user_id, exercise_name) DO UPDATE SET
			max_weight_kg = EXCLUDED.max_weight_kg,
			max_reps = EXCLUDED.max_reps,
			total_volume_kg = EXCLUDED.total_volume_kg,
			total_sessions = EXCLUDED.total_sessions,
			last_performed_date = EXCLUDED.last_performed_date,
			personal_best_date = EXCLUDED.personal_best_date,
			updated_at = NOW()`,
		userID, exerciseName,
	); err != nil {
		return storeError("refresh progress", err)
	}

	if _, err := s.db.Exec(
		ctx,
		`DELETE FROM exercise_progress p
			WHERE p.user_id = $1 AND p.exercise_name = $2
			AND NOT EXISTS (SELECT 1 FROM exercise_sets es WHERE es.user_id = $1 AND es.exercise_name = $2)`,
		userID, exerciseName,
	); err != nil {
		return storeError("refresh progress", err)
	}
	return nil
}

func (s *Store) ListProgress(ctx context.Context, userID string) (_ []workouts.ExerciseProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`SELECT exercise_name, max_weight_kg, max_reps, total_volume_kg, total_sessions,
				COALESCE(last_performed_date::text, ''), COALESCE(personal_best_date::text, '')
			FROM exercise_progress WHERE user_id = $1
			ORDER BY LOWER(exercise_name)`,
		userID,
	)
	if err != nil {
		return nil, storeError("list progress", err)
	}
	defer rows.Close()

	var progress []workouts.ExerciseProgress
	for rows.Next() {
		var p workouts.ExerciseProgress
		if err := rows.Scan(
			&p.ExerciseName, &p.MaxWeightKg, &p.MaxReps, &p.TotalVolumeKg, &p.TotalSessions,
			&p.LastPerformedDate, &p.PersonalBestDate,
		); err != nil {
			return nil, storeError("list progress", err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list progress", err)
	}
	return progress, nil
}
