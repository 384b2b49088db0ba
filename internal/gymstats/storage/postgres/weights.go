package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// SaveWeight upserts on (user_id, recorded_date): one entry per user and day.
func (s *Store) SaveWeight(ctx context.Context, entry workouts.WeightEntry) (_ *workouts.WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry.Date = workouts.NormalizeDate(entry.Date)
	if err := s.db.QueryRow(
		ctx,
		`INSERT INTO user_weights (user_id, recorded_date, weight_kg, body_fat_percentage, muscle_mass_kg, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, recorded_date) DO UPDATE SET
			weight_kg = EXCLUDED.weight_kg,
			body_fat_percentage = EXCLUDED.body_fat_percentage,
			muscle_mass_kg = EXCLUDED.muscle_mass_kg,
			notes = EXCLUDED.notes
		RETURNING id::text`,
		entry.UserID, entry.Date, entry.WeightKg, entry.BodyFatPercentage, entry.MuscleMassKg, entry.Notes,
	).Scan(&entry.ID); err != nil {
		return nil, storeError("save weight", err)
	}
	return &entry, nil
}

func (s *Store) ListWeights(ctx context.Context, userID string, filter workouts.DateFilter) (_ []workouts.WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	if filter.From != "" {
		args = append(args, filter.From)
		conditions = append(conditions, fmt.Sprintf("recorded_date >= $%d", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		conditions = append(conditions, fmt.Sprintf("recorded_date <= $%d", len(args)))
	}

	rows, err := s.db.Query(
		ctx,
		`SELECT id::text, user_id::text, recorded_date::text, weight_kg, body_fat_percentage, muscle_mass_kg, COALESCE(notes, '')
			FROM user_weights
			WHERE `+strings.Join(conditions, " AND ")+`
			ORDER BY recorded_date`,
		args...,
	)
	if err != nil {
		return nil, storeError("list weights", err)
	}
	defer rows.Close()

	var weights []workouts.WeightEntry
	for rows.Next() {
		var w workouts.WeightEntry
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.WeightKg, &w.BodyFatPercentage, &w.MuscleMassKg, &w.Notes); err != nil {
			return nil, storeError("list weights", err)
		}
		weights = append(weights, w)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list weights", err)
	}
	return weights, nil
}

func (s *Store) DeleteWeight(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := s.db.Exec(ctx, `DELETE FROM user_weights WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return notFoundOr("delete weight", err, workouts.ErrWeightNotFound)
	}
	if tag.RowsAffected() == 0 {
		return workouts.ErrWeightNotFound
	}
	return nil
}
