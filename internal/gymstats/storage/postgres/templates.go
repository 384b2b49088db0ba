package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/2beens/gymtracker/internal/gymstats/schedule"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// ListTemplates serves the built-in week until one has been saved.
func (s *Store) ListTemplates(ctx context.Context) (_ []workouts.DayTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(
		ctx,
		`SELECT day, day_number, focus, warm_up, exercises, cool_down
			FROM workout_templates ORDER BY day_number`,
	)
	if err != nil {
		return nil, storeError("list templates", err)
	}
	defer rows.Close()

	var templates []workouts.DayTemplate
	for rows.Next() {
		var t workouts.DayTemplate
		if err := rows.Scan(&t.Day, &t.DayNumber, &t.Focus, &t.WarmUp, &t.Exercises, &t.CoolDown); err != nil {
			return nil, storeError("list templates", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list templates", err)
	}

	if len(templates) == 0 {
		return schedule.DefaultWeek(), nil
	}
	return templates, nil
}

func (s *Store) SaveTemplates(ctx context.Context, templates []workouts.DayTemplate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.templates.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, t := range templates {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO workout_templates (day_number, day, focus, warm_up, exercises, cool_down)
					VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (day_number) DO UPDATE SET
					day = EXCLUDED.day, focus = EXCLUDED.focus, warm_up = EXCLUDED.warm_up,
					exercises = EXCLUDED.exercises, cool_down = EXCLUDED.cool_down`,
				t.DayNumber, t.Day, t.Focus, t.WarmUp, t.Exercises, t.CoolDown,
			); err != nil {
				return storeError("save templates", err)
			}
		}
		return nil
	})
}

func (s *Store) ListCatalog(ctx context.Context, bodyPart string) (_ []workouts.CatalogExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `SELECT e.name, e.body_part, COALESCE(c.name, ''), e.difficulty_level,
			COALESCE(array_to_string(e.equipment_needed, ', '), '')
		FROM exercises e LEFT JOIN exercise_categories c ON c.id = e.category_id`
	var args []any
	if bodyPart != "" {
		query += ` WHERE e.body_part = $1`
		args = append(args, bodyPart)
	}
	query += ` ORDER BY e.name`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list catalog", err)
	}
	defer rows.Close()

	var exercises []workouts.CatalogExercise
	for rows.Next() {
		var e workouts.CatalogExercise
		if err := rows.Scan(&e.Name, &e.BodyPart, &e.Category, &e.DifficultyLevel, &e.Equipment); err != nil {
			return nil, storeError("list catalog", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list catalog", err)
	}
	return exercises, nil
}
