package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/2beens/gymtracker/pkg"
)

// RequiredTables must exist for the remote store to work.
var RequiredTables = []string{
	"users",
	"workout_sessions",
	"exercise_sets",
	"exercises",
	"exercise_categories",
	"user_weights",
}

type HealthReport struct {
	IsHealthy     bool     `json:"isHealthy"`
	MissingTables []string `json:"missingTables"`
	Errors        []string `json:"errors"`
}

// CheckHealth probes every required table; undefined ones are reported as
// missing, any other failure as an error.
func (s *Store) CheckHealth(ctx context.Context) HealthReport {
	report := HealthReport{
		MissingTables: []string{},
		Errors:        []string{},
	}
	for _, table := range RequiredTables {
		rows, err := s.db.Query(ctx, `SELECT id FROM `+pgx.Identifier{table}.Sanitize()+` LIMIT 1`)
		if err == nil {
			rows.Close()
			err = rows.Err()
		}
		switch {
		case err == nil:
		case pkg.IsUndefinedTableError(err):
			report.MissingTables = append(report.MissingTables, table)
		default:
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", table, err))
		}
	}
	report.IsHealthy = len(report.MissingTables) == 0 && len(report.Errors) == 0
	return report
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
