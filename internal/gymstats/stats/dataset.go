package stats

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

// Source is the read side of the workouts service.
type Source interface {
	Exercises(ctx context.Context, userID string, filter workouts.SetFilter) ([]workouts.Exercise, error)
	ListWeights(ctx context.Context, userID string, filter workouts.DateFilter) ([]workouts.WeightEntry, error)
}

// Dataset is everything the dashboard views of one request are built from.
type Dataset struct {
	UserID   string
	Range    TimeRange
	BodyPart string
	Now      time.Time

	// All is every record of the user, Filtered the ones in range and
	// body part.
	All      []workouts.Exercise
	Filtered []workouts.Exercise
	Weights  []workouts.WeightEntry
}

// Load reads the records of a user. Storage failures are logged and leave
// the affected part empty.
func Load(ctx context.Context, source Source, userID string, r TimeRange, bodyPart string, now time.Time) *Dataset {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.load")
	defer span.End()

	ds := &Dataset{
		UserID:   userID,
		Range:    r,
		BodyPart: bodyPart,
		Now:      now,
	}

	all, err := source.Exercises(ctx, userID, workouts.SetFilter{})
	if err != nil {
		log.Errorf("stats: load exercises of %s: %s", userID, err)
		all = nil
	}
	weights, err := source.ListWeights(ctx, userID, workouts.DateFilter{})
	if err != nil {
		log.Errorf("stats: load weights of %s: %s", userID, err)
		weights = nil
	}

	ds.All = all
	ds.Filtered = FilterByBodyPart(FilterByRange(all, r, now), bodyPart)
	ds.Weights = weights
	return ds
}

func (ds *Dataset) Summary() Summary {
	return Summarize(ds.Filtered, ds.Weights)
}

func (ds *Dataset) BodyParts() Rollup {
	return BodyPartRollup(ds.Filtered).NonEmpty()
}

func (ds *Dataset) HeatMap() []HeatCell {
	return HeatMap(BodyPartRollup(ds.Filtered))
}

// Daily is the fixed 7 day bar chart.
func (ds *Dataset) Daily() []DayPoint {
	return DailySeries(ds.Filtered, ds.Now, 7)
}

// Timeline spans 7, 30 or 90 days depending on the range and ignores the
// body part filter.
func (ds *Dataset) Timeline() []DayPoint {
	return Timeline(ds.All, ds.Weights, ds.Now, ds.Range.TimelineDays())
}

func (ds *Dataset) Weekly() []WeekSummary {
	return WeeklyRollup(ds.Filtered)
}

func (ds *Dataset) ExerciseProgress(name string) []ProgressPoint {
	return ExerciseProgress(ds.Filtered, name)
}

func (ds *Dataset) ExerciseNames() []string {
	return UniqueExerciseNames(ds.Filtered)
}

// SessionsPerWeek spreads a count over the timeline window.
func (ds *Dataset) SessionsPerWeek(count int) float64 {
	return SafeDiv(float64(count), float64(ds.Range.TimelineDays())/7)
}
