package stats

import (
	"sort"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

// ProgressPoint is one day of a single exercise.
type ProgressPoint struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"maxWeight"`
	TotalReps int     `json:"totalReps"`
	Volume    float64 `json:"volume"`
}

// ExerciseProgress returns one point per day the exercise was done, oldest
// first.
func ExerciseProgress(records []workouts.Exercise, name string) []ProgressPoint {
	byDate := map[string]*ProgressPoint{}
	for _, rec := range records {
		if rec.Name != name {
			continue
		}
		date := workouts.NormalizeDate(rec.Date)
		p, ok := byDate[date]
		if !ok {
			p = &ProgressPoint{Date: date}
			byDate[date] = p
		}
		if w := rec.MaxWeight(); w > p.MaxWeight {
			p.MaxWeight = w
		}
		p.TotalReps += rec.TotalReps()
		p.Volume += rec.Volume()
	}

	res := make([]ProgressPoint, 0, len(byDate))
	for _, p := range byDate {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Date < res[j].Date
	})
	return res
}

// UniqueExerciseNames keeps the order of first appearance.
func UniqueExerciseNames(records []workouts.Exercise) []string {
	seen := map[string]bool{}
	var names []string
	for _, rec := range records {
		if rec.Name == "" || seen[rec.Name] {
			continue
		}
		seen[rec.Name] = true
		names = append(names, rec.Name)
	}
	return names
}

const (
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendStable    = "Stable"
)

// ExerciseTrend compares the first and the last day of an exercise.
type ExerciseTrend struct {
	ExerciseName      string  `json:"exerciseName"`
	FirstDate         string  `json:"firstDate"`
	LastDate          string  `json:"lastDate"`
	Sessions          int     `json:"sessions"`
	StartWeight       float64 `json:"startWeight"`
	CurrentWeight     float64 `json:"currentWeight"`
	WeightIncrease    float64 `json:"weightIncrease"`
	WeightIncreasePct float64 `json:"weightIncreasePct"`
	StartVolume       float64 `json:"startVolume"`
	CurrentVolume     float64 `json:"currentVolume"`
	VolumeIncrease    float64 `json:"volumeIncrease"`
	AvgWeight         float64 `json:"avgWeight"`
	AvgVolume         float64 `json:"avgVolume"`
	Trend             string  `json:"trend"`
}

// Trends has one row per exercise with at least minSessions days.
func Trends(records []workouts.Exercise, minSessions int) []ExerciseTrend {
	var res []ExerciseTrend
	for _, name := range UniqueExerciseNames(records) {
		points := ExerciseProgress(records, name)
		if len(points) == 0 || len(points) < minSessions {
			continue
		}

		first, last := points[0], points[len(points)-1]
		var sumWeight, sumVolume float64
		for _, p := range points {
			sumWeight += p.MaxWeight
			sumVolume += p.Volume
		}

		t := ExerciseTrend{
			ExerciseName:   name,
			FirstDate:      first.Date,
			LastDate:       last.Date,
			Sessions:       len(points),
			StartWeight:    first.MaxWeight,
			CurrentWeight:  last.MaxWeight,
			WeightIncrease: last.MaxWeight - first.MaxWeight,
			StartVolume:    first.Volume,
			CurrentVolume:  last.Volume,
			VolumeIncrease: last.Volume - first.Volume,
			AvgWeight:      SafeDiv(sumWeight, float64(len(points))),
			AvgVolume:      SafeDiv(sumVolume, float64(len(points))),
			Trend:          TrendStable,
		}
		t.WeightIncreasePct = SafeDiv(t.WeightIncrease, first.MaxWeight) * 100
		switch {
		case t.WeightIncrease > 0:
			t.Trend = TrendImproving
		case t.WeightIncrease < 0:
			t.Trend = TrendDeclining
		}
		res = append(res, t)
	}
	return res
}
