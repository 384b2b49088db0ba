package stats

import (
	"sort"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

// Summary is the overview card of the dashboard.
type Summary struct {
	TotalWorkouts   int     `json:"totalWorkouts"`
	TotalExercises  int     `json:"totalExercises"`
	BodyPartsWorked int     `json:"bodyPartsWorked"`
	TotalVolume     float64 `json:"totalVolume"`
	LatestWeight    float64 `json:"latestWeight"`
	EarliestWeight  float64 `json:"earliestWeight"`
	WeightChange    float64 `json:"weightChange"`
}

// Summarize counts workouts as distinct days with records.
func Summarize(records []workouts.Exercise, weights []workouts.WeightEntry) Summary {
	days := map[string]bool{}
	parts := map[string]bool{}
	s := Summary{TotalExercises: len(records)}
	for _, rec := range records {
		days[workouts.NormalizeDate(rec.Date)] = true
		parts[strings.ToLower(rec.BodyPart)] = true
		s.TotalVolume += rec.Volume()
	}
	s.TotalWorkouts = len(days)
	s.BodyPartsWorked = len(parts)

	sorted := SortWeights(weights)
	if len(sorted) > 0 {
		s.EarliestWeight = sorted[0].WeightKg
		s.LatestWeight = sorted[len(sorted)-1].WeightKg
		s.WeightChange = s.LatestWeight - s.EarliestWeight
	}
	return s
}

// Analytics summarizes stored sessions and sets.
type Analytics struct {
	TotalWorkouts      int      `json:"totalWorkouts"`
	CompletedWorkouts  int      `json:"completedWorkouts"`
	TotalSets          int      `json:"totalSets"`
	TotalReps          int      `json:"totalReps"`
	TotalVolume        float64  `json:"totalVolume"`
	AvgDurationMinutes float64  `json:"avgDurationMinutes"`
	LastWorkoutDate    string   `json:"lastWorkoutDate"`
	BodyPartsWorked    []string `json:"bodyPartsWorked"`
}

// ComputeAnalytics averages the duration over the sessions that have one.
func ComputeAnalytics(sessions []workouts.Session, sets []workouts.ExerciseSet) Analytics {
	a := Analytics{
		TotalWorkouts:   len(sessions),
		BodyPartsWorked: []string{},
	}

	var durations, timed int
	for _, s := range sessions {
		if s.IsCompleted {
			a.CompletedWorkouts++
		}
		if s.DurationMinutes > 0 {
			durations += s.DurationMinutes
			timed++
		}
		if d := workouts.NormalizeDate(s.Date); d > a.LastWorkoutDate {
			a.LastWorkoutDate = d
		}
	}
	a.AvgDurationMinutes = SafeDiv(float64(durations), float64(timed))

	parts := map[string]bool{}
	for _, s := range sets {
		a.TotalSets++
		a.TotalReps += s.Reps
		a.TotalVolume += s.Volume()
		part := strings.ToLower(s.BodyPart)
		if !parts[part] {
			parts[part] = true
			a.BodyPartsWorked = append(a.BodyPartsWorked, part)
		}
	}
	sort.Strings(a.BodyPartsWorked)
	return a
}

// SortWeights returns a copy ordered oldest first.
func SortWeights(weights []workouts.WeightEntry) []workouts.WeightEntry {
	sorted := make([]workouts.WeightEntry, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return workouts.NormalizeDate(sorted[i].Date) < workouts.NormalizeDate(sorted[j].Date)
	})
	return sorted
}

// estimated height used for the BMI column
const bmiHeightM = 1.75

type WeightPoint struct {
	Date               string  `json:"date"`
	Weight             float64 `json:"weight"`
	ChangeFromPrevious float64 `json:"changeFromPrevious"`
	ChangeFromStart    float64 `json:"changeFromStart"`
	ChangeFromStartPct float64 `json:"changeFromStartPct"`
	Trend              string  `json:"trend"`
	BMI                float64 `json:"bmi"`
}

func WeightProgress(weights []workouts.WeightEntry) []WeightPoint {
	sorted := SortWeights(weights)
	points := make([]WeightPoint, 0, len(sorted))
	for i, w := range sorted {
		p := WeightPoint{
			Date:   workouts.NormalizeDate(w.Date),
			Weight: w.WeightKg,
			Trend:  "Baseline",
			BMI:    w.WeightKg / (bmiHeightM * bmiHeightM),
		}
		start := sorted[0].WeightKg
		p.ChangeFromStart = w.WeightKg - start
		p.ChangeFromStartPct = SafeDiv(p.ChangeFromStart, start) * 100
		if i > 0 {
			prev := sorted[i-1].WeightKg
			p.ChangeFromPrevious = w.WeightKg - prev
			switch {
			case w.WeightKg > prev:
				p.Trend = "Increasing"
			case w.WeightKg < prev:
				p.Trend = "Decreasing"
			default:
				p.Trend = "Stable"
			}
		}
		points = append(points, p)
	}
	return points
}
