package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

// DayPoint is one day of a chart series. Days without records are zero.
type DayPoint struct {
	Date      string   `json:"date"`
	Volume    float64  `json:"volume"`
	Exercises int      `json:"exercises"`
	Sets      int      `json:"sets"`
	Weight    *float64 `json:"weight"`
}

func window(now time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, workouts.FormatDate(now.AddDate(0, 0, -i)))
	}
	return dates
}

// DailySeries covers the trailing days ending today.
func DailySeries(records []workouts.Exercise, now time.Time, days int) []DayPoint {
	if days <= 0 {
		return []DayPoint{}
	}

	dates := window(now, days)
	byDate := make(map[string]*DayPoint, len(dates))
	series := make([]DayPoint, len(dates))
	for i, d := range dates {
		series[i] = DayPoint{Date: d}
		byDate[d] = &series[i]
	}

	for _, rec := range records {
		p, ok := byDate[workouts.NormalizeDate(rec.Date)]
		if !ok {
			continue
		}
		p.Volume += rec.Volume()
		p.Exercises++
		p.Sets += len(rec.Sets)
	}
	return series
}

// Timeline is DailySeries with the body weight logged on each day.
func Timeline(records []workouts.Exercise, weights []workouts.WeightEntry, now time.Time, daysBack int) []DayPoint {
	series := DailySeries(records, now, daysBack)
	byDate := map[string]float64{}
	for _, w := range weights {
		byDate[workouts.NormalizeDate(w.Date)] = w.WeightKg
	}
	for i := range series {
		if w, ok := byDate[series[i].Date]; ok {
			series[i].Weight = &w
		}
	}
	return series
}

// MovingAverage is the mean volume of the points up to radius days around i.
func MovingAverage(series []DayPoint, i, radius int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	start, end := max(0, i-radius), min(len(series), i+radius+1)
	sum := 0.0
	for _, p := range series[start:end] {
		sum += p.Volume
	}
	return SafeDiv(sum, float64(end-start))
}

// WeekTotal sums the volume of the series points in the week of point i.
func WeekTotal(series []DayPoint, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	week := WeekStart(series[i].Date)
	total := 0.0
	for _, p := range series {
		if WeekStart(p.Date) == week {
			total += p.Volume
		}
	}
	return total
}

// WeekStart is the Sunday the week of the date starts on.
func WeekStart(date string) string {
	t, err := workouts.ParseDate(date)
	if err != nil {
		return workouts.NormalizeDate(date)
	}
	return workouts.FormatDate(t.AddDate(0, 0, -int(t.Weekday())))
}

type WeekSummary struct {
	WeekStart   string   `json:"weekStart"`
	Exercises   int      `json:"exercises"`
	Sets        int      `json:"sets"`
	Reps        int      `json:"reps"`
	Volume      float64  `json:"volume"`
	BodyParts   []string `json:"bodyParts"`
	WorkoutDays int      `json:"workoutDays"`
}

// WeeklyRollup groups records by week, most recent week first.
func WeeklyRollup(records []workouts.Exercise) []WeekSummary {
	byWeek := map[string]*WeekSummary{}
	days := map[string]map[string]bool{}
	parts := map[string]map[string]bool{}
	for _, rec := range records {
		week := WeekStart(rec.Date)
		w, ok := byWeek[week]
		if !ok {
			w = &WeekSummary{WeekStart: week, BodyParts: []string{}}
			byWeek[week] = w
			days[week] = map[string]bool{}
			parts[week] = map[string]bool{}
		}
		w.Exercises++
		w.Sets += len(rec.Sets)
		w.Reps += rec.TotalReps()
		w.Volume += rec.Volume()
		days[week][workouts.NormalizeDate(rec.Date)] = true

		part := strings.ToLower(rec.BodyPart)
		if !parts[week][part] {
			parts[week][part] = true
			w.BodyParts = append(w.BodyParts, part)
		}
	}

	res := make([]WeekSummary, 0, len(byWeek))
	for week, w := range byWeek {
		w.WorkoutDays = len(days[week])
		res = append(res, *w)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].WeekStart > res[j].WeekStart
	})
	return res
}
