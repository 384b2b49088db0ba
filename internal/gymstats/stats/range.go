// Package stats turns one user's exercise and weight records into the views
// of the progress dashboard. Everything here is pure.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeAll   TimeRange = "all"
)

// ParseTimeRange defaults to the last 30 days.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(strings.ToLower(strings.TrimSpace(s))) {
	case "", RangeMonth:
		return RangeMonth, nil
	case RangeWeek:
		return RangeWeek, nil
	case RangeAll:
		return RangeAll, nil
	default:
		return "", fmt.Errorf("unknown time range [%s]", s)
	}
}

// Days is the length of the window, 0 for all time.
func (r TimeRange) Days() int {
	switch r {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	default:
		return 0
	}
}

// TimelineDays is how far back the timeline chart reaches.
func (r TimeRange) TimelineDays() int {
	switch r {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	default:
		return 90
	}
}

// Cutoff is the first day still inside the window, or "" for all time.
func (r TimeRange) Cutoff(now time.Time) string {
	days := r.Days()
	if days == 0 {
		return ""
	}
	return workouts.FormatDate(now.AddDate(0, 0, -days))
}

// FilterByRange keeps records dated on or after the cutoff day.
func FilterByRange(records []workouts.Exercise, r TimeRange, now time.Time) []workouts.Exercise {
	cutoff := r.Cutoff(now)
	if cutoff == "" {
		return records
	}
	var res []workouts.Exercise
	for _, rec := range records {
		if workouts.NormalizeDate(rec.Date) >= cutoff {
			res = append(res, rec)
		}
	}
	return res
}

// FilterByBodyPart matches case-insensitively; "" and "all" keep everything.
func FilterByBodyPart(records []workouts.Exercise, bodyPart string) []workouts.Exercise {
	bodyPart = strings.TrimSpace(bodyPart)
	if bodyPart == "" || strings.EqualFold(bodyPart, "all") {
		return records
	}
	var res []workouts.Exercise
	for _, rec := range records {
		if strings.EqualFold(rec.BodyPart, bodyPart) {
			res = append(res, rec)
		}
	}
	return res
}

// SafeDiv returns 0 instead of dividing by zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
