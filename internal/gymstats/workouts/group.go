package workouts

import (
	"sort"
	"strings"
	"time"
)

// GroupSets folds set rows into one Exercise per session and exercise name,
// ordered by date, then by first appearance.
func GroupSets(userID string, sets []ExerciseSet) []Exercise {
	sorted := make([]ExerciseSet, len(sets))
	copy(sorted, sets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		if sorted[i].SessionID != sorted[j].SessionID {
			return sorted[i].SessionID < sorted[j].SessionID
		}
		return sorted[i].SetNumber < sorted[j].SetNumber
	})

	var exercises []Exercise
	index := map[string]int{}
	for _, s := range sorted {
		key := s.SessionID + "|" + s.ExerciseName
		i, ok := index[key]
		if !ok {
			exercises = append(exercises, Exercise{
				ID:        s.SessionID + ":" + s.ExerciseName,
				User:      userID,
				SessionID: s.SessionID,
				Date:      NormalizeDate(s.Date),
				BodyPart:  s.BodyPart,
				Name:      s.ExerciseName,
			})
			i = len(exercises) - 1
			index[key] = i
		}
		exercises[i].Sets = append(exercises[i].Sets, SetEntry{Reps: s.Reps, Weight: s.WeightKg})
	}

	return exercises
}

// SessionTotals recomputes the denormalized counters of a session from its sets.
func SessionTotals(sets []ExerciseSet) (totalSets, totalReps int, totalVolume float64) {
	for _, s := range sets {
		totalSets++
		totalReps += s.Reps
		totalVolume += s.Volume()
	}
	return totalSets, totalReps, totalVolume
}

// SummarizeProgress builds personal-best rows from raw sets, one per exercise
// name, sorted by name.
func SummarizeProgress(sets []ExerciseSet) []ExerciseProgress {
	byName := map[string]*ExerciseProgress{}
	sessions := map[string]map[string]bool{}
	for _, s := range sets {
		p, ok := byName[s.ExerciseName]
		if !ok {
			p = &ExerciseProgress{ExerciseName: s.ExerciseName}
			byName[s.ExerciseName] = p
			sessions[s.ExerciseName] = map[string]bool{}
		}

		date := NormalizeDate(s.Date)
		// personal best is the earliest day the max weight was lifted
		if s.WeightKg > p.MaxWeightKg ||
			(s.WeightKg == p.MaxWeightKg && (p.PersonalBestDate == "" || date < p.PersonalBestDate)) {
			p.MaxWeightKg = s.WeightKg
			p.PersonalBestDate = date
		}
		if s.Reps > p.MaxReps {
			p.MaxReps = s.Reps
		}
		p.TotalVolumeKg += s.Volume()
		if date > p.LastPerformedDate {
			p.LastPerformedDate = date
		}
		sessions[s.ExerciseName][s.SessionID] = true
	}

	res := make([]ExerciseProgress, 0, len(byName))
	for name, p := range byName {
		p.TotalSessions = len(sessions[name])
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool {
		return strings.ToLower(res[i].ExerciseName) < strings.ToLower(res[j].ExerciseName)
	})
	return res
}

// Today returns the current day in the YYYY-MM-DD layout.
func Today(now time.Time) string {
	return FormatDate(now)
}
