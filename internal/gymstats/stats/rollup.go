package stats

import (
	"sort"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/schedule"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

type BodyPartStats struct {
	BodyPart  string  `json:"bodyPart"`
	Exercises int     `json:"exercises"`
	Sets      int     `json:"sets"`
	Reps      int     `json:"reps"`
	Volume    float64 `json:"volume"`
}

type Rollup []BodyPartStats

// BodyPartRollup has a row for every catalog body part, in catalog order,
// followed by any other tags found in the records, sorted.
func BodyPartRollup(records []workouts.Exercise) Rollup {
	byPart := map[string]*BodyPartStats{}
	var order []string
	for _, part := range schedule.BodyParts {
		byPart[part] = &BodyPartStats{BodyPart: part}
		order = append(order, part)
	}

	var unknown []string
	for _, rec := range records {
		part := strings.ToLower(strings.TrimSpace(rec.BodyPart))
		st, ok := byPart[part]
		if !ok {
			st = &BodyPartStats{BodyPart: part}
			byPart[part] = st
			unknown = append(unknown, part)
		}
		st.Exercises++
		st.Sets += len(rec.Sets)
		st.Reps += rec.TotalReps()
		st.Volume += rec.Volume()
	}
	sort.Strings(unknown)

	res := make(Rollup, 0, len(order)+len(unknown))
	for _, part := range append(order, unknown...) {
		res = append(res, *byPart[part])
	}
	return res
}

// NonEmpty drops the groups without records.
func (r Rollup) NonEmpty() Rollup {
	res := Rollup{}
	for _, st := range r {
		if st.Exercises > 0 {
			res = append(res, st)
		}
	}
	return res
}

func (r Rollup) TotalVolume() float64 {
	total := 0.0
	for _, st := range r {
		total += st.Volume
	}
	return total
}
