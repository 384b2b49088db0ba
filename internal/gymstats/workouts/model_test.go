package workouts_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

func TestExercise_LegacyFlatShape(t *testing.T) {
	legacy := `{"id":"ex_1704873600000_a1","user":"jeet","date":"2024-01-10T09:30:00.000Z","bodyPart":"chest","exerciseName":"Flat Bench Press","reps":10,"weight":40}`
	modern := `{"id":"ex_1704873600000_a1","user":"jeet","date":"2024-01-10","bodyPart":"chest","name":"Flat Bench Press","sets":[{"reps":10,"weight":40}]}`

	var fromLegacy, fromModern workouts.Exercise
	require.NoError(t, json.Unmarshal([]byte(legacy), &fromLegacy))
	require.NoError(t, json.Unmarshal([]byte(modern), &fromModern))

	assert.Equal(t, fromModern, fromLegacy)
	assert.Equal(t, fromModern.Volume(), fromLegacy.Volume())
	assert.Equal(t, "2024-01-10", fromLegacy.Date)
	require.Len(t, fromLegacy.Sets, 1)
	assert.Equal(t, workouts.SetEntry{Reps: 10, Weight: 40}, fromLegacy.Sets[0])
}

func TestExercise_MarshalEmitsFirstSet(t *testing.T) {
	ex := workouts.Exercise{
		ID:       "s1:Squat",
		User:     "jeet",
		Date:     "2024-01-10",
		BodyPart: "legs",
		Name:     "Squat",
		Sets:     []workouts.SetEntry{{Reps: 5, Weight: 100}, {Reps: 3, Weight: 110}},
	}

	data, err := json.Marshal(ex)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 5.0, raw["reps"])
	assert.Equal(t, 100.0, raw["weight"])
	assert.Len(t, raw["sets"], 2)

	var back workouts.Exercise
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ex, back)

	empty, err := json.Marshal(workouts.Exercise{Name: "Plank"})
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"sets":[]`)
	assert.NotContains(t, string(empty), `"reps"`)
}

func TestGroupSets(t *testing.T) {
	sets := []workouts.ExerciseSet{
		{SessionID: "s2", ExerciseName: "Squat", BodyPart: "legs", SetNumber: 1, Reps: 5, WeightKg: 100, Date: "2024-01-11"},
		{SessionID: "s1", ExerciseName: "Flat Bench Press", BodyPart: "chest", SetNumber: 2, Reps: 10, WeightKg: 42.5, Date: "2024-01-10"},
		{SessionID: "s1", ExerciseName: "Flat Bench Press", BodyPart: "chest", SetNumber: 1, Reps: 10, WeightKg: 40, Date: "2024-01-10"},
		{SessionID: "s1", ExerciseName: "Flat Bench Press", BodyPart: "chest", SetNumber: 3, Reps: 8, WeightKg: 45, Date: "2024-01-10"},
	}

	grouped := workouts.GroupSets("jeet", sets)
	require.Len(t, grouped, 2)

	bench := grouped[0]
	assert.Equal(t, "s1:Flat Bench Press", bench.ID)
	assert.Equal(t, "jeet", bench.User)
	assert.Equal(t, []workouts.SetEntry{{Reps: 10, Weight: 40}, {Reps: 10, Weight: 42.5}, {Reps: 8, Weight: 45}}, bench.Sets)
	assert.Equal(t, 28, bench.TotalReps())
	assert.InDelta(t, 1185.0, bench.Volume(), 0.001)
	assert.Equal(t, 45.0, bench.MaxWeight())

	assert.Equal(t, "Squat", grouped[1].Name)

	totalSets, totalReps, volume := workouts.SessionTotals(sets[1:])
	assert.Equal(t, 3, totalSets)
	assert.Equal(t, 28, totalReps)
	assert.InDelta(t, 1185.0, volume, 0.001)
}

func TestFilters(t *testing.T) {
	f := workouts.DateFilter{From: "2024-01-03", To: "2024-01-10"}
	assert.True(t, f.Match("2024-01-03"))
	assert.True(t, f.Match("2024-01-10T23:00:00Z"))
	assert.False(t, f.Match("2024-01-02"))
	assert.False(t, f.Match("2024-01-11"))
	assert.True(t, workouts.DateFilter{}.Match("1999-01-01"))

	set := workouts.ExerciseSet{SessionID: "s1", ExerciseName: "Squat", BodyPart: "legs", Date: "2024-01-10"}
	assert.True(t, workouts.SetFilter{Date: "2024-01-10", BodyPart: "legs"}.Match(set))
	assert.False(t, workouts.SetFilter{SessionID: "s2"}.Match(set))
	assert.False(t, workouts.SetFilter{ExerciseName: "Deadlift"}.Match(set))
	assert.False(t, workouts.SetFilter{To: "2024-01-09"}.Match(set))
}
