package test

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/2beens/gymtracker/internal/backup"
	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
)

func (s *IntegrationTestSuite) TestWorkoutFlow() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient, testUsername, testPassword)

	code, body := doRequest(ctx, t, s.httpClient, "POST", "/gymstats/exercises", token, workouts.LogExerciseRequest{
		Date:         "2024-01-10",
		ExerciseName: "Bench",
		BodyPart:     "Chest",
		Sets: []workouts.SetEntry{
			{Reps: 10, Weight: 40},
			{Reps: 8, Weight: 45},
			{Reps: 6, Weight: 45},
			{Reps: 4, Weight: 40},
		},
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var logged workouts.LogExerciseResult
	require.NoError(t, json.Unmarshal(body, &logged))
	assert.Equal(t, "2024-01-10", logged.Session.Date)
	assert.Equal(t, 4, logged.Session.TotalSets)
	assert.Equal(t, 28, logged.Session.TotalReps)
	assert.Equal(t, 1185.0, logged.Session.TotalVolumeKg)

	code, body = doRequest(ctx, t, s.httpClient, "GET", "/gymstats/progress", token, nil)
	require.Equal(t, http.StatusOK, code)
	var progress []workouts.ExerciseProgress
	require.NoError(t, json.Unmarshal(body, &progress))
	require.Len(t, progress, 1)
	assert.Equal(t, 45.0, progress[0].MaxWeightKg)

	code, body = doRequest(ctx, t, s.httpClient, "GET", "/gymstats/stats/summary?range=all", token, nil)
	require.Equal(t, http.StatusOK, code)
	var summary stats.Summary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 1, summary.TotalWorkouts)
	assert.Equal(t, 1185.0, summary.TotalVolume)

	// deleting the session takes its sets along
	code, _ = doRequest(ctx, t, s.httpClient, "DELETE", "/gymstats/sessions/"+logged.Session.ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	code, body = doRequest(ctx, t, s.httpClient, "GET", "/gymstats/sets?session="+logged.Session.ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))
}

func (s *IntegrationTestSuite) TestWeightsArePerUser() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jeetToken := doLogin(ctx, t, s.httpClient, testUsername, testPassword)
	priyaToken := doLogin(ctx, t, s.httpClient, "priya", "elephant")

	code, body := doRequest(ctx, t, s.httpClient, "POST", "/gymstats/weights", jeetToken, workouts.WeightRequest{
		Date:     "2024-01-10",
		WeightKg: 80,
	})
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = doRequest(ctx, t, s.httpClient, "GET", "/gymstats/weights", priyaToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(body))

	code, body = doRequest(ctx, t, s.httpClient, "GET", "/gymstats/weights", jeetToken, nil)
	require.Equal(t, http.StatusOK, code)
	var weights []workouts.WeightEntry
	require.NoError(t, json.Unmarshal(body, &weights))
	require.Len(t, weights, 1)
	assert.Equal(t, 80.0, weights[0].WeightKg)
}

func (s *IntegrationTestSuite) TestBackup() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient, "priya", "elephant")
	code, body := doRequest(ctx, t, s.httpClient, "POST", "/gymstats/exercises", token, workouts.LogExerciseRequest{
		ExerciseName: "Squat",
		BodyPart:     "legs",
		Sets:         []workouts.SetEntry{{Reps: 5, Weight: 100}},
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	dir := t.TempDir()
	written, err := backup.NewClient(serverEndpoint, nil).Run(ctx, backup.Params{
		Username:  "priya",
		Password:  "elephant",
		Kinds:     []string{"data", "complete"},
		TimeRange: "all",
		Dir:       dir,
	})
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, dir, filepath.Dir(written[0]))

	f, err := os.Open(written[1])
	require.NoError(t, err)
	defer f.Close()
	wb, err := excelize.OpenReader(f)
	require.NoError(t, err)
	rows, err := wb.GetRows("Complete Exercise Log")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
