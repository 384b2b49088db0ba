package export_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/gymstats/export"
	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/pkg"
)

var testNow = time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)

func records() []workouts.Exercise {
	return []workouts.Exercise{
		{Date: "2024-01-03", BodyPart: "chest", Name: "Flat Bench Press", Sets: []workouts.SetEntry{{Reps: 10, Weight: 40}}},
		{Date: "2024-01-08", BodyPart: "legs", Name: "Squat", Sets: []workouts.SetEntry{{Reps: 5, Weight: 100}}},
		{Date: "2024-01-10", BodyPart: "chest", Name: "Flat Bench Press", Sets: []workouts.SetEntry{
			{Reps: 10, Weight: 40}, {Reps: 10, Weight: 42.5}, {Reps: 8, Weight: 45},
		}},
	}
}

func dataset(weights []workouts.WeightEntry) *stats.Dataset {
	return &stats.Dataset{
		UserID:   "u-jeet",
		Range:    stats.RangeMonth,
		Now:      testNow,
		All:      records(),
		Filtered: records(),
		Weights:  weights,
	}
}

func sheetNames(wb *export.Workbook) []string {
	var names []string
	for _, s := range wb.Sheets {
		names = append(names, s.Name)
	}
	return names
}

func sheet(t *testing.T, wb *export.Workbook, name string) export.Sheet {
	t.Helper()
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("sheet %s not found", name)
	return export.Sheet{}
}

func TestParseKindAndFileName(t *testing.T) {
	kind, err := export.ParseKind("Complete")
	require.NoError(t, err)
	assert.Equal(t, export.KindComplete, kind)

	_, err = export.ParseKind("pdf")
	assert.Error(t, err)

	assert.Equal(t, "gym_data_jeet_2024-01-10.xlsx", export.FileName(export.KindData, "jeet", testNow))
	assert.Equal(t, "gym_charts_jeet_2024-01-10.xlsx", export.FileName(export.KindCharts, "jeet", testNow))
	assert.Equal(t, "gym_complete_analysis_jeet_2024-01-10.xlsx", export.FileName(export.KindComplete, "jeet", testNow))
}

func TestBuild_SheetNames(t *testing.T) {
	weights := []workouts.WeightEntry{{Date: "2024-01-10", WeightKg: 80}}

	wb, err := export.Build(export.KindData, dataset(weights), "jeet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Exercise Details", "Body Part Summary", "Exercise Progress", "Daily Progress", "Weight Progress"}, sheetNames(wb))

	wb, err = export.Build(export.KindCharts, dataset(weights), "jeet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Volume Over Time", "Daily Bar Chart", "Body Part Distribution", "Weight Chart Data", "Exercise Trends"}, sheetNames(wb))

	wb, err = export.Build(export.KindComplete, dataset(nil), "jeet")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Complete Exercise Log", "Daily Progress", "Body Part Analysis", "Exercise Progress",
		"Progress Timeline", "Weekly Summary",
	}, sheetNames(wb))

	_, err = export.Build("pdf", dataset(nil), "jeet")
	assert.Error(t, err)
}

func TestBuild_DataRows(t *testing.T) {
	wb, err := export.Build(export.KindData, dataset(nil), "jeet")
	require.NoError(t, err)

	details := sheet(t, wb, "Exercise Details")
	require.Len(t, details.Rows, 5)
	assert.Equal(t, []any{"1/10/2024", "Flat Bench Press", "chest", 3, 8, 45.0, 360.0, "Wednesday", "Week 1"}, details.Rows[4])
	assert.Equal(t, "Week 2", details.Rows[0][8])

	summary := sheet(t, wb, "Body Part Summary")
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, []any{"chest", 2, 4, 1585.0, 792.5}, summary.Rows[0])

	progress := sheet(t, wb, "Exercise Progress")
	require.Len(t, progress.Rows, 3)
	assert.Equal(t, []any{"Flat Bench Press", "1/10/2024", 45.0, 28, 1185.0}, progress.Rows[1])

	daily := sheet(t, wb, "Daily Progress")
	require.Len(t, daily.Rows, 7)
	assert.Equal(t, []any{"1/10/2024", "Wed, Jan 10", 1185.0, 1, 3}, daily.Rows[6])
}

func TestBuild_CompleteRows(t *testing.T) {
	wb, err := export.Build(export.KindComplete, dataset([]workouts.WeightEntry{
		{Date: "2024-01-10", WeightKg: 78},
		{Date: "2024-01-01", WeightKg: 80},
	}), "jeet")
	require.NoError(t, err)

	exerciseLog := sheet(t, wb, "Complete Exercise Log")
	assert.Equal(t, []any{2, "January 2024"}, exerciseLog.Rows[0][8:])
	assert.Equal(t, []any{1, "January 2024"}, exerciseLog.Rows[4][8:])

	analysis := sheet(t, wb, "Body Part Analysis")
	assert.Equal(t, "76.0%", analysis.Rows[0][6])
	assert.Equal(t, "24.0%", analysis.Rows[1][6])

	progress := sheet(t, wb, "Exercise Progress")
	require.Len(t, progress.Rows, 2)
	assert.Equal(t, "Flat Bench Press", progress.Rows[0][0])
	assert.Equal(t, "12.5%", progress.Rows[0][7])
	assert.Equal(t, stats.TrendImproving, progress.Rows[0][13])
	assert.Equal(t, stats.TrendStable, progress.Rows[1][13])

	timeline := sheet(t, wb, "Progress Timeline")
	assert.Len(t, timeline.Rows, 30)

	weights := sheet(t, wb, "Weight Progress")
	require.Len(t, weights.Rows, 2)
	assert.Equal(t, []any{"1/10/2024", 78.0, -2.0, -2.0, "-2.5%", "Decreasing", 25.5}, weights.Rows[1])

	weekly := sheet(t, wb, "Weekly Summary")
	require.Len(t, weekly.Rows, 2)
	assert.Equal(t, []any{"1/7/2024", 2, 4, 1685.0, 2, "legs, chest", 842.5, 421.3, 2}, weekly.Rows[0])
}

func TestRender_RoundTrip(t *testing.T) {
	wb, err := export.Build(export.KindCharts, dataset(nil), "jeet")
	require.NoError(t, err)
	content, err := wb.Render()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, sheetNames(wb), f.GetSheetList())

	rows, err := f.GetRows("Body Part Distribution")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Body Part", "Exercise Count", "Total Sets", "Volume (kg)", "Percentage of Total Volume"}, rows[0])
	assert.Equal(t, []string{"chest", "2", "4", "1585", "76.0%"}, rows[1])

	styleID, err := f.GetCellStyle("Body Part Distribution", "E1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	trends, err := f.GetRows("Exercise Trends")
	require.NoError(t, err)
	require.Len(t, trends, 2)
	assert.Equal(t, []string{"Flat Bench Press", "1/3/2024", "1/10/2024", "2", "5", "785", "42.5", "Improving"}, trends[1])
}

type fakeSource struct {
	records []workouts.Exercise
}

func (s *fakeSource) Exercises(context.Context, string, workouts.SetFilter) ([]workouts.Exercise, error) {
	return s.records, nil
}

func (s *fakeSource) ListWeights(context.Context, string, workouts.DateFilter) ([]workouts.WeightEntry, error) {
	return nil, nil
}

func TestHandleExport(t *testing.T) {
	mm := metrics.NewTestManager()
	h := export.NewHandler(&fakeSource{records: records()}, mm)
	h.SetClock(func() time.Time { return testNow })
	router := mux.NewRouter()
	router.HandleFunc("/gymstats/export/{kind}", h.HandleExport).Methods("GET")

	get := func(target string, withSession bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil)
		if withSession {
			req = req.WithContext(auth.NewContext(req.Context(), &auth.Session{UserID: "u-jeet", Username: "jeet"}))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, get("/gymstats/export/data", false).Code)
	assert.Equal(t, http.StatusNotFound, get("/gymstats/export/pdf", true).Code)
	assert.Equal(t, http.StatusBadRequest, get("/gymstats/export/data?range=year", true).Code)

	rec := get("/gymstats/export/complete?range=week", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pkg.ContentType.XLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="gym_complete_analysis_jeet_2024-01-10.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Complete Exercise Log")
	require.NoError(t, err)
	assert.Len(t, rows, 1+5)

	assert.Equal(t, 1.0, testutil.ToFloat64(mm.CounterExports.WithLabelValues("complete")))
	assert.Equal(t, 1, testutil.CollectAndCount(mm.HistogramExportDuration))
}
