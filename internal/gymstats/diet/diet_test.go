package diet_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/gymstats/diet"
	"github.com/2beens/gymtracker/internal/kv"
)

type failingStore struct {
	kv.Store
}

func (s failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestPlan(t *testing.T) {
	meals := diet.Plan()
	require.Len(t, meals, 7)
	assert.Equal(t, "morning", meals[0].Key)
	assert.Equal(t, "beforeBed", meals[6].Key)
	assert.Len(t, diet.Tips(), 5)

	meals[0].Key = "changed"
	assert.Equal(t, "morning", diet.Plan()[0].Key)

	assert.True(t, diet.IsMeal("lunch"))
	assert.False(t, diet.IsMeal("brunch"))
}

func TestCurrentMeal(t *testing.T) {
	cases := map[int]string{
		0:  "morning",
		7:  "morning",
		8:  "breakfast",
		11: "midMorning",
		13: "lunch",
		16: "evening",
		19: "dinner",
		21: "beforeBed",
		23: "beforeBed",
	}
	for hour, meal := range cases {
		assert.Equal(t, meal, diet.CurrentMeal(hour), "hour %d", hour)
	}
}

func TestTracker_Water(t *testing.T) {
	ctx := context.Background()
	tracker := diet.NewTracker(kv.NewMemoryStore())

	day, err := tracker.Day(ctx, "u-jeet", "2024-01-10")
	require.NoError(t, err)
	assert.Zero(t, day.WaterLiters)
	assert.Empty(t, day.CompletedMeals)

	for i := 0; i < 3; i++ {
		day, err = tracker.AddWater(ctx, "u-jeet", "2024-01-10")
		require.NoError(t, err)
	}
	assert.Equal(t, 0.75, day.WaterLiters)

	for i := 0; i < 20; i++ {
		day, err = tracker.AddWater(ctx, "u-jeet", "2024-01-10")
		require.NoError(t, err)
	}
	assert.Equal(t, diet.WaterGoalLiters, day.WaterLiters)

	other, err := tracker.Day(ctx, "u-priya", "2024-01-10")
	require.NoError(t, err)
	assert.Zero(t, other.WaterLiters)

	day, err = tracker.ResetWater(ctx, "u-jeet", "2024-01-10")
	require.NoError(t, err)
	assert.Zero(t, day.WaterLiters)
}

func TestTracker_ToggleMeal(t *testing.T) {
	ctx := context.Background()
	tracker := diet.NewTracker(kv.NewMemoryStore())

	day, err := tracker.ToggleMeal(ctx, "u-jeet", "2024-01-10", "lunch")
	require.NoError(t, err)
	assert.Equal(t, []string{"lunch"}, day.CompletedMeals)

	day, err = tracker.ToggleMeal(ctx, "u-jeet", "2024-01-10", "dinner")
	require.NoError(t, err)
	assert.Equal(t, []string{"lunch", "dinner"}, day.CompletedMeals)

	day, err = tracker.ToggleMeal(ctx, "u-jeet", "2024-01-10", "lunch")
	require.NoError(t, err)
	assert.Equal(t, []string{"dinner"}, day.CompletedMeals)

	_, err = tracker.ToggleMeal(ctx, "u-jeet", "2024-01-10", "brunch")
	assert.ErrorIs(t, err, diet.ErrUnknownMeal)
}

func TestTracker_MalformedDayStartsOver(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "gym_diet_u-jeet_2024-01-10", []byte("{not json")))

	day, err := diet.NewTracker(store).Day(ctx, "u-jeet", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", day.Date)
	assert.Zero(t, day.WaterLiters)
}

func newRouter(h *diet.Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/diet/plan", h.HandlePlan).Methods("GET")
	r.HandleFunc("/diet/day/{date}", h.HandleDay).Methods("GET")
	r.HandleFunc("/diet/day/{date}/water", h.HandleAddWater).Methods("POST")
	r.HandleFunc("/diet/day/{date}/water", h.HandleResetWater).Methods("DELETE")
	r.HandleFunc("/diet/day/{date}/meals/{meal}", h.HandleToggleMeal).Methods("POST")
	return r
}

func serve(router http.Handler, method, target string, withSession bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if withSession {
		req = req.WithContext(auth.NewContext(req.Context(), &auth.Session{UserID: "u-jeet", Username: "jeet"}))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	h := diet.NewHandler(diet.NewTracker(kv.NewMemoryStore()))
	h.SetClock(func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) })
	router := newRouter(h)

	rec := serve(router, "GET", "/diet/plan", false)
	require.Equal(t, http.StatusOK, rec.Code)
	var plan diet.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.Equal(t, "midMorning", plan.CurrentMeal)
	assert.Len(t, plan.Meals, 7)

	assert.Equal(t, http.StatusUnauthorized, serve(router, "GET", "/diet/day/today", false).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, "GET", "/diet/day/yesterday", true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, "POST", "/diet/day/today/meals/brunch", true).Code)

	require.Equal(t, http.StatusOK, serve(router, "POST", "/diet/day/2024-01-10/water", true).Code)
	require.Equal(t, http.StatusOK, serve(router, "POST", "/diet/day/today/meals/lunch", true).Code)

	rec = serve(router, "GET", "/diet/day/today", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-10","waterLiters":0.25,"completedMeals":["lunch"]}`, rec.Body.String())

	rec = serve(router, "DELETE", "/diet/day/today/water", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2024-01-10","waterLiters":0,"completedMeals":["lunch"]}`, rec.Body.String())
}

func TestHandler_StoreFailure(t *testing.T) {
	h := diet.NewHandler(diet.NewTracker(failingStore{Store: kv.NewMemoryStore()}))
	rec := serve(newRouter(h), "POST", "/diet/day/2024-01-10/water", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
