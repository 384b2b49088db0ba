package diet

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

type PlanResponse struct {
	Meals           []Meal  `json:"meals"`
	Tips            []Tip   `json:"tips"`
	CurrentMeal     string  `json:"currentMeal"`
	WaterGoalLiters float64 `json:"waterGoalLiters"`
}

type Handler struct {
	tracker *Tracker
	now     func() time.Time
}

func NewHandler(tracker *Tracker) *Handler {
	return &Handler{
		tracker: tracker,
		now:     time.Now,
	}
}

func (handler *Handler) SetClock(now func() time.Time) {
	handler.now = now
}

func (handler *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.plan")
	defer span.End()

	pkg.WriteJSONResponseOK(w, PlanResponse{
		Meals:           Plan(),
		Tips:            Tips(),
		CurrentMeal:     CurrentMeal(handler.now().Hour()),
		WaterGoalLiters: WaterGoalLiters,
	})
}

// dayParams resolves the user and the {date} var; "today" is accepted.
func (handler *Handler) dayParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", "", false
	}
	date := mux.Vars(r)["date"]
	if date == "today" {
		return session.UserID, workouts.FormatDate(handler.now()), true
	}
	if _, err := workouts.ParseDate(date); err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return "", "", false
	}
	return session.UserID, workouts.NormalizeDate(date), true
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.day")
	defer span.End()

	userID, date, ok := handler.dayParams(w, r)
	if !ok {
		return
	}
	day, err := handler.tracker.Day(ctx, userID, date)
	if err != nil {
		log.Errorf("diet day %s of %s: %s", date, userID, err)
		day = &DayLog{Date: date, CompletedMeals: []string{}}
	}
	pkg.WriteJSONResponseOK(w, day)
}

func (handler *Handler) HandleAddWater(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.addWater")
	defer span.End()

	userID, date, ok := handler.dayParams(w, r)
	if !ok {
		return
	}
	day, err := handler.tracker.AddWater(ctx, userID, date)
	if err != nil {
		log.Errorf("add water %s of %s: %s", date, userID, err)
		http.Error(w, "error, failed to save water intake", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, day)
}

func (handler *Handler) HandleResetWater(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.resetWater")
	defer span.End()

	userID, date, ok := handler.dayParams(w, r)
	if !ok {
		return
	}
	day, err := handler.tracker.ResetWater(ctx, userID, date)
	if err != nil {
		log.Errorf("reset water %s of %s: %s", date, userID, err)
		http.Error(w, "error, failed to reset water intake", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, day)
}

func (handler *Handler) HandleToggleMeal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diet.toggleMeal")
	defer span.End()

	userID, date, ok := handler.dayParams(w, r)
	if !ok {
		return
	}
	day, err := handler.tracker.ToggleMeal(ctx, userID, date, mux.Vars(r)["meal"])
	if errors.Is(err, ErrUnknownMeal) {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("toggle meal %s of %s: %s", date, userID, err)
		http.Error(w, "error, failed to save meal", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, day)
}
