package schedule

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

type templatesRepo interface {
	ListTemplates(ctx context.Context) ([]workouts.DayTemplate, error)
	ListCatalog(ctx context.Context, bodyPart string) ([]workouts.CatalogExercise, error)
}

type CatalogEntry struct {
	workouts.CatalogExercise
	VideoLink string `json:"videoLink"`
}

type TodayResponse struct {
	workouts.DayTemplate
	IsToday bool   `json:"isToday"`
	Date    string `json:"date"`
}

type Handler struct {
	repo templatesRepo
	now  func() time.Time
}

func NewHandler(repo templatesRepo) *Handler {
	return &Handler{
		repo: repo,
		now:  time.Now,
	}
}

// week falls back to the built-in plan when the stored one is unreadable.
func (handler *Handler) week(ctx context.Context) []workouts.DayTemplate {
	week, err := handler.repo.ListTemplates(ctx)
	if err != nil {
		log.Errorf("list workout templates: %s", err)
		return DefaultWeek()
	}
	if len(week) == 0 {
		return DefaultWeek()
	}
	return week
}

func (handler *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.week")
	defer span.End()

	pkg.WriteJSONResponseOK(w, handler.week(ctx))
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.today")
	defer span.End()

	now := handler.now()
	day, ok := Today(handler.week(ctx), now)
	if !ok {
		http.Error(w, "error, no plan for today", http.StatusNotFound)
		return
	}
	pkg.WriteJSONResponseOK(w, TodayResponse{
		DayTemplate: day,
		IsToday:     true,
		Date:        workouts.FormatDate(now),
	})
}

func (handler *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.day")
	defer span.End()

	dayParam := mux.Vars(r)["day"]
	day, ok := ByDay(handler.week(ctx), dayParam)
	if !ok {
		http.Error(w, "error, unknown day", http.StatusNotFound)
		return
	}
	pkg.WriteJSONResponseOK(w, TodayResponse{
		DayTemplate: day,
		IsToday:     day.DayNumber == DayNumber(handler.now()),
	})
}

func (handler *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.schedule.catalog")
	defer span.End()

	bodyPart := r.URL.Query().Get("bodypart")
	exercises, err := handler.repo.ListCatalog(ctx, bodyPart)
	if err != nil {
		log.Errorf("list catalog [%s]: %s", bodyPart, err)
		exercises = nil
	}
	if len(exercises) == 0 {
		exercises = Catalog(bodyPart)
	}

	entries := make([]CatalogEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, CatalogEntry{
			CatalogExercise: e,
			VideoLink:       VideoLink(e.Name),
		})
	}
	pkg.WriteJSONResponseOK(w, entries)
}
