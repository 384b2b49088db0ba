package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/cache"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

// AnalyticsSource adds the raw session and set listing needed by the
// analytics view.
type AnalyticsSource interface {
	Source
	ListSessions(ctx context.Context, userID string, filter workouts.DateFilter) ([]workouts.Session, error)
	ListSets(ctx context.Context, userID string, filter workouts.SetFilter) ([]workouts.ExerciseSet, error)
}

type ExerciseProgressResponse struct {
	Exercise  string          `json:"exercise"`
	Exercises []string        `json:"exercises"`
	Progress  []ProgressPoint `json:"progress"`
}

type Handler struct {
	source         AnalyticsSource
	cache          cache.Cache
	metricsManager *metrics.Manager
	now            func() time.Time
}

// NewHandler works without a cache when statsCache is nil.
func NewHandler(source AnalyticsSource, statsCache cache.Cache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		source:         source,
		cache:          statsCache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) SetClock(now func() time.Time) {
	handler.now = now
}

func (handler *Handler) countCache(result string) {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterStatsCache.WithLabelValues(result).Inc()
	}
}

// serveCached writes the cached response, or builds, stores and writes it.
func (handler *Handler) serveCached(w http.ResponseWriter, userID, key string, build func() any) {
	if handler.cache != nil {
		if cached, ok := handler.cache.Get(userID, key); ok {
			handler.countCache("hit")
			pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
			return
		}
		handler.countCache("miss")
	}

	resp, err := json.Marshal(build())
	if err != nil {
		log.Errorf("marshal stats response [%s]: %s", key, err)
		http.Error(w, "error, failed to build stats", http.StatusInternalServerError)
		return
	}
	if handler.cache != nil {
		if err := handler.cache.Set(userID, key, resp); err != nil {
			log.Warnf("cache stats response [%s]: %s", key, err)
		}
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func requestParams(w http.ResponseWriter, r *http.Request) (*auth.Session, TimeRange, string, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return nil, "", "", false
	}
	timeRange, err := ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return nil, "", "", false
	}
	bodyPart := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("bodypart")))
	if bodyPart == "all" {
		bodyPart = ""
	}
	return session, timeRange, bodyPart, true
}

// HandleView serves one dashboard view: summary, bodyparts, daily, timeline,
// weekly, heatmap or analytics.
func (handler *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.view")
	defer span.End()

	session, timeRange, bodyPart, ok := requestParams(w, r)
	if !ok {
		return
	}

	view := mux.Vars(r)["view"]
	now := handler.now()
	var build func() any
	switch view {
	case "summary":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).Summary() }
	case "bodyparts":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).BodyParts() }
	case "daily":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).Daily() }
	case "timeline":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).Timeline() }
	case "weekly":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).Weekly() }
	case "heatmap":
		build = func() any { return Load(ctx, handler.source, session.UserID, timeRange, bodyPart, now).HeatMap() }
	case "analytics":
		build = func() any { return handler.analytics(ctx, session.UserID, timeRange, now) }
	default:
		http.Error(w, "error, unknown stats view", http.StatusNotFound)
		return
	}

	key := strings.Join([]string{view, string(timeRange), bodyPart, workouts.FormatDate(now)}, "|")
	handler.serveCached(w, session.UserID, key, build)
}

func (handler *Handler) analytics(ctx context.Context, userID string, timeRange TimeRange, now time.Time) Analytics {
	cutoff := timeRange.Cutoff(now)
	sessions, err := handler.source.ListSessions(ctx, userID, workouts.DateFilter{From: cutoff})
	if err != nil {
		log.Errorf("stats analytics: list sessions of %s: %s", userID, err)
		sessions = nil
	}
	sets, err := handler.source.ListSets(ctx, userID, workouts.SetFilter{From: cutoff})
	if err != nil {
		log.Errorf("stats analytics: list sets of %s: %s", userID, err)
		sets = nil
	}
	return ComputeAnalytics(sessions, sets)
}

// HandleExerciseProgress serves the per day series of one exercise; without
// the exercise param the first logged exercise is used.
func (handler *Handler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseProgress")
	defer span.End()

	session, timeRange, bodyPart, ok := requestParams(w, r)
	if !ok {
		return
	}

	ds := Load(ctx, handler.source, session.UserID, timeRange, bodyPart, handler.now())
	resp := ExerciseProgressResponse{
		Exercise:  r.URL.Query().Get("exercise"),
		Exercises: ds.ExerciseNames(),
		Progress:  []ProgressPoint{},
	}
	if resp.Exercises == nil {
		resp.Exercises = []string{}
	}
	if resp.Exercise == "" && len(resp.Exercises) > 0 {
		resp.Exercise = resp.Exercises[0]
	}
	if resp.Exercise != "" {
		resp.Progress = ds.ExerciseProgress(resp.Exercise)
	}
	pkg.WriteJSONResponseOK(w, resp)
}

// HandleExercises lists the grouped exercise records in range and body part.
func (handler *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exercises")
	defer span.End()

	session, timeRange, bodyPart, ok := requestParams(w, r)
	if !ok {
		return
	}

	records := Load(ctx, handler.source, session.UserID, timeRange, bodyPart, handler.now()).Filtered
	if records == nil {
		records = []workouts.Exercise{}
	}
	pkg.WriteJSONResponseOK(w, records)
}
