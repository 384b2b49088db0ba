package workouts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

type DeleteResponse struct {
	DeletedID string `json:"deletedId"`
}

type CreateSessionRequest struct {
	Date string `json:"date,omitempty"`
	Name string `json:"name,omitempty"`
}

type UpdateSessionRequest struct {
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type CompleteSessionRequest struct {
	Notes string `json:"notes,omitempty"`
}

type SessionResponse struct {
	Session Session       `json:"session"`
	Sets    []ExerciseSet `json:"sets"`
}

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", false
	}
	return session.UserID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Tracef("%s %s, unmarshal json params: %s", r.Method, r.URL.Path, err)
		http.Error(w, "error, invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps service errors to status codes; only unexpected ones are
// counted as storage errors.
func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		http.Error(w, "error, "+vErr.Error(), http.StatusBadRequest)
	case IsNotFound(err):
		http.Error(w, "error, not found", http.StatusNotFound)
	default:
		log.Errorf("%s: %s", op, err)
		if handler.metricsManager != nil {
			handler.metricsManager.CounterStorageErrors.WithLabelValues(op).Inc()
		}
		http.Error(w, "error, failed to "+op, http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.createSession")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req CreateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := handler.service.CreateSession(ctx, uid, req.Date, req.Name)
	if err != nil {
		handler.writeError(w, "create session", err)
		return
	}
	pkg.WriteJSONResponse(w, session, http.StatusCreated)
}

func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listSessions")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	filter := DateFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	sessions, err := handler.service.ListSessions(ctx, uid, filter)
	if err != nil {
		log.Errorf("list sessions for %s: %s", uid, err)
		sessions = nil
	}
	if sessions == nil {
		sessions = []Session{}
	}
	pkg.WriteJSONResponseOK(w, sessions)
}

func (handler *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getSession")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	session, sets, err := handler.service.GetSession(ctx, uid, mux.Vars(r)["id"])
	if err != nil {
		handler.writeError(w, "get session", err)
		return
	}
	if sets == nil {
		sets = []ExerciseSet{}
	}
	pkg.WriteJSONResponseOK(w, SessionResponse{Session: *session, Sets: sets})
}

func (handler *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.updateSession")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req UpdateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := handler.service.UpdateSessionDetails(ctx, uid, mux.Vars(r)["id"], req.Name, req.Notes)
	if err != nil {
		handler.writeError(w, "update session", err)
		return
	}
	pkg.WriteJSONResponseOK(w, session)
}

func (handler *Handler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.completeSession")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	// body is optional here
	var req CompleteSessionRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	session, err := handler.service.CompleteSession(ctx, uid, mux.Vars(r)["id"], req.Notes)
	if err != nil {
		handler.writeError(w, "complete session", err)
		return
	}
	pkg.WriteJSONResponseOK(w, session)
}

func (handler *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteSession")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := handler.service.DeleteSession(ctx, uid, id); err != nil {
		handler.writeError(w, "delete session", err)
		return
	}
	pkg.WriteJSONResponseOK(w, DeleteResponse{DeletedID: id})
}

func (handler *Handler) HandleLogExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.logExercise")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req LogExerciseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := handler.service.LogExercise(ctx, uid, req)
	if err != nil {
		handler.writeError(w, "log exercise", err)
		return
	}

	log.Debugf("logged %d sets of [%s] for %s", len(res.Sets), req.ExerciseName, uid)
	pkg.WriteJSONResponse(w, res, http.StatusCreated)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.import")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var records []Exercise
	if !decodeJSON(w, r, &records) {
		return
	}

	res, err := handler.service.ImportLegacy(ctx, uid, records)
	if err != nil {
		handler.writeError(w, "import exercises", err)
		return
	}
	pkg.WriteJSONResponseOK(w, res)
}

func (handler *Handler) HandleListSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listSets")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	sets, err := handler.service.ListSets(ctx, uid, SetFilter{
		SessionID:    q.Get("session"),
		Date:         NormalizeDate(q.Get("date")),
		ExerciseName: q.Get("exercise"),
		BodyPart:     q.Get("bodypart"),
	})
	if err != nil {
		log.Errorf("list sets for %s: %s", uid, err)
		sets = nil
	}
	if sets == nil {
		sets = []ExerciseSet{}
	}
	pkg.WriteJSONResponseOK(w, sets)
}

func (handler *Handler) HandleUpdateSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.updateSet")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var entry SetEntry
	if !decodeJSON(w, r, &entry) {
		return
	}

	set, err := handler.service.UpdateSet(ctx, uid, mux.Vars(r)["id"], entry)
	if err != nil {
		handler.writeError(w, "update set", err)
		return
	}
	pkg.WriteJSONResponseOK(w, set)
}

func (handler *Handler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteSet")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := handler.service.DeleteSet(ctx, uid, id); err != nil {
		handler.writeError(w, "delete set", err)
		return
	}
	pkg.WriteJSONResponseOK(w, DeleteResponse{DeletedID: id})
}

func (handler *Handler) HandleSaveWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.saveWeight")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req WeightRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := handler.service.SaveWeight(ctx, uid, req)
	if err != nil {
		handler.writeError(w, "save weight", err)
		return
	}
	pkg.WriteJSONResponseOK(w, entry)
}

func (handler *Handler) HandleListWeights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listWeights")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	weights, err := handler.service.ListWeights(ctx, uid, DateFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	})
	if err != nil {
		log.Errorf("list weights for %s: %s", uid, err)
		weights = nil
	}
	if weights == nil {
		weights = []WeightEntry{}
	}
	pkg.WriteJSONResponseOK(w, weights)
}

func (handler *Handler) HandleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.deleteWeight")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]
	if err := handler.service.DeleteWeight(ctx, uid, id); err != nil {
		handler.writeError(w, "delete weight", err)
		return
	}
	pkg.WriteJSONResponseOK(w, DeleteResponse{DeletedID: id})
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.progress")
	defer span.End()

	uid, ok := userID(w, r)
	if !ok {
		return
	}

	progress, err := handler.service.Progress(ctx, uid)
	if err != nil {
		log.Errorf("list progress for %s: %s", uid, err)
		progress = nil
	}
	if progress == nil {
		progress = []ExerciseProgress{}
	}
	pkg.WriteJSONResponseOK(w, progress)
}
