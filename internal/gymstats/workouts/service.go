package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

type LogExerciseResult struct {
	Session Session       `json:"session"`
	Sets    []ExerciseSet `json:"sets"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service runs the multi step write flows on top of a Repo, keeping session
// totals equal to the sum over their sets.
type Service struct {
	repo           Repo
	metricsManager *metrics.Manager
	now            func() time.Time
	onChange       []func(userID string)
}

func NewService(repo Repo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// SetClock overrides the time source, used by tests and imports.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Repo() Repo {
	return s.repo
}

// OnChange registers a callback run after every successful write of a user.
func (s *Service) OnChange(fn func(userID string)) {
	s.onChange = append(s.onChange, fn)
}

func (s *Service) changed(userID string) {
	for _, fn := range s.onChange {
		fn(userID)
	}
}

func (s *Service) CreateSession(ctx context.Context, userID, date, name string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.createSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validateDate("date", date); err != nil {
		return nil, err
	}

	now := s.now()
	if date == "" {
		date = FormatDate(now)
	}
	if name == "" {
		day, err := ParseDate(date)
		if err != nil {
			return nil, err
		}
		name = "Workout " + day.Weekday().String()
	}

	session, err := s.repo.CreateSession(ctx, Session{
		UserID:    userID,
		Date:      NormalizeDate(date),
		Name:      name,
		StartTime: &now,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	s.changed(userID)
	return session, nil
}

// sessionFor returns the session the next sets go to: the given one, or the
// open session of the date, or a new one. created reports the latter.
func (s *Service) sessionFor(ctx context.Context, userID, sessionID, date string) (_ *Session, created bool, err error) {
	if sessionID != "" {
		session, err := s.repo.GetSession(ctx, userID, sessionID)
		return session, false, err
	}

	sessions, err := s.repo.ListSessions(ctx, userID, DateFilter{From: date, To: date})
	if err != nil {
		return nil, false, fmt.Errorf("list sessions: %w", err)
	}
	for i := range sessions {
		if !sessions[i].IsCompleted {
			return &sessions[i], false, nil
		}
	}

	session, err := s.CreateSession(ctx, userID, date, "")
	if err != nil {
		return nil, false, fmt.Errorf("create session: %w", err)
	}
	return session, true, nil
}

// LogExercise stores the sets of one exercise. The session is created with
// the first set of the day; totals are recomputed from the stored sets. When
// the totals can not be written, the sets just added are removed again.
func (s *Service) LogExercise(ctx context.Context, userID string, req LogExerciseRequest) (*LogExerciseResult, error) {
	return s.logExercise(ctx, userID, req, (*LogExerciseRequest).Validate)
}

func (s *Service) logExercise(
	ctx context.Context,
	userID string,
	req LogExerciseRequest,
	validate func(*LogExerciseRequest) error,
) (_ *LogExerciseResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.logExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := validate(&req); err != nil {
		return nil, err
	}

	date := NormalizeDate(req.Date)
	if date == "" {
		date = FormatDate(s.now())
	}
	span.SetAttributes(
		attribute.String("exercise", req.ExerciseName),
		attribute.String("date", date),
		attribute.Int("sets", len(req.Sets)),
	)

	session, created, err := s.sessionFor(ctx, userID, req.SessionID, date)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListSets(ctx, userID, SetFilter{
		SessionID:    session.ID,
		ExerciseName: req.ExerciseName,
	})
	if err != nil {
		return nil, fmt.Errorf("list existing sets: %w", err)
	}
	nextNumber := 1
	for _, e := range existing {
		if e.SetNumber >= nextNumber {
			nextNumber = e.SetNumber + 1
		}
	}

	now := s.now()
	rows := make([]ExerciseSet, 0, len(req.Sets))
	for i, entry := range req.Sets {
		rows = append(rows, ExerciseSet{
			UserID:       userID,
			SessionID:    session.ID,
			ExerciseName: req.ExerciseName,
			BodyPart:     req.BodyPart,
			SetNumber:    nextNumber + i,
			Reps:         entry.Reps,
			WeightKg:     entry.Weight,
			Notes:        req.Notes,
			Date:         session.Date,
			CreatedAt:    now,
		})
	}

	added, err := s.repo.AddSets(ctx, rows)
	if err != nil {
		err = fmt.Errorf("add sets: %w", err)
		if created {
			if cleanupErr := s.repo.DeleteSessionAndSets(ctx, userID, session.ID); cleanupErr != nil {
				err = multierr.Append(err, fmt.Errorf("remove new session: %w", cleanupErr))
			}
		}
		return nil, err
	}

	updated, err := s.recomputeTotals(ctx, userID, *session)
	if err != nil {
		err = fmt.Errorf("update session totals: %w", err)
		ids := make([]string, 0, len(added))
		for _, a := range added {
			ids = append(ids, a.ID)
		}
		if cleanupErr := s.repo.DeleteSets(ctx, userID, ids); cleanupErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove added sets: %w", cleanupErr))
		}
		return nil, err
	}

	s.refreshProgress(ctx, userID, req.ExerciseName)
	s.changed(userID)
	if s.metricsManager != nil {
		s.metricsManager.CounterLoggedSets.Add(float64(len(added)))
	}

	return &LogExerciseResult{
		Session: *updated,
		Sets:    added,
	}, nil
}

func (s *Service) recomputeTotals(ctx context.Context, userID string, session Session) (*Session, error) {
	sets, err := s.repo.ListSets(ctx, userID, SetFilter{SessionID: session.ID})
	if err != nil {
		return nil, err
	}

	session.TotalSets, session.TotalReps, session.TotalVolumeKg = SessionTotals(sets)
	session.UpdatedAt = s.now()
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Service) refreshProgress(ctx context.Context, userID, exerciseName string) {
	pt, ok := s.repo.(ProgressTracker)
	if !ok {
		return
	}
	if err := pt.RefreshProgress(ctx, userID, exerciseName); err != nil {
		log.Warnf("refresh progress [%s] for user %s: %s", exerciseName, userID, err)
	}
}

// CompleteSession closes the session: end time, duration and final totals.
func (s *Service) CompleteSession(ctx context.Context, userID, id, notes string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.completeSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.repo.GetSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	end := s.now()
	start := session.CreatedAt
	if session.StartTime != nil {
		start = *session.StartTime
	}
	session.EndTime = &end
	session.DurationMinutes = int(end.Sub(start).Minutes())
	if session.DurationMinutes < 0 {
		session.DurationMinutes = 0
	}
	session.IsCompleted = true
	if notes != "" {
		session.Notes = notes
	}

	completed, err := s.recomputeTotals(ctx, userID, *session)
	if err != nil {
		return nil, err
	}
	s.changed(userID)
	return completed, nil
}

func (s *Service) UpdateSessionDetails(ctx context.Context, userID, id, name, notes string) (*Session, error) {
	session, err := s.repo.GetSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		session.Name = name
	}
	session.Notes = notes
	session.UpdatedAt = s.now()
	if err := s.repo.UpdateSession(ctx, *session); err != nil {
		return nil, err
	}
	s.changed(userID)
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if err := s.repo.DeleteSessionAndSets(ctx, userID, id); err != nil {
		return err
	}
	s.changed(userID)
	return nil
}

// UpdateSet edits reps and weight of one set; the parent totals follow.
func (s *Service) UpdateSet(ctx context.Context, userID, id string, entry SetEntry) (_ *ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.updateSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := ValidateSet(0, entry); err != nil {
		return nil, err
	}

	set, err := s.repo.GetSet(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	set.Reps = entry.Reps
	set.WeightKg = entry.Weight
	if err := s.repo.UpdateSet(ctx, *set); err != nil {
		return nil, err
	}

	if err := s.recomputeSessionTotals(ctx, userID, set.SessionID); err != nil {
		return nil, err
	}
	s.refreshProgress(ctx, userID, set.ExerciseName)
	s.changed(userID)
	return set, nil
}

// DeleteSet removes a single set. Its session stays, even when empty.
func (s *Service) DeleteSet(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	set, err := s.repo.GetSet(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSet(ctx, userID, id); err != nil {
		return err
	}

	if err := s.recomputeSessionTotals(ctx, userID, set.SessionID); err != nil {
		return err
	}
	s.refreshProgress(ctx, userID, set.ExerciseName)
	s.changed(userID)
	return nil
}

func (s *Service) recomputeSessionTotals(ctx context.Context, userID, sessionID string) error {
	session, err := s.repo.GetSession(ctx, userID, sessionID)
	if err != nil {
		return fmt.Errorf("get parent session: %w", err)
	}
	if _, err := s.recomputeTotals(ctx, userID, *session); err != nil {
		return fmt.Errorf("update session totals: %w", err)
	}
	return nil
}

func (s *Service) ListSessions(ctx context.Context, userID string, filter DateFilter) ([]Session, error) {
	return s.repo.ListSessions(ctx, userID, filter)
}

func (s *Service) GetSession(ctx context.Context, userID, id string) (*Session, []ExerciseSet, error) {
	session, err := s.repo.GetSession(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	sets, err := s.repo.ListSets(ctx, userID, SetFilter{SessionID: id})
	if err != nil {
		return nil, nil, err
	}
	return session, sets, nil
}

func (s *Service) ListSets(ctx context.Context, userID string, filter SetFilter) ([]ExerciseSet, error) {
	return s.repo.ListSets(ctx, userID, filter)
}

// Exercises returns the grouped aggregation input for the user.
func (s *Service) Exercises(ctx context.Context, userID string, filter SetFilter) ([]Exercise, error) {
	sets, err := s.repo.ListSets(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return GroupSets(userID, sets), nil
}

func (s *Service) SaveWeight(ctx context.Context, userID string, req WeightRequest) (_ *WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.saveWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	date := NormalizeDate(req.Date)
	if date == "" {
		date = FormatDate(s.now())
	}

	entry, err := s.repo.SaveWeight(ctx, WeightEntry{
		UserID:            userID,
		Date:              date,
		WeightKg:          req.WeightKg,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMassKg:      req.MuscleMassKg,
		Notes:             req.Notes,
	})
	if err != nil {
		return nil, err
	}
	s.changed(userID)
	return entry, nil
}

func (s *Service) ListWeights(ctx context.Context, userID string, filter DateFilter) ([]WeightEntry, error) {
	return s.repo.ListWeights(ctx, userID, filter)
}

func (s *Service) DeleteWeight(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteWeight(ctx, userID, id); err != nil {
		return err
	}
	s.changed(userID)
	return nil
}

// Progress returns personal bests, from the materialized table when the
// store keeps one.
func (s *Service) Progress(ctx context.Context, userID string) ([]ExerciseProgress, error) {
	if pt, ok := s.repo.(ProgressTracker); ok {
		return pt.ListProgress(ctx, userID)
	}
	sets, err := s.repo.ListSets(ctx, userID, SetFilter{})
	if err != nil {
		return nil, err
	}
	return SummarizeProgress(sets), nil
}

// ImportLegacy loads exercise records of either shape, each one logged like a
// fresh exercise on its own date. Bodyweight records with weight 0 are kept;
// records without a name or with negative values are skipped.
func (s *Service) ImportLegacy(ctx context.Context, userID string, records []Exercise) (_ *ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.importLegacy")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("records", len(records)))

	res := &ImportResult{}
	for _, rec := range records {
		_, err := s.logExercise(ctx, userID, LogExerciseRequest{
			Date:         rec.Date,
			ExerciseName: rec.Name,
			BodyPart:     rec.BodyPart,
			Sets:         rec.Sets,
		}, (*LogExerciseRequest).ValidateImported)
		if err != nil {
			if IsValidationError(err) {
				log.Debugf("import legacy, skip record [%s] of %s: %s", rec.ID, rec.Date, err)
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Imported++
	}
	return res, nil
}

// IsNotFound matches every not-found sentinel of the stores.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSetNotFound) ||
		errors.Is(err, ErrWeightNotFound)
}
