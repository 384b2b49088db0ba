// Package local keeps every record as a JSON array under a handful of fixed
// keys of a kv.Store, mirroring what a browser keeps in its local storage.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/gymstats/schedule"
	"github.com/2beens/gymtracker/internal/gymstats/workouts"
	"github.com/2beens/gymtracker/internal/kv"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const (
	KeyExercises = "gym_exercises"
	KeyWeights   = "gym_weights"
	KeyWorkouts  = "gym_workouts"
	KeySessions  = "gym_workout_sessions"
	KeyUsers     = "gym_users"
)

var _ workouts.Repo = (*Store)(nil)

// Store is the local workouts.Repo. A single mutex serializes every
// read-modify-write cycle over the kv keys.
type Store struct {
	kv  kv.Store
	mu  sync.Mutex
	now func() time.Time
}

func NewStore(kvStore kv.Store) *Store {
	return &Store{
		kv:  kvStore,
		now: time.Now,
	}
}

// Init seeds missing keys: empty collections and the default week.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{KeyExercises, KeyWeights, KeySessions, KeyUsers} {
		if _, err := s.kv.Get(ctx, key); errors.Is(err, kv.ErrNotFound) {
			if err := s.kv.Set(ctx, key, []byte("[]")); err != nil {
				return fmt.Errorf("seed %s: %w", key, err)
			}
		} else if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
	}

	if _, err := s.kv.Get(ctx, KeyWorkouts); errors.Is(err, kv.ErrNotFound) {
		return save(ctx, s.kv, KeyWorkouts, schedule.DefaultWeek())
	} else if err != nil {
		return fmt.Errorf("read %s: %w", KeyWorkouts, err)
	}
	return nil
}

// newID builds ids like ex_1704873600000_1b9d6bcd.
func (s *Store) newID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, s.now().UnixMilli(), suffix)
}

// load reads a collection. Malformed content is logged and read as empty, so
// a single broken key never takes the whole store down.
func load[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Errorf("local store, malformed %s, treating as empty: %s", key, err)
		return nil, nil
	}
	return items, nil
}

func save[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (_ *auth.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.getUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := load[auth.User](ctx, s.kv, KeyUsers)
	if err != nil {
		return nil, err
	}
	username = auth.NormalizeUsername(username)
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) (_ *auth.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.createUser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := load[auth.User](ctx, s.kv, KeyUsers)
	if err != nil {
		return nil, err
	}
	user.Username = auth.NormalizeUsername(user.Username)
	for _, u := range users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("user %s already exists", user.Username)
		}
	}

	if user.ID == "" {
		user.ID = s.newID("user")
	}
	now := s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	if err := save(ctx, s.kv, KeyUsers, append(users, user)); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateSession(ctx context.Context, session workouts.Session) (_ *workouts.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.createSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.ID = s.newID("session")
	session.Date = workouts.NormalizeDate(session.Date)
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	if err := save(ctx, s.kv, KeySessions, append(sessions, session)); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) GetSession(ctx context.Context, userID, id string) (*workouts.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		if session.ID == id && session.UserID == userID {
			return &session, nil
		}
	}
	return nil, workouts.ErrSessionNotFound
}

func (s *Store) ListSessions(ctx context.Context, userID string, filter workouts.DateFilter) ([]workouts.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return nil, err
	}

	var res []workouts.Session
	for _, session := range sessions {
		if session.UserID == userID && filter.Match(session.Date) {
			res = append(res, session)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date < res[j].Date
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (s *Store) UpdateSession(ctx context.Context, session workouts.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == session.ID && sessions[i].UserID == session.UserID {
			session.CreatedAt = sessions[i].CreatedAt
			session.UpdatedAt = s.now()
			sessions[i] = session
			return save(ctx, s.kv, KeySessions, sessions)
		}
	}
	return workouts.ErrSessionNotFound
}

// DeleteSessionAndSets removes the session first, then every set pointing at it.
func (s *Store) DeleteSessionAndSets(ctx context.Context, userID, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.deleteSessionAndSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	found := false
	for _, session := range sessions {
		if session.ID == id && session.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		return workouts.ErrSessionNotFound
	}
	if err := save(ctx, s.kv, KeySessions, kept); err != nil {
		return err
	}

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return err
	}
	keptSets := sets[:0]
	for _, set := range sets {
		if set.SessionID == id && set.UserID == userID {
			continue
		}
		keptSets = append(keptSets, set)
	}
	return save(ctx, s.kv, KeyExercises, keptSets)
}

func (s *Store) sessionDates(ctx context.Context, userID string) (map[string]string, error) {
	sessions, err := load[workouts.Session](ctx, s.kv, KeySessions)
	if err != nil {
		return nil, err
	}
	dates := map[string]string{}
	for _, session := range sessions {
		if session.UserID == userID {
			dates[session.ID] = session.Date
		}
	}
	return dates, nil
}

// AddSets appends the sets; each one must belong to a session of its user.
func (s *Store) AddSets(ctx context.Context, newSets []workouts.ExerciseSet) (_ []workouts.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.addSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(newSets) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return nil, err
	}

	dates := map[string]map[string]string{}
	now := s.now()
	added := make([]workouts.ExerciseSet, 0, len(newSets))
	for _, set := range newSets {
		if _, ok := dates[set.UserID]; !ok {
			d, err := s.sessionDates(ctx, set.UserID)
			if err != nil {
				return nil, err
			}
			dates[set.UserID] = d
		}
		date, ok := dates[set.UserID][set.SessionID]
		if !ok {
			return nil, fmt.Errorf("set of [%s]: %w", set.ExerciseName, workouts.ErrSessionNotFound)
		}

		set.ID = s.newID("ex")
		set.Date = date
		if set.CreatedAt.IsZero() {
			set.CreatedAt = now
		}
		added = append(added, set)
	}

	if err := save(ctx, s.kv, KeyExercises, append(sets, added...)); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) GetSet(ctx context.Context, userID, id string) (*workouts.ExerciseSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		if set.ID == id && set.UserID == userID {
			return &set, nil
		}
	}
	return nil, workouts.ErrSetNotFound
}

// ListSets reads the date of every set from its session, the same way the
// remote store joins them.
func (s *Store) ListSets(ctx context.Context, userID string, filter workouts.SetFilter) (_ []workouts.ExerciseSet, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.listSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return nil, err
	}
	dates, err := s.sessionDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	var res []workouts.ExerciseSet
	for _, set := range sets {
		if set.UserID != userID {
			continue
		}
		date, ok := dates[set.SessionID]
		if !ok {
			continue
		}
		set.Date = date
		if filter.Match(set) {
			res = append(res, set)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Date != res[j].Date {
			return res[i].Date < res[j].Date
		}
		if res[i].SessionID != res[j].SessionID {
			return res[i].SessionID < res[j].SessionID
		}
		return res[i].SetNumber < res[j].SetNumber
	})
	return res, nil
}

func (s *Store) UpdateSet(ctx context.Context, set workouts.ExerciseSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return err
	}
	for i := range sets {
		if sets[i].ID == set.ID && sets[i].UserID == set.UserID {
			sets[i].Reps = set.Reps
			sets[i].WeightKg = set.WeightKg
			sets[i].RestSeconds = set.RestSeconds
			sets[i].Notes = set.Notes
			return save(ctx, s.kv, KeyExercises, sets)
		}
	}
	return workouts.ErrSetNotFound
}

func (s *Store) DeleteSet(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return err
	}
	for i := range sets {
		if sets[i].ID == id && sets[i].UserID == userID {
			return save(ctx, s.kv, KeyExercises, append(sets[:i], sets[i+1:]...))
		}
	}
	return workouts.ErrSetNotFound
}

// DeleteSets removes the given sets; unknown ids are ignored.
func (s *Store) DeleteSets(ctx context.Context, userID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}

	sets, err := load[workouts.ExerciseSet](ctx, s.kv, KeyExercises)
	if err != nil {
		return err
	}
	kept := sets[:0]
	for _, set := range sets {
		if set.UserID == userID && remove[set.ID] {
			continue
		}
		kept = append(kept, set)
	}
	return save(ctx, s.kv, KeyExercises, kept)
}

// SaveWeight keeps one entry per user and day; saving again replaces it.
func (s *Store) SaveWeight(ctx context.Context, entry workouts.WeightEntry) (_ *workouts.WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "localStore.saveWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	weights, err := load[workouts.WeightEntry](ctx, s.kv, KeyWeights)
	if err != nil {
		return nil, err
	}

	entry.Date = workouts.NormalizeDate(entry.Date)
	for i := range weights {
		if weights[i].UserID == entry.UserID && weights[i].Date == entry.Date {
			entry.ID = weights[i].ID
			weights[i] = entry
			if err := save(ctx, s.kv, KeyWeights, weights); err != nil {
				return nil, err
			}
			return &entry, nil
		}
	}

	entry.ID = s.newID("weight")
	if err := save(ctx, s.kv, KeyWeights, append(weights, entry)); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) ListWeights(ctx context.Context, userID string, filter workouts.DateFilter) ([]workouts.WeightEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	weights, err := load[workouts.WeightEntry](ctx, s.kv, KeyWeights)
	if err != nil {
		return nil, err
	}

	var res []workouts.WeightEntry
	for _, w := range weights {
		if w.UserID == userID && filter.Match(w.Date) {
			res = append(res, w)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Date < res[j].Date
	})
	return res, nil
}

func (s *Store) DeleteWeight(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	weights, err := load[workouts.WeightEntry](ctx, s.kv, KeyWeights)
	if err != nil {
		return err
	}
	for i := range weights {
		if weights[i].ID == id && weights[i].UserID == userID {
			return save(ctx, s.kv, KeyWeights, append(weights[:i], weights[i+1:]...))
		}
	}
	return workouts.ErrWeightNotFound
}

func (s *Store) ListTemplates(ctx context.Context) ([]workouts.DayTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	templates, err := load[workouts.DayTemplate](ctx, s.kv, KeyWorkouts)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return schedule.DefaultWeek(), nil
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].DayNumber < templates[j].DayNumber
	})
	return templates, nil
}

func (s *Store) SaveTemplates(ctx context.Context, templates []workouts.DayTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s.kv, KeyWorkouts, templates)
}

// ListCatalog serves the built-in catalog; the local store keeps no copy.
func (s *Store) ListCatalog(_ context.Context, bodyPart string) ([]workouts.CatalogExercise, error) {
	return schedule.Catalog(bodyPart), nil
}
