package workouts

import (
	"context"
	"errors"

	"github.com/2beens/gymtracker/internal/auth"
)

//go:generate mockgen -source=$GOFILE -destination=repo_mocks_test.go -package=workouts_test

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrSetNotFound     = errors.New("exercise set not found")
	ErrWeightNotFound  = errors.New("weight entry not found")
)

// DateFilter is an inclusive YYYY-MM-DD range; empty bounds are open.
type DateFilter struct {
	From string
	To   string
}

func (f DateFilter) Match(date string) bool {
	date = NormalizeDate(date)
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}

// SetFilter narrows exercise sets. Date, From and To refer to the date of
// the owning session.
type SetFilter struct {
	SessionID    string
	Date         string
	From         string
	To           string
	ExerciseName string
	BodyPart     string
}

func (f SetFilter) Match(s ExerciseSet) bool {
	if f.SessionID != "" && s.SessionID != f.SessionID {
		return false
	}
	if f.Date != "" && NormalizeDate(s.Date) != f.Date {
		return false
	}
	if f.ExerciseName != "" && s.ExerciseName != f.ExerciseName {
		return false
	}
	if f.BodyPart != "" && s.BodyPart != f.BodyPart {
		return false
	}
	return DateFilter{From: f.From, To: f.To}.Match(s.Date)
}

// Repo is the storage contract both adapters implement. Every call is
// scoped to the owning user.
type Repo interface {
	auth.UserStore

	CreateSession(ctx context.Context, session Session) (*Session, error)
	GetSession(ctx context.Context, userID, id string) (*Session, error)
	ListSessions(ctx context.Context, userID string, filter DateFilter) ([]Session, error)
	UpdateSession(ctx context.Context, session Session) error
	DeleteSessionAndSets(ctx context.Context, userID, id string) error

	AddSets(ctx context.Context, sets []ExerciseSet) ([]ExerciseSet, error)
	GetSet(ctx context.Context, userID, id string) (*ExerciseSet, error)
	ListSets(ctx context.Context, userID string, filter SetFilter) ([]ExerciseSet, error)
	UpdateSet(ctx context.Context, set ExerciseSet) error
	DeleteSet(ctx context.Context, userID, id string) error
	DeleteSets(ctx context.Context, userID string, ids []string) error

	SaveWeight(ctx context.Context, entry WeightEntry) (*WeightEntry, error)
	ListWeights(ctx context.Context, userID string, filter DateFilter) ([]WeightEntry, error)
	DeleteWeight(ctx context.Context, userID, id string) error

	ListTemplates(ctx context.Context) ([]DayTemplate, error)
	SaveTemplates(ctx context.Context, templates []DayTemplate) error
	ListCatalog(ctx context.Context, bodyPart string) ([]CatalogExercise, error)
}

// ProgressTracker is implemented by stores that keep a materialized
// personal-best table.
type ProgressTracker interface {
	RefreshProgress(ctx context.Context, userID, exerciseName string) error
	ListProgress(ctx context.Context, userID string) ([]ExerciseProgress, error)
}
