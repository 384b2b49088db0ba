package diet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/kv"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const (
	WaterStepLiters = 0.25
	WaterGoalLiters = 4.0
)

var ErrUnknownMeal = errors.New("unknown meal")

// DayLog is the diet progress of one user on one day.
type DayLog struct {
	Date           string   `json:"date"`
	WaterLiters    float64  `json:"waterLiters"`
	CompletedMeals []string `json:"completedMeals"`
}

func (d *DayLog) IsCompleted(meal string) bool {
	for _, m := range d.CompletedMeals {
		if m == meal {
			return true
		}
	}
	return false
}

// Tracker keeps one DayLog per user and date in the kv store.
type Tracker struct {
	store kv.Store
	mu    sync.Mutex
}

func NewTracker(store kv.Store) *Tracker {
	return &Tracker{store: store}
}

func dayKey(userID, date string) string {
	return fmt.Sprintf("gym_diet_%s_%s", userID, date)
}

func (t *Tracker) load(ctx context.Context, userID, date string) (*DayLog, error) {
	day := &DayLog{Date: date, CompletedMeals: []string{}}
	raw, err := t.store.Get(ctx, dayKey(userID, date))
	if errors.Is(err, kv.ErrNotFound) {
		return day, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read diet day %s: %w", date, err)
	}
	if err := json.Unmarshal(raw, day); err != nil {
		log.Warnf("malformed diet day %s of %s, starting over: %s", date, userID, err)
		return &DayLog{Date: date, CompletedMeals: []string{}}, nil
	}
	if day.CompletedMeals == nil {
		day.CompletedMeals = []string{}
	}
	return day, nil
}

func (t *Tracker) save(ctx context.Context, userID string, day *DayLog) error {
	raw, err := json.Marshal(day)
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, dayKey(userID, day.Date), raw); err != nil {
		return fmt.Errorf("save diet day %s: %w", day.Date, err)
	}
	return nil
}

// update runs a read-modify-write cycle on one day.
func (t *Tracker) update(ctx context.Context, userID, date string, fn func(*DayLog) error) (*DayLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := t.load(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if err := fn(day); err != nil {
		return nil, err
	}
	if err := t.save(ctx, userID, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (t *Tracker) Day(ctx context.Context, userID, date string) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diet.day")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx, userID, date)
}

// AddWater adds one glass, capped at the daily goal.
func (t *Tracker) AddWater(ctx context.Context, userID, date string) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diet.addWater")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return t.update(ctx, userID, date, func(day *DayLog) error {
		day.WaterLiters = math.Min(day.WaterLiters+WaterStepLiters, WaterGoalLiters)
		return nil
	})
}

func (t *Tracker) ResetWater(ctx context.Context, userID, date string) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diet.resetWater")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return t.update(ctx, userID, date, func(day *DayLog) error {
		day.WaterLiters = 0
		return nil
	})
}

// ToggleMeal marks the meal done, or undone when it already was.
func (t *Tracker) ToggleMeal(ctx context.Context, userID, date, meal string) (_ *DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "diet.toggleMeal")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !IsMeal(meal) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMeal, meal)
	}
	return t.update(ctx, userID, date, func(day *DayLog) error {
		if day.IsCompleted(meal) {
			kept := []string{}
			for _, m := range day.CompletedMeals {
				if m != meal {
					kept = append(kept, m)
				}
			}
			day.CompletedMeals = kept
		} else {
			day.CompletedMeals = append(day.CompletedMeals, meal)
		}
		return nil
	})
}
