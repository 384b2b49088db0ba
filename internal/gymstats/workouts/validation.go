package workouts

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports user input that can not be stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidateSet rejects non-positive reps and weights.
func ValidateSet(i int, s SetEntry) error {
	if s.Reps <= 0 {
		return &ValidationError{Field: fmt.Sprintf("sets[%d].reps", i), Message: "must be positive"}
	}
	if s.Weight <= 0 {
		return &ValidationError{Field: fmt.Sprintf("sets[%d].weight", i), Message: "must be positive"}
	}
	return nil
}

func validateDate(field, date string) error {
	if date == "" {
		return nil
	}
	if _, err := ParseDate(date); err != nil {
		return &ValidationError{Field: field, Message: "expected YYYY-MM-DD"}
	}
	return nil
}

type LogExerciseRequest struct {
	SessionID    string     `json:"sessionId,omitempty"`
	Date         string     `json:"date,omitempty"`
	ExerciseName string     `json:"exerciseName"`
	BodyPart     string     `json:"bodyPart"`
	Sets         []SetEntry `json:"sets"`
	Notes        string     `json:"notes,omitempty"`
}

// ValidateStoredSet accepts what a store may hold: bodyweight sets with
// weight 0 and sets with 0 reps, but no negative values.
func ValidateStoredSet(i int, s SetEntry) error {
	if s.Reps < 0 {
		return &ValidationError{Field: fmt.Sprintf("sets[%d].reps", i), Message: "must not be negative"}
	}
	if s.Weight < 0 {
		return &ValidationError{Field: fmt.Sprintf("sets[%d].weight", i), Message: "must not be negative"}
	}
	return nil
}

// Validate checks sets entered by the user.
func (r *LogExerciseRequest) Validate() error {
	return r.validate(ValidateSet)
}

// ValidateImported checks records loaded from older exports, which keep
// bodyweight exercises with weight 0.
func (r *LogExerciseRequest) ValidateImported() error {
	return r.validate(ValidateStoredSet)
}

func (r *LogExerciseRequest) validate(checkSet func(int, SetEntry) error) error {
	r.ExerciseName = strings.TrimSpace(r.ExerciseName)
	r.BodyPart = strings.ToLower(strings.TrimSpace(r.BodyPart))

	if r.ExerciseName == "" {
		return &ValidationError{Field: "exerciseName", Message: "empty"}
	}
	if r.BodyPart == "" {
		return &ValidationError{Field: "bodyPart", Message: "empty"}
	}
	if len(r.Sets) == 0 {
		return &ValidationError{Field: "sets", Message: "at least one set required"}
	}
	for i, s := range r.Sets {
		if err := checkSet(i, s); err != nil {
			return err
		}
	}
	return validateDate("date", r.Date)
}

type WeightRequest struct {
	Date              string   `json:"date,omitempty"`
	WeightKg          float64  `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg      *float64 `json:"muscleMassKg,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

func (r *WeightRequest) Validate() error {
	if r.WeightKg <= 0 {
		return &ValidationError{Field: "weight", Message: "must be positive"}
	}
	return validateDate("date", r.Date)
}
