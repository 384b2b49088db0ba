package workouts

import (
	"encoding/json"
	"time"
)

// DateLayout is the day granularity every record date is stored with.
const DateLayout = "2006-01-02"

// SetEntry is one performed set: reps at a weight in kilograms.
type SetEntry struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func (s SetEntry) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

type Session struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Date            string     `json:"date"`
	Name            string     `json:"name,omitempty"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes,omitempty"`
	TotalSets       int        `json:"totalSets"`
	TotalReps       int        `json:"totalReps"`
	TotalVolumeKg   float64    `json:"totalVolumeKg"`
	Notes           string     `json:"notes,omitempty"`
	IsCompleted     bool       `json:"isCompleted"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ExerciseSet is the stored row of a single set.
type ExerciseSet struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	SessionID    string    `json:"sessionId"`
	ExerciseName string    `json:"exerciseName"`
	BodyPart     string    `json:"bodyPart"`
	SetNumber    int       `json:"setNumber"`
	Reps         int       `json:"reps"`
	WeightKg     float64   `json:"weightKg"`
	RestSeconds  int       `json:"restSeconds,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s ExerciseSet) Volume() float64 {
	return float64(s.Reps) * s.WeightKg
}

type WeightEntry struct {
	ID                string   `json:"id"`
	UserID            string   `json:"userId"`
	Date              string   `json:"date"`
	WeightKg          float64  `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg      *float64 `json:"muscleMassKg,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// DayTemplate is one day of the static weekly schedule.
type DayTemplate struct {
	Day       string   `json:"day"`
	DayNumber int      `json:"dayNumber"`
	Focus     string   `json:"focus"`
	WarmUp    []string `json:"warmUp"`
	Exercises []string `json:"exercises"`
	CoolDown  []string `json:"coolDown"`
}

type CatalogExercise struct {
	Name            string `json:"name"`
	BodyPart        string `json:"bodyPart"`
	Category        string `json:"category,omitempty"`
	DifficultyLevel string `json:"difficultyLevel,omitempty"`
	Equipment       string `json:"equipment,omitempty"`
}

// ExerciseProgress is the per user and exercise personal-best summary.
type ExerciseProgress struct {
	ExerciseName      string  `json:"exerciseName"`
	MaxWeightKg       float64 `json:"maxWeightKg"`
	MaxReps           int     `json:"maxReps"`
	TotalVolumeKg     float64 `json:"totalVolumeKg"`
	TotalSessions     int     `json:"totalSessions"`
	LastPerformedDate string  `json:"lastPerformedDate"`
	PersonalBestDate  string  `json:"personalBestDate"`
}

// Exercise is one exercise performed in one session, with all of its sets.
// It is the input of every aggregation.
type Exercise struct {
	ID        string     `json:"id"`
	User      string     `json:"user"`
	SessionID string     `json:"sessionId,omitempty"`
	Date      string     `json:"date"`
	BodyPart  string     `json:"bodyPart"`
	Name      string     `json:"name"`
	Sets      []SetEntry `json:"sets"`
}

// exerciseJSON accepts both the list-of-sets shape and the legacy one with a
// single flat reps/weight pair and an exerciseName field.
type exerciseJSON struct {
	ID           string     `json:"id"`
	User         string     `json:"user"`
	SessionID    string     `json:"sessionId,omitempty"`
	Date         string     `json:"date"`
	BodyPart     string     `json:"bodyPart"`
	Name         string     `json:"name,omitempty"`
	ExerciseName string     `json:"exerciseName,omitempty"`
	Sets         []SetEntry `json:"sets"`
	Reps         *int       `json:"reps,omitempty"`
	Weight       *float64   `json:"weight,omitempty"`
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	var raw exerciseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = Exercise{
		ID:        raw.ID,
		User:      raw.User,
		SessionID: raw.SessionID,
		Date:      NormalizeDate(raw.Date),
		BodyPart:  raw.BodyPart,
		Name:      raw.Name,
		Sets:      raw.Sets,
	}
	if e.Name == "" {
		e.Name = raw.ExerciseName
	}
	if len(e.Sets) == 0 && (raw.Reps != nil || raw.Weight != nil) {
		var entry SetEntry
		if raw.Reps != nil {
			entry.Reps = *raw.Reps
		}
		if raw.Weight != nil {
			entry.Weight = *raw.Weight
		}
		e.Sets = []SetEntry{entry}
	}

	return nil
}

// MarshalJSON always writes the canonical sets list; reps and weight are the
// first set, kept for older readers.
func (e Exercise) MarshalJSON() ([]byte, error) {
	raw := exerciseJSON{
		ID:        e.ID,
		User:      e.User,
		SessionID: e.SessionID,
		Date:      e.Date,
		BodyPart:  e.BodyPart,
		Name:      e.Name,
		Sets:      e.Sets,
	}
	if raw.Sets == nil {
		raw.Sets = []SetEntry{}
	}
	if len(e.Sets) > 0 {
		reps, weight := e.Sets[0].Reps, e.Sets[0].Weight
		raw.Reps = &reps
		raw.Weight = &weight
	}
	return json.Marshal(raw)
}

func (e Exercise) TotalReps() int {
	total := 0
	for _, s := range e.Sets {
		total += s.Reps
	}
	return total
}

func (e Exercise) Volume() float64 {
	total := 0.0
	for _, s := range e.Sets {
		total += s.Volume()
	}
	return total
}

func (e Exercise) MaxWeight() float64 {
	maxWeight := 0.0
	for _, s := range e.Sets {
		if s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}
	return maxWeight
}

// NormalizeDate cuts timestamps down to their YYYY-MM-DD day.
func NormalizeDate(date string) string {
	if len(date) > len(DateLayout) && date[len(DateLayout)] == 'T' {
		return date[:len(DateLayout)]
	}
	return date
}

func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, NormalizeDate(date))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
