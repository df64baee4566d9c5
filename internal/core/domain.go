package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Habit is a habit tracked inside a single month.
	Habit struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Color     string    `json:"color"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// DefaultHabitEntry is one row of the template list used to seed new months.
	DefaultHabitEntry struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	// Reflection is the free-text note attached to a month.
	Reflection struct {
		Summary string `json:"summary"`
		Mood    string `json:"mood"`
	}

	// DailyLogs maps a day number ("1".."31") to the ids of habits completed that day.
	DailyLogs map[string][]string

	// MonthRecord is the whole document stored per month.
	MonthRecord struct {
		MonthID    MonthID    `json:"monthId"`
		Habits     []Habit    `json:"habits"`
		DailyLogs  DailyLogs  `json:"dailyLogs"`
		Reflection Reflection `json:"reflection"`
	}

	// RecommendationCandidate is a habit seen in past months but missing from the templates.
	RecommendationCandidate struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
)

const maxNameLength = 100

var (
	ErrHabitNameRequired      = errors.New("habit name is required")
	ErrHabitNameTooLong       = errors.New("habit name too long (max 100 characters)")
	ErrInvalidDay             = errors.New("invalid day")
	ErrInvalidReflectionField = errors.New("invalid reflection field")
	ErrIndexOutOfRange        = errors.New("index out of range")
)

// ValidateHabitName checks a user supplied habit name.
func ValidateHabitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitNameRequired
	}
	if len(name) > maxNameLength {
		return ErrHabitNameTooLong
	}
	return nil
}

func (d DefaultHabitEntry) Validate() error {
	return ValidateHabitName(d.Name)
}

// NewMonthRecord returns an empty record with non-nil collections.
func NewMonthRecord(id MonthID) MonthRecord {
	return MonthRecord{
		MonthID:   id,
		Habits:    []Habit{},
		DailyLogs: DailyLogs{},
	}
}

// Normalize replaces nil collections with empty ones so the record
// encodes as [] and {} rather than null.
func (r *MonthRecord) Normalize() {
	if r.Habits == nil {
		r.Habits = []Habit{}
	}
	if r.DailyLogs == nil {
		r.DailyLogs = DailyLogs{}
	}
}

// Clone returns a deep copy of the record.
func (r MonthRecord) Clone() MonthRecord {
	out := MonthRecord{
		MonthID:    r.MonthID,
		Habits:     append([]Habit{}, r.Habits...),
		DailyLogs:  make(DailyLogs, len(r.DailyLogs)),
		Reflection: r.Reflection,
	}
	for day, ids := range r.DailyLogs {
		out.DailyLogs[day] = append([]string{}, ids...)
	}
	return out
}
