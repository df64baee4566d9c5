package core

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewHabit creates a habit with a fresh random id. The name is kept as given.
func NewHabit(name, color string, now time.Time) Habit {
	return Habit{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now.UTC(),
	}
}

// AddHabit appends h to the record.
func (r *MonthRecord) AddHabit(h Habit) {
	r.Habits = append(r.Habits, h)
}

// DeleteHabit removes the habit with the given id and reports whether it was
// present. Log entries referencing the id are left in place.
func (r *MonthRecord) DeleteHabit(id string) bool {
	kept := make([]Habit, 0, len(r.Habits))
	for _, h := range r.Habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	removed := len(kept) != len(r.Habits)
	r.Habits = kept
	return removed
}

// ToggleHabit flips the completion of habitID on day and reports whether the
// habit is now marked as done.
func (r *MonthRecord) ToggleHabit(day int, habitID string) (bool, error) {
	if day < 1 || day > r.MonthID.DaysInMonth() {
		return false, ErrInvalidDay
	}
	if r.DailyLogs == nil {
		r.DailyLogs = DailyLogs{}
	}
	key := strconv.Itoa(day)
	ids := r.DailyLogs[key]
	for i, id := range ids {
		if id == habitID {
			rest := append(append([]string{}, ids[:i]...), ids[i+1:]...)
			if len(rest) == 0 {
				delete(r.DailyLogs, key)
			} else {
				r.DailyLogs[key] = rest
			}
			return false, nil
		}
	}
	r.DailyLogs[key] = append(append([]string{}, ids...), habitID)
	return true, nil
}

// IsDone reports whether habitID is logged on day.
func (l DailyLogs) IsDone(day int, habitID string) bool {
	for _, id := range l[strconv.Itoa(day)] {
		if id == habitID {
			return true
		}
	}
	return false
}

// SetReflectionField updates "summary" or "mood".
func (r *MonthRecord) SetReflectionField(field, value string) error {
	switch field {
	case "summary":
		r.Reflection.Summary = value
	case "mood":
		r.Reflection.Mood = value
	default:
		return ErrInvalidReflectionField
	}
	return nil
}
