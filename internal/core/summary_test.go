package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	r := NewMonthRecord("2024-04")
	r.AddHabit(Habit{ID: "a", Name: "Read", Color: "#111"})
	r.AddHabit(Habit{ID: "b", Name: "Walk", Color: "#222"})
	r.DailyLogs["1"] = []string{"a", "b"}
	r.DailyLogs["2"] = []string{"a"}
	r.DailyLogs["3"] = []string{"ghost"}

	s := Summarize(r)

	assert.Equal(t, MonthID("2024-04"), s.MonthID)
	assert.Equal(t, 30, s.DaysInMonth)
	assert.Equal(t, []HabitCompletion{
		{HabitID: "a", Name: "Read", Color: "#111", DaysCompleted: 2},
		{HabitID: "b", Name: "Walk", Color: "#222", DaysCompleted: 1},
	}, s.Habits)
}

func TestRandomColorComesFromPalette(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Contains(t, Palette, RandomColor())
	}
}
