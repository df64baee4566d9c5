package core

// HabitCompletion is the number of days a habit was completed in a month.
type HabitCompletion struct {
	HabitID       string `json:"habitId"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	DaysCompleted int    `json:"daysCompleted"`
}

// MonthSummary is a compact per-habit view of a month record.
type MonthSummary struct {
	MonthID     MonthID           `json:"monthId"`
	DaysInMonth int               `json:"daysInMonth"`
	Habits      []HabitCompletion `json:"habits"`
}

// Summarize counts, for every habit in the record, the days whose log contains it.
func Summarize(r MonthRecord) MonthSummary {
	s := MonthSummary{
		MonthID:     r.MonthID,
		DaysInMonth: r.MonthID.DaysInMonth(),
		Habits:      make([]HabitCompletion, 0, len(r.Habits)),
	}
	for _, h := range r.Habits {
		count := 0
		for _, ids := range r.DailyLogs {
			for _, id := range ids {
				if id == h.ID {
					count++
					break
				}
			}
		}
		s.Habits = append(s.Habits, HabitCompletion{
			HabitID:       h.ID,
			Name:          h.Name,
			Color:         h.Color,
			DaysCompleted: count,
		})
	}
	return s
}
