package google

import (
	"strconv"
	"strings"

	"habits/internal/core"
)

const doneMark = "x"

// BuildMonthGrid lays a month record out as rows of cells:
//
//	Habit | Color | 1 | 2 | ... | N | Total
//
// followed by one row per habit and two reflection rows. N is the number of
// days in the month.
func BuildMonthGrid(r core.MonthRecord) [][]any {
	days := r.MonthID.DaysInMonth()

	header := make([]any, 0, days+3)
	header = append(header, "Habit", "Color")
	for d := 1; d <= days; d++ {
		header = append(header, strconv.Itoa(d))
	}
	header = append(header, "Total")

	rows := [][]any{header}
	for _, h := range r.Habits {
		row := make([]any, 0, days+3)
		row = append(row, h.Name, h.Color)
		total := 0
		for d := 1; d <= days; d++ {
			if r.DailyLogs.IsDone(d, h.ID) {
				row = append(row, doneMark)
				total++
			} else {
				row = append(row, "")
			}
		}
		row = append(row, total)
		rows = append(rows, row)
	}

	rows = append(rows,
		[]any{},
		[]any{"Summary", strings.TrimSpace(r.Reflection.Summary)},
		[]any{"Mood", strings.TrimSpace(r.Reflection.Mood)},
	)
	return rows
}

// sheetRange quotes title for A1 notation.
func sheetRange(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}
