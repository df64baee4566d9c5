package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

func TestBuildMonthGrid(t *testing.T) {
	r := core.NewMonthRecord("2024-02")
	r.AddHabit(core.Habit{ID: "w", Name: "Walk", Color: "#abc"})
	r.AddHabit(core.Habit{ID: "r", Name: "Read", Color: "#def"})
	r.DailyLogs["1"] = []string{"w"}
	r.DailyLogs["29"] = []string{"w", "r"}
	r.DailyLogs["3"] = []string{"deleted-habit"}
	r.Reflection = core.Reflection{Summary: "good", Mood: " ok "}

	grid := BuildMonthGrid(r)
	require.Len(t, grid, 6)

	header := grid[0]
	require.Len(t, header, 29+3)
	assert.Equal(t, "Habit", header[0])
	assert.Equal(t, "1", header[2])
	assert.Equal(t, "29", header[30])
	assert.Equal(t, "Total", header[31])

	walk := grid[1]
	assert.Equal(t, "Walk", walk[0])
	assert.Equal(t, "#abc", walk[1])
	assert.Equal(t, "x", walk[2])
	assert.Equal(t, "", walk[3])
	assert.Equal(t, "x", walk[30])
	assert.Equal(t, 2, walk[31])

	read := grid[2]
	assert.Equal(t, 1, read[31])

	assert.Empty(t, grid[3])
	assert.Equal(t, []any{"Summary", "good"}, grid[4])
	assert.Equal(t, []any{"Mood", "ok"}, grid[5])
}

func TestBuildMonthGrid_NoHabits(t *testing.T) {
	grid := BuildMonthGrid(core.NewMonthRecord("2024-04"))
	require.Len(t, grid, 4)
	assert.Len(t, grid[0], 30+3)
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'2024-05'!A1", sheetRange("2024-05", "A1"))
	assert.Equal(t, "'Bob''s'!A:AH", sheetRange("Bob's", "A:AH"))
}
