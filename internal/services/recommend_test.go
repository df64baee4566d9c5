package services

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
	"habits/internal/metrics"
	"habits/internal/storage"
	"habits/internal/storage/memory"
)

func saveMonthWith(t *testing.T, s *memory.Store, id core.MonthID, habits ...core.Habit) {
	t.Helper()
	r := core.NewMonthRecord(id)
	for _, h := range habits {
		r.AddHabit(h)
	}
	require.NoError(t, s.SaveMonth(context.Background(), id, r))
}

func habit(id, name, color string) core.Habit {
	return core.Habit{ID: id, Name: name, Color: color, CreatedAt: may2024}
}

func TestRecommend_ExcludesTemplatesCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.SetDefaults(ctx, []core.DefaultHabitEntry{{Name: "Walk", Color: "#000"}}))
	saveMonthWith(t, s, "2024-01", habit("1", "walk", "#111"), habit("2", "Stretch", "#222"))
	saveMonthWith(t, s, "2024-02", habit("3", "WALK", "#333"))
	saveMonthWith(t, s, "2024-03", habit("4", "Walk", "#444"))

	got := NewRecommender(s, s, 2).Recommend(ctx)
	assert.Equal(t, []core.RecommendationCandidate{{Name: "Stretch", Color: "#222"}}, got)
}

func TestRecommend_DeduplicatesAndLatestMonthWins(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	saveMonthWith(t, s, "2024-03", habit("3", "READ", "#333"))
	saveMonthWith(t, s, "2023-12", habit("1", "read", "#111"), habit("2", "Journal", "#999"))
	saveMonthWith(t, s, "2024-01", habit("4", "Read", "#222"))

	got := NewRecommender(s, s, 3).Recommend(ctx)
	assert.Equal(t, []core.RecommendationCandidate{
		{Name: "Journal", Color: "#999"},
		{Name: "READ", Color: "#333"},
	}, got)
}

func TestRecommend_DeterministicAcrossConcurrency(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	for i, id := range []core.MonthID{"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06"} {
		saveMonthWith(t, s, id, habit(string(id), "Yoga", core.Palette[i]))
	}

	for _, n := range []int{1, 2, 8} {
		got := NewRecommender(s, s, n).Recommend(ctx)
		assert.Equal(t, []core.RecommendationCandidate{{Name: "Yoga", Color: core.Palette[5]}}, got, "concurrency %d", n)
	}
}

func TestRecommend_SkipsCorruptedMonth(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	saveMonthWith(t, s, "2024-01", habit("1", "Run", "#111"))
	s.PutRaw("2024-02", []byte(`{"habits": "nope"`))
	saveMonthWith(t, s, "2024-03", habit("2", "Swim", "#222"))

	before := testutil.ToFloat64(metrics.RecommendationSkippedRecords)
	got := NewRecommender(s, s, 4).Recommend(ctx)

	assert.Equal(t, []core.RecommendationCandidate{
		{Name: "Run", Color: "#111"},
		{Name: "Swim", Color: "#222"},
	}, got)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RecommendationSkippedRecords))
}

func TestRecommend_UnreadableTemplatesYieldEmpty(t *testing.T) {
	s := memory.New()
	saveMonthWith(t, s, "2024-01", habit("1", "Run", "#111"))
	s.PutRaw(storage.DefaultsKey, []byte("nope"))

	got := NewRecommender(s, s, 4).Recommend(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommend_NoMonths(t *testing.T) {
	s := memory.New()
	got := NewRecommender(s, s, 0).Recommend(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommend_IgnoresBlankNames(t *testing.T) {
	s := memory.New()
	saveMonthWith(t, s, "2024-01", habit("1", "  ", "#111"), habit("2", "Tea", "#222"))

	got := NewRecommender(s, s, 1).Recommend(context.Background())
	assert.Equal(t, []core.RecommendationCandidate{{Name: "Tea", Color: "#222"}}, got)
}

func TestRecommend_KeysOnExactLowerCasedName(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.SetDefaults(ctx, []core.DefaultHabitEntry{{Name: "Read ", Color: "#000"}}))
	saveMonthWith(t, s, "2024-01",
		habit("1", "Read ", "#111"),
		habit("2", " Read", "#222"),
		habit("3", "read", "#333"),
	)

	got := NewRecommender(s, s, 1).Recommend(ctx)
	assert.Equal(t, []core.RecommendationCandidate{
		{Name: " Read", Color: "#222"},
		{Name: "read", Color: "#333"},
	}, got)
}
