// Package storagetest holds the behavior every storage backend must share.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
	"habits/internal/storage"
)

// RawWriter stores a document body under key, bypassing validation.
// The key "defaults" addresses the template document.
type RawWriter func(t *testing.T, key string, body []byte)

// Factory builds a fresh, empty backend for one test.
type Factory func(t *testing.T) (storage.Store, RawWriter)

// Run exercises a backend against the shared contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("defaults empty when never written", func(t *testing.T) {
		s, _ := newStore(t)
		got, err := s.GetDefaults(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("defaults keep order and duplicates", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		want := []core.DefaultHabitEntry{
			{Name: "Walk", Color: "#abc"},
			{Name: "Read", Color: "#def"},
			{Name: "walk", Color: "#123"},
		}
		require.NoError(t, s.SetDefaults(ctx, want))

		got, err := s.GetDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("defaults are overwritten whole", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SetDefaults(ctx, []core.DefaultHabitEntry{{Name: "A"}, {Name: "B"}}))
		require.NoError(t, s.SetDefaults(ctx, []core.DefaultHabitEntry{{Name: "C"}}))

		got, err := s.GetDefaults(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.DefaultHabitEntry{{Name: "C"}}, got)
	})

	t.Run("missing month is reported absent", func(t *testing.T) {
		s, _ := newStore(t)
		_, ok, err := s.LoadMonth(context.Background(), "2024-05")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("month round trip", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		want := sampleRecord("2024-05")
		require.NoError(t, s.SaveMonth(ctx, "2024-05", want))

		got, ok, err := s.LoadMonth(ctx, "2024-05")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("month overwrite replaces the document", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SaveMonth(ctx, "2024-05", sampleRecord("2024-05")))

		replacement := core.NewMonthRecord("2024-05")
		replacement.Reflection.Mood = "tired"
		require.NoError(t, s.SaveMonth(ctx, "2024-05", replacement))

		got, _, err := s.LoadMonth(ctx, "2024-05")
		require.NoError(t, err)
		assert.Equal(t, replacement, got)
	})

	t.Run("stored month id follows the key", func(t *testing.T) {
		s, _ := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.SaveMonth(ctx, "2024-06", sampleRecord("1999-01")))

		got, _, err := s.LoadMonth(ctx, "2024-06")
		require.NoError(t, err)
		assert.Equal(t, core.MonthID("2024-06"), got.MonthID)
	})

	t.Run("invalid month id is rejected on save", func(t *testing.T) {
		s, _ := newStore(t)
		err := s.SaveMonth(context.Background(), "../x", core.NewMonthRecord("../x"))
		assert.ErrorIs(t, err, core.ErrInvalidMonthID)
	})

	t.Run("list returns saved months ascending and skips foreign keys", func(t *testing.T) {
		s, raw := newStore(t)
		ctx := context.Background()
		for _, id := range []core.MonthID{"2024-03", "2023-11", "2024-01"} {
			require.NoError(t, s.SaveMonth(ctx, id, core.NewMonthRecord(id)))
		}
		raw(t, "notes", []byte(`{}`))
		raw(t, "2024-13", []byte(`{}`))

		ids, err := s.ListMonthIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.MonthID{"2023-11", "2024-01", "2024-03"}, ids)
	})

	t.Run("malformed month surfaces a malformed record error", func(t *testing.T) {
		s, raw := newStore(t)
		raw(t, "2024-02", []byte(`{"habits": [`))

		_, _, err := s.LoadMonth(context.Background(), "2024-02")
		var malformed *core.MalformedRecordError
		require.True(t, errors.As(err, &malformed), "got %v", err)
		assert.Equal(t, "2024-02", malformed.Key)
	})

	t.Run("malformed defaults surface a malformed record error", func(t *testing.T) {
		s, raw := newStore(t)
		raw(t, storage.DefaultsKey, []byte(`not json`))

		_, err := s.GetDefaults(context.Background())
		var malformed *core.MalformedRecordError
		assert.True(t, errors.As(err, &malformed), "got %v", err)
	})
}

func sampleRecord(id core.MonthID) core.MonthRecord {
	r := core.NewMonthRecord(id)
	r.AddHabit(core.Habit{ID: "h-1", Name: "Walk", Color: "#abc", CreatedAt: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)})
	r.AddHabit(core.Habit{ID: "h-2", Name: "Read", Color: "#def", CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)})
	r.DailyLogs["1"] = []string{"h-1", "h-2"}
	r.DailyLogs["5"] = []string{"gone"}
	r.Reflection = core.Reflection{Summary: "solid month", Mood: "good"}
	return r
}
