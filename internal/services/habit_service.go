// Package services holds the habit engine: seeding, recommendations and the
// month/template operations used by the HTTP API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"habits/internal/core"
	"habits/internal/metrics"
	"habits/internal/storage"
)

// EventPublisher announces that a month document was written.
type EventPublisher interface {
	PublishMonthSaved(ctx context.Context, id core.MonthID) error
}

// ServiceConfig holds optional knobs for HabitService.
type ServiceConfig struct {
	// Clock drives seeding and habit timestamps (default: time.Now)
	Clock Clock

	// RecommendConcurrency bounds parallel month loads in the scan (default: 4)
	RecommendConcurrency int
}

func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Clock:                time.Now,
		RecommendConcurrency: defaultRecommendConcurrency,
	}
}

// HabitService orchestrates template and month operations over a Store and
// announces writes through an optional EventPublisher.
type HabitService struct {
	store       storage.Store
	publisher   EventPublisher
	seeding     *SeedingPolicy
	recommender *Recommender
	now         Clock
}

// NewHabitService wires the engine. publisher may be nil.
func NewHabitService(store storage.Store, publisher EventPublisher, cfg ServiceConfig) *HabitService {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &HabitService{
		store:       store,
		publisher:   publisher,
		seeding:     NewSeedingPolicy(store, cfg.Clock),
		recommender: NewRecommender(store, store, cfg.RecommendConcurrency),
		now:         cfg.Clock,
	}
}

func (s *HabitService) GetDefaults(ctx context.Context) ([]core.DefaultHabitEntry, error) {
	defaults, err := s.store.GetDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("get defaults: %w", err)
	}
	return defaults, nil
}

// SetDefaults replaces the whole template list.
func (s *HabitService) SetDefaults(ctx context.Context, defaults []core.DefaultHabitEntry) error {
	for i, d := range defaults {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("default %d: %w", i, err)
		}
	}
	if defaults == nil {
		defaults = []core.DefaultHabitEntry{}
	}
	if err := s.store.SetDefaults(ctx, defaults); err != nil {
		return fmt.Errorf("set defaults: %w", err)
	}
	slog.InfoContext(ctx, "Defaults replaced", "count", len(defaults))
	return nil
}

// AddDefault appends one template entry and returns the new list.
func (s *HabitService) AddDefault(ctx context.Context, entry core.DefaultHabitEntry) ([]core.DefaultHabitEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Color == "" {
		entry.Color = core.RandomColor()
	}

	defaults, err := s.GetDefaults(ctx)
	if err != nil {
		return nil, err
	}
	defaults = append(defaults, entry)
	if err := s.SetDefaults(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

// DeleteDefault removes the template entry at index and returns the new list.
func (s *HabitService) DeleteDefault(ctx context.Context, index int) ([]core.DefaultHabitEntry, error) {
	defaults, err := s.GetDefaults(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(defaults) {
		return nil, fmt.Errorf("%w: %d", core.ErrIndexOutOfRange, index)
	}
	defaults = append(defaults[:index:index], defaults[index+1:]...)
	if err := s.SetDefaults(ctx, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}

func (s *HabitService) Recommendations(ctx context.Context) []core.RecommendationCandidate {
	return s.recommender.Recommend(ctx)
}

// GetMonth returns the stored record for id or, when none exists, a seeded one
// that is not written back.
func (s *HabitService) GetMonth(ctx context.Context, id core.MonthID) (core.MonthRecord, error) {
	if _, err := core.ParseMonthID(string(id)); err != nil {
		return core.MonthRecord{}, err
	}
	record, ok, err := s.store.LoadMonth(ctx, id)
	if err != nil {
		return core.MonthRecord{}, fmt.Errorf("get month %s: %w", id, err)
	}
	if !ok {
		return s.seeding.Seed(ctx, id), nil
	}
	return record, nil
}

// SetMonth overwrites the whole document for id.
func (s *HabitService) SetMonth(ctx context.Context, id core.MonthID, record core.MonthRecord) error {
	return s.saveMonth(ctx, "set", id, record)
}

func (s *HabitService) AddHabit(ctx context.Context, id core.MonthID, name, color string) (core.MonthRecord, error) {
	name = strings.TrimSpace(name)
	if err := core.ValidateHabitName(name); err != nil {
		return core.MonthRecord{}, err
	}
	if color == "" {
		color = core.RandomColor()
	}
	return s.mutate(ctx, "add_habit", id, func(r *core.MonthRecord) error {
		r.AddHabit(core.NewHabit(name, color, s.now()))
		return nil
	})
}

// DeleteHabit drops a habit from the month. Its log entries are kept.
func (s *HabitService) DeleteHabit(ctx context.Context, id core.MonthID, habitID string) (core.MonthRecord, error) {
	return s.mutate(ctx, "delete_habit", id, func(r *core.MonthRecord) error {
		if !r.DeleteHabit(habitID) {
			slog.DebugContext(ctx, "Habit not present, nothing removed",
				"month_id", id, "habit_id", habitID)
		}
		return nil
	})
}

func (s *HabitService) ToggleHabit(ctx context.Context, id core.MonthID, day int, habitID string) (core.MonthRecord, error) {
	return s.mutate(ctx, "toggle", id, func(r *core.MonthRecord) error {
		done, err := r.ToggleHabit(day, habitID)
		if err != nil {
			return fmt.Errorf("%w: %d", err, day)
		}
		slog.DebugContext(ctx, "Habit toggled",
			"month_id", id, "habit_id", habitID, "day", day, "done", done)
		return nil
	})
}

func (s *HabitService) UpdateReflection(ctx context.Context, id core.MonthID, field, value string) (core.MonthRecord, error) {
	return s.mutate(ctx, "reflection", id, func(r *core.MonthRecord) error {
		return r.SetReflectionField(field, value)
	})
}

func (s *HabitService) Summary(ctx context.Context, id core.MonthID) (core.MonthSummary, error) {
	record, err := s.GetMonth(ctx, id)
	if err != nil {
		return core.MonthSummary{}, err
	}
	return core.Summarize(record), nil
}

// mutate reads the month (seeding it if absent), applies fn and writes the
// whole document back.
func (s *HabitService) mutate(ctx context.Context, op string, id core.MonthID, fn func(*core.MonthRecord) error) (core.MonthRecord, error) {
	record, err := s.GetMonth(ctx, id)
	if err != nil {
		return core.MonthRecord{}, err
	}
	if err := fn(&record); err != nil {
		return core.MonthRecord{}, err
	}
	if err := s.saveMonth(ctx, op, id, record); err != nil {
		return core.MonthRecord{}, err
	}
	return record, nil
}

func (s *HabitService) saveMonth(ctx context.Context, op string, id core.MonthID, record core.MonthRecord) error {
	if _, err := core.ParseMonthID(string(id)); err != nil {
		return err
	}
	record.MonthID = id
	if err := s.store.SaveMonth(ctx, id, record); err != nil {
		return fmt.Errorf("save month %s: %w", id, err)
	}
	metrics.IncrementMonthWrite(op)

	// Publish change event (non-blocking for the caller)
	if err := s.publishMonthSaved(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish month saved event",
			"month_id", id, "error", err)
		metrics.IncrementEventPublished("failed")
		// Don't fail the request - the month is saved
	}
	return nil
}

func (s *HabitService) publishMonthSaved(ctx context.Context, id core.MonthID) error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.PublishMonthSaved(ctx, id); err != nil {
		return err
	}
	metrics.IncrementEventPublished("success")
	return nil
}

// Close releases the underlying store.
func (s *HabitService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close habit service: %w", err)
	}
	return nil
}
