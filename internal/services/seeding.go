package services

import (
	"context"
	"log/slog"
	"time"

	"habits/internal/core"
	"habits/internal/storage"
)

// Clock returns the current time. Tests pin it to a fixed instant.
type Clock func() time.Time

// SeedingPolicy decides what an unmaterialized month looks like.
//
// Months before the current month start empty. The current month and every
// later one start with a fresh copy of the template list. The result is never
// persisted here; it only becomes a stored record on the next explicit write.
type SeedingPolicy struct {
	templates storage.TemplateStore
	now       Clock
}

func NewSeedingPolicy(templates storage.TemplateStore, now Clock) *SeedingPolicy {
	if now == nil {
		now = time.Now
	}
	return &SeedingPolicy{templates: templates, now: now}
}

// CurrentMonth returns the month the clock is in, in UTC.
func (p *SeedingPolicy) CurrentMonth() core.MonthID {
	return core.MonthIDOf(p.now())
}

// Seed synthesizes the initial record for id.
func (p *SeedingPolicy) Seed(ctx context.Context, id core.MonthID) core.MonthRecord {
	record := core.NewMonthRecord(id)
	if id.Before(p.CurrentMonth()) {
		return record
	}

	defaults, err := p.templates.GetDefaults(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read templates while seeding, using none",
			"month_id", id, "error", err)
		return record
	}

	seededAt := p.now()
	for _, d := range defaults {
		record.AddHabit(core.NewHabit(d.Name, d.Color, seededAt))
	}
	return record
}
