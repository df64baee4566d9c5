// Package storage defines the persistence ports for templates and month
// records, plus the document codec shared by every backend.
package storage

import (
	"context"

	"habits/internal/core"
)

type (
	// TemplateStore holds the single default-habit template document.
	TemplateStore interface {
		// GetDefaults returns the template list, empty when none is stored.
		GetDefaults(ctx context.Context) ([]core.DefaultHabitEntry, error)
		// SetDefaults replaces the whole template list.
		SetDefaults(ctx context.Context, defaults []core.DefaultHabitEntry) error
	}

	// MonthStore holds one record document per month.
	MonthStore interface {
		// LoadMonth returns the stored record and whether it exists. It never seeds.
		LoadMonth(ctx context.Context, id core.MonthID) (core.MonthRecord, bool, error)
		// SaveMonth overwrites (or creates) the record for id.
		SaveMonth(ctx context.Context, id core.MonthID, record core.MonthRecord) error
		// ListMonthIDs returns every persisted month in ascending order.
		ListMonthIDs(ctx context.Context) ([]core.MonthID, error)
	}

	// Store is what a backend provides.
	Store interface {
		TemplateStore
		MonthStore
		Close() error
	}
)
