// Package worker mirrors stored month records to the spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"habits/internal/amqp"
	"habits/internal/core"
	"habits/internal/metrics"
	"habits/internal/sheets"
	"habits/internal/storage"
)

const defaultExportConcurrency = 2

// ExportWorker exports persisted months through a MonthExporter.
type ExportWorker struct {
	months      storage.MonthStore
	exporter    sheets.MonthExporter
	concurrency int
}

// ExportStats summarizes one ExportAll run.
type ExportStats struct {
	Total    int
	Exported int
	Failed   int
}

func NewExportWorker(months storage.MonthStore, exporter sheets.MonthExporter, concurrency int) *ExportWorker {
	if concurrency <= 0 {
		concurrency = defaultExportConcurrency
	}
	return &ExportWorker{months: months, exporter: exporter, concurrency: concurrency}
}

// HandleMonthSaved exports the month named by msg. A month with no stored
// record is skipped; seeded months are never exported.
func (w *ExportWorker) HandleMonthSaved(ctx context.Context, msg *amqp.MonthSavedMessage) error {
	slog.InfoContext(ctx, "Processing month saved message",
		"month_id", msg.MonthID,
		"timestamp", msg.Timestamp)

	exported, err := w.exportMonth(ctx, msg.MonthID)
	if err != nil {
		return fmt.Errorf("export month %s: %w", msg.MonthID, err)
	}
	if !exported {
		slog.WarnContext(ctx, "Month not persisted, nothing to export", "month_id", msg.MonthID)
		metrics.IncrementMonthExported("skipped")
	}
	return nil
}

// ExportAll re-exports every stored month. It recovers from missed messages
// or worker downtime; failures of single months are logged and counted.
func (w *ExportWorker) ExportAll(ctx context.Context) (ExportStats, error) {
	ids, err := w.months.ListMonthIDs(ctx)
	if err != nil {
		return ExportStats{}, fmt.Errorf("list months: %w", err)
	}
	if len(ids) == 0 {
		slog.InfoContext(ctx, "No stored months to export")
		return ExportStats{}, nil
	}

	var exported, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(w.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			if ctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			ok, err := w.exportMonth(ctx, id)
			switch {
			case err != nil:
				slog.ErrorContext(ctx, "Failed to export month", "month_id", id, "error", err)
				failed.Add(1)
			case ok:
				exported.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := ExportStats{Total: len(ids), Exported: int(exported.Load()), Failed: int(failed.Load())}
	slog.InfoContext(ctx, "Export run completed",
		"total", stats.Total,
		"exported", stats.Exported,
		"errors", stats.Failed)
	return stats, ctx.Err()
}

func (w *ExportWorker) exportMonth(ctx context.Context, id core.MonthID) (bool, error) {
	record, ok, err := w.months.LoadMonth(ctx, id)
	if err != nil {
		metrics.IncrementMonthExported("failed")
		return false, fmt.Errorf("load month: %w", err)
	}
	if !ok {
		return false, nil
	}

	ref, err := w.exporter.ExportMonth(ctx, record)
	if err != nil {
		metrics.IncrementMonthExported("failed")
		return false, fmt.Errorf("export to sheets: %w", err)
	}
	metrics.IncrementMonthExported("success")

	slog.InfoContext(ctx, "Exported month",
		"month_id", id,
		"sheets_ref", ref,
		"habits", len(record.Habits))
	return true, nil
}
