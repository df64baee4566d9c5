package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"habits/internal/core"
	"habits/internal/metrics"
	"habits/internal/storage"
)

const defaultRecommendConcurrency = 4

// Recommender mines stored months for habits that are not in the template list.
type Recommender struct {
	templates   storage.TemplateStore
	months      storage.MonthStore
	concurrency int
}

func NewRecommender(templates storage.TemplateStore, months storage.MonthStore, concurrency int) *Recommender {
	if concurrency <= 0 {
		concurrency = defaultRecommendConcurrency
	}
	return &Recommender{templates: templates, months: months, concurrency: concurrency}
}

// Recommend returns one candidate per distinct lower-cased habit name found in
// stored months and absent from the templates. Months are merged in ascending
// order, so the most recent month decides a candidate's casing and color.
// Unreadable months are skipped. The result is sorted by lower-cased name and
// is empty, never nil, when nothing qualifies or the templates cannot be read.
func (r *Recommender) Recommend(ctx context.Context) []core.RecommendationCandidate {
	out := []core.RecommendationCandidate{}

	defaults, err := r.templates.GetDefaults(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read templates for recommendations", "error", err)
		return out
	}
	excluded := make(map[string]struct{}, len(defaults))
	for _, d := range defaults {
		excluded[strings.ToLower(d.Name)] = struct{}{}
	}

	ids, err := r.months.ListMonthIDs(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list months for recommendations", "error", err)
		return out
	}

	records := r.loadAll(ctx, ids)

	found := make(map[string]core.RecommendationCandidate)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		for _, h := range rec.Habits {
			if strings.TrimSpace(h.Name) == "" {
				continue
			}
			key := strings.ToLower(h.Name)
			if _, skip := excluded[key]; skip {
				continue
			}
			found[key] = core.RecommendationCandidate{Name: h.Name, Color: h.Color}
		}
	}

	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, found[k])
	}
	return out
}

// loadAll reads every month concurrently. The returned slice is parallel to
// ids; an entry is nil when that month could not be loaded.
func (r *Recommender) loadAll(ctx context.Context, ids []core.MonthID) []*core.MonthRecord {
	records := make([]*core.MonthRecord, len(ids))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			rec, ok, err := r.months.LoadMonth(ctx, id)
			if err != nil {
				slog.WarnContext(ctx, "Skipping unreadable month in recommendation scan",
					"month_id", id, "error", err)
				metrics.IncrementSkippedRecord()
				return nil
			}
			if ok {
				records[i] = &rec
			}
			return nil
		})
	}
	_ = g.Wait()

	return records
}
