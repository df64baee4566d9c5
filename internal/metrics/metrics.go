// Package metrics exposes the process-wide Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	// Month documents the recommendation scan could not read or decode.
	RecommendationSkippedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habits_recommendation_skipped_records_total",
			Help: "Month records skipped by the recommendation scan",
		},
	)

	MonthWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_month_writes_total",
			Help: "Month record writes by operation",
		},
		[]string{"operation"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_events_published_total",
			Help: "Month change events published, by status",
		},
		[]string{"status"}, // success, failed
	)

	MonthsExported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_months_exported_total",
			Help: "Month records exported to the spreadsheet, by status",
		},
		[]string{"status"}, // success, failed, skipped
	)
)

func RecordHTTPRequestDuration(method, route, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

func IncrementSkippedRecord() {
	RecommendationSkippedRecords.Inc()
}

func IncrementMonthWrite(operation string) {
	MonthWrites.WithLabelValues(operation).Inc()
}

func IncrementEventPublished(status string) {
	EventsPublished.WithLabelValues(status).Inc()
}

func IncrementMonthExported(status string) {
	MonthsExported.WithLabelValues(status).Inc()
}
