// Package metrics registers the Prometheus collectors for composition and
// export.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Export outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

var (
	compositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_composer",
			Subsystem: "compose",
			Name:      "compositions_total",
			Help:      "Resumes composed, by template.",
		},
		[]string{"template"},
	)

	composePages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resume_composer",
			Subsystem: "compose",
			Name:      "pages",
			Help:      "Pages per composition.",
			Buckets:   []float64{1, 2, 3, 4, 6, 10},
		},
	)

	composeWarningsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resume_composer",
			Subsystem: "compose",
			Name:      "warnings_total",
			Help:      "Non-fatal warnings raised while composing.",
		},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resume_composer",
			Subsystem: "export",
			Name:      "exports_total",
			Help:      "Exports finished, by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resume_composer",
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "Time spent producing a document.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	exportsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "resume_composer",
			Subsystem: "export",
			Name:      "in_progress",
			Help:      "Exports currently running.",
		},
	)
)

// ObserveComposition records one finished composition.
func ObserveComposition(templateID string, pages, warnings int) {
	compositionsTotal.WithLabelValues(templateID).Inc()
	composePages.Observe(float64(pages))
	composeWarningsTotal.Add(float64(warnings))
}

// ExportStarted marks an export as running and returns a function that
// records its outcome.
func ExportStarted(mode string) func(outcome string) {
	start := time.Now()
	exportsInProgress.Inc()
	return func(outcome string) {
		exportsInProgress.Dec()
		exportsTotal.WithLabelValues(mode, outcome).Inc()
		exportDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	}
}
