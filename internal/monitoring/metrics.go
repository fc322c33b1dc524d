// Package monitoring exposes engine activity as Prometheus metrics.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects counters for the suggestion engine and its
// boundaries. Each instance carries its own registry so multiple
// instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	PurchasesRecorded prometheus.Counter
	Rotations         prometheus.Counter
	SuggestionRuns    prometheus.Counter
	ImportRows        prometheus.Counter
	ImportErrors      prometheus.Counter
	CurrentWeek       prometheus.Gauge
}

// New creates and registers the metric set.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PurchasesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pantry_purchases_recorded_total",
			Help: "Total purchase events recorded, including rotations.",
		}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pantry_rotations_total",
			Help: "Total perishable items re-added by rotation.",
		}),
		SuggestionRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pantry_suggestion_runs_total",
			Help: "Total suggestion list generations.",
		}),
		ImportRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pantry_import_rows_total",
			Help: "Total rows accepted from history imports.",
		}),
		ImportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pantry_import_errors_total",
			Help: "Total rows rejected during history imports.",
		}),
		CurrentWeek: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pantry_current_week",
			Help: "The week suggestions are currently evaluated against.",
		}),
	}

	m.registry.MustRegister(
		m.PurchasesRecorded,
		m.Rotations,
		m.SuggestionRuns,
		m.ImportRows,
		m.ImportErrors,
		m.CurrentWeek,
	)
	return m
}

// Handler serves the metric set in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
