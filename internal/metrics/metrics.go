// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stockcheck"

var (
	// VerificationsTotal counts appended ledger records.
	// Labels: status (OK, NOT_OK)
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total verification records appended",
	}, []string{"status"})

	// LoadTogglesTotal counts load toggle attempts.
	// Labels: result (loaded, unloaded, precondition_failed, error)
	LoadTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "load_toggles_total",
		Help:      "Total load toggle attempts by result",
	}, []string{"result"})

	// AggregationDuration measures building one status document from a snapshot.
	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregation_duration_seconds",
		Help:      "Time to aggregate an event status document",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	// NotifyDropped counts subscribers closed because their buffer was full.
	NotifyDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_dropped_total",
		Help:      "Total subscribers closed for falling behind",
	})

	// NotifyForwardDropped counts changes not forwarded because the queue was full.
	NotifyForwardDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_forward_dropped_total",
		Help:      "Total changes dropped from the cross-instance forward queue",
	})

	// StreamSubscribers is the number of live change subscriptions.
	StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_subscribers",
		Help:      "Current number of change stream subscribers",
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
