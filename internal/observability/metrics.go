package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// tracker service.
type Metrics struct {
	// Feed client metrics.
	FetchRequests *prometheus.CounterVec   // labels: resource={events,categories}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: resource={events,categories}

	// Cache metrics.
	EventsCached    prometheus.Gauge
	LastRefreshUnix prometheus.Gauge

	// Scheduler metrics.
	RefreshTotal     *prometheus.CounterVec // labels: outcome={success,error}
	SchedulerRunning prometheus.Gauge

	// Filter metrics.
	EventsSkipped prometheus.Counter

	// Feed export metrics.
	ExportPublished prometheus.Counter
	ExportErrors    prometheus.Counter
	ExportEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eonet_tracker",
			Name:      "feed_requests_total",
			Help:      "EONET API requests by resource and outcome.",
		}, []string{"resource", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eonet_tracker",
			Name:      "feed_request_duration_seconds",
			Help:      "EONET API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"resource"}),
		EventsCached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eonet_tracker",
			Name:      "events_cached",
			Help:      "Number of events in the current cache snapshot.",
		}),
		LastRefreshUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eonet_tracker",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful events refresh.",
		}),
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eonet_tracker",
			Name:      "refresh_total",
			Help:      "Cache refresh attempts by outcome.",
		}, []string{"outcome"}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eonet_tracker",
			Name:      "scheduler_running",
			Help:      "1 when the refresh scheduler is active, 0 when shut down.",
		}),
		EventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eonet_tracker",
			Name:      "filter_events_skipped_total",
			Help:      "Events skipped during filtering due to malformed data.",
		}),
		ExportPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eonet_tracker",
			Name:      "export_events_published_total",
			Help:      "Events published to the export topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eonet_tracker",
			Name:      "export_errors_total",
			Help:      "Failed export publish attempts.",
		}),
		ExportEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eonet_tracker",
			Name:      "export_enabled",
			Help:      "1 when the Kafka feed export is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.EventsCached,
		m.LastRefreshUnix,
		m.RefreshTotal,
		m.SchedulerRunning,
		m.EventsSkipped,
		m.ExportPublished,
		m.ExportErrors,
		m.ExportEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "eonet_tracker", Name: "feed_requests_total"}, []string{"resource", "outcome"}),
		FetchDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "eonet_tracker", Name: "feed_request_duration_seconds"}, []string{"resource"}),
		EventsCached:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "eonet_tracker", Name: "events_cached"}),
		LastRefreshUnix:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "eonet_tracker", Name: "last_refresh_timestamp_seconds"}),
		RefreshTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "eonet_tracker", Name: "refresh_total"}, []string{"outcome"}),
		SchedulerRunning: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "eonet_tracker", Name: "scheduler_running"}),
		EventsSkipped:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "eonet_tracker", Name: "filter_events_skipped_total"}),
		ExportPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "eonet_tracker", Name: "export_events_published_total"}),
		ExportErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "eonet_tracker", Name: "export_errors_total"}),
		ExportEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "eonet_tracker", Name: "export_enabled"}),
	}
}
