package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the bot.
type Metrics struct {
	EventsHandled  *prometheus.CounterVec // labels: event
	HandlerPanics  prometheus.Counter
	ActiveSessions prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,empty,error}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeDuration prometheus.Histogram

	// Weather provider metrics.
	WeatherRequests *prometheus.CounterVec // labels: outcome={success,error}
	WeatherDuration prometheus.Histogram

	// Profile store metrics.
	ProfileUpserts *prometheus.CounterVec // labels: outcome={created_profile,added,duplicate,error}
}

// NewMetrics creates and registers all bot metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsHandled,
		m.HandlerPanics,
		m.ActiveSessions,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeDuration,
		m.WeatherRequests,
		m.WeatherDuration,
		m.ProfileUpserts,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "events_handled_total",
			Help:      "Inbound events handled, by event type.",
		}, []string{"event"}),
		HandlerPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "handler_panics_total",
			Help:      "Event handlers recovered from a panic.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_bot",
			Name:      "active_sessions",
			Help:      "Chats currently awaiting a free-text reply.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_bot",
			Name:      "geocode_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "weather_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		WeatherDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_bot",
			Name:      "weather_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ProfileUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_bot",
			Name:      "profile_upserts_total",
			Help:      "Profile location upserts by outcome.",
		}, []string{"outcome"}),
	}
}
