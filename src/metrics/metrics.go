package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homunculus_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homunculus_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SchemeChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homunculus_scheme_changes_total",
			Help: "Color scheme selections by resolved scheme id",
		},
		[]string{"scheme"},
	)

	SettingsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "homunculus_settings_applied_total",
			Help: "Total number of theme settings applications",
		},
	)

	PersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homunculus_persist_errors_total",
			Help: "Failed preference writes by storage key",
		},
		[]string{"key"},
	)

	ActiveScheme = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homunculus_active_scheme",
			Help: "Set to 1 for the active color scheme, 0 otherwise",
		},
		[]string{"scheme"},
	)

	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "homunculus_theme_subscribers",
			Help: "Number of registered theme change subscribers",
		},
	)
)

// SetActiveScheme marks id as the only active scheme among ids
func SetActiveScheme(id string, ids []string) {
	for _, s := range ids {
		v := 0.0
		if s == id {
			v = 1
		}
		ActiveScheme.WithLabelValues(s).Set(v)
	}
}

// Handler serves the default registry in Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
