package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Resolutions   *prometheus.CounterVec
	TierFailures  *prometheus.CounterVec
	Categories    *prometheus.CounterVec
	RemoteLatency prometheus.Histogram
	TrackedUsers  prometheus.Gauge
	HTTPRequests  *prometheus.CounterVec

	gatherer prometheus.Gatherer
	window   *resolutionWindow
}

// NewMetrics registers instruments on reg. A nil reg uses the default registry.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer = reg
		gatherer = reg
	}
	factory := promauto.With(registerer)

	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Answered queries by the tier that produced the answer.",
		}, []string{"tier"}),
		TierFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tier_failures_total",
			Help:      "Tier attempts that fell through, by tier and reason.",
		}, []string{"tier", "reason"}),
		Categories: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "categories_total",
			Help:      "Classified queries by legal category.",
		}, []string{"category"}),
		RemoteLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_latency_ms",
			Help:      "Latency of remote inference attempts in milliseconds.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2000, 3000, 5000, 10000},
		}),
		TrackedUsers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracked_users",
			Help:      "Users with conversation history held in memory.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		gatherer: gatherer,
		window:   newResolutionWindow(256),
	}
}

func (m *Metrics) ObserveResolution(tier string, d time.Duration) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(tier).Inc()
	m.window.Observe(tier, float64(d.Microseconds())/1000)
}

func (m *Metrics) ObserveTierFailure(tier, reason string) {
	if m == nil {
		return
	}
	m.TierFailures.WithLabelValues(tier, reason).Inc()
	m.window.ObserveIndicator(tier + "_failed")
}

func (m *Metrics) ObserveCategory(category string) {
	if m == nil {
		return
	}
	m.Categories.WithLabelValues(category).Inc()
}

func (m *Metrics) ObserveRemoteLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) SetTrackedUsers(n int) {
	if m == nil {
		return
	}
	m.TrackedUsers.Set(float64(n))
}

func (m *Metrics) ObserveHTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// SnapshotResolutions summarizes recent resolution latency per tier.
func (m *Metrics) SnapshotResolutions() ResolutionSnapshot {
	if m == nil {
		return ResolutionSnapshot{Tiers: []TierStats{}}
	}
	return m.window.Snapshot()
}

// Handler exposes the registry the metrics were registered on.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
