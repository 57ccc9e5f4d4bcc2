package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	FallbackOutcomesTotal *prometheus.CounterVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	RateLimitRejectionsTotal prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendgate_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendgate_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"path"},
		),
		RequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendgate_requests_in_flight",
				Help: "Number of requests currently being processed",
			},
		),

		UpstreamRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendgate_upstream_requests_total",
				Help: "Total number of upstream provider requests",
			},
			[]string{"provider", "status"},
		),
		UpstreamRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendgate_upstream_request_duration_seconds",
				Help:    "Upstream provider request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25},
			},
			[]string{"provider"},
		),

		FallbackOutcomesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendgate_fallback_outcomes_total",
				Help: "Fallback resolutions by winning strategy (none = exhausted)",
			},
			[]string{"strategy"},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trendgate_cache_hits_total",
				Help: "Total number of cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trendgate_cache_misses_total",
				Help: "Total number of cache misses",
			},
		),

		RateLimitRejectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trendgate_rate_limit_rejections_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordHTTPRequest(path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpstreamRequest(provider, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(provider, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordFallbackOutcome(strategy string) {
	m.FallbackOutcomesTotal.WithLabelValues(strategy).Inc()
}

func (m *Metrics) RecordCacheHit()  { m.CacheHitsTotal.Inc() }
func (m *Metrics) RecordCacheMiss() { m.CacheMissesTotal.Inc() }

func (m *Metrics) RecordRateLimitRejection() { m.RateLimitRejectionsTotal.Inc() }

func (m *Metrics) IncRequestsInFlight() { m.RequestsInFlight.Inc() }
func (m *Metrics) DecRequestsInFlight() { m.RequestsInFlight.Dec() }
