package providers

import (
	"blockd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncShieldActivations()
	IncShieldDeactivations()
	IncDayRollovers()
	IncDecisions(blocking bool)
	IncAttemptsLogged(kind string)
	IncBroadcasts()
	ObserveStoreDuration(op string, duration time.Duration)
	RegisterShieldGauges(active func() float64, blockedSecondsToday func() float64)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	shieldActivations   prometheus.Counter
	shieldDeactivations prometheus.Counter
	dayRollovers        prometheus.Counter
	decisionsTotal      *prometheus.CounterVec
	attemptsTotal       *prometheus.CounterVec
	broadcastsTotal     prometheus.Counter
	storeDuration       *prometheus.HistogramVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncShieldActivations() {
	m.shieldActivations.Inc()
}

func (m *MetricsProvider) IncShieldDeactivations() {
	m.shieldDeactivations.Inc()
}

func (m *MetricsProvider) IncDayRollovers() {
	m.dayRollovers.Inc()
}

func (m *MetricsProvider) IncDecisions(blocking bool) {
	outcome := "allow"
	if blocking {
		outcome = "block"
	}
	m.decisionsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncAttemptsLogged(kind string) {
	m.attemptsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncBroadcasts() {
	m.broadcastsTotal.Inc()
}

func (m *MetricsProvider) ObserveStoreDuration(op string, duration time.Duration) {
	m.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) RegisterShieldGauges(active func() float64, blockedSecondsToday func() float64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "blockd_shield_active",
		Help: "Whether the shield is currently active (1) or not (0)",
	}, active)

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "blockd_blocked_seconds_today",
		Help: "Accumulated blocked seconds for the current calendar day",
	}, blockedSecondsToday)
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blockd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blockd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		shieldActivations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_shield_activations_total",
			Help: "Total number of shield activations",
		}),

		shieldDeactivations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_shield_deactivations_total",
			Help: "Total number of shield deactivations",
		}),

		dayRollovers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_day_rollovers_total",
			Help: "Total number of midnight rollover splits of an active shield interval",
		}),

		decisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blockd_decisions_total",
			Help: "Total number of should-block decisions by outcome",
		}, []string{"outcome"}),

		attemptsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "blockd_attempts_total",
			Help: "Total number of blocked-access attempts logged",
		}, []string{"kind"}),

		broadcastsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "blockd_broadcasts_total",
			Help: "Total number of change notifications fanned out",
		}),

		storeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blockd_store_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) IncShieldActivations()                                {}
func (n *noopMetrics) IncShieldDeactivations()                              {}
func (n *noopMetrics) IncDayRollovers()                                     {}
func (n *noopMetrics) IncDecisions(_ bool)                                  {}
func (n *noopMetrics) IncAttemptsLogged(_ string)                           {}
func (n *noopMetrics) IncBroadcasts()                                       {}
func (n *noopMetrics) ObserveStoreDuration(_ string, _ time.Duration)       {}
func (n *noopMetrics) RegisterShieldGauges(_ func() float64, _ func() float64) {
}
