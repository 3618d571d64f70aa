package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/gopledge/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Quote metrics
	QuotesComputed *prometheus.CounterVec
	QuoteFailures  *prometheus.CounterVec
	ChargeAmount   prometheus.Histogram

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all metrics on reg. A nil reg means the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		QuotesComputed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopledge_quotes_total",
				Help: "Total quotes computed",
			},
			[]string{"outcome"},
		),
		QuoteFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopledge_quote_failures_total",
				Help: "Total quotes rejected",
			},
			[]string{"reason"},
		),
		ChargeAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gopledge_pledge_charge_dollars",
			Help:    "Per-pledger charge of successful quotes",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 10000, 100000, 1000000},
		}),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopledge_quote_cache_lookups_total",
				Help: "Quote cache lookups",
			},
			[]string{"result"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gopledge_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gopledge_http_request_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gopledge_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gopledge_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// QuoteComputed counts a quote and observes its charge when it succeeded.
func (m *Metrics) QuoteComputed(successful bool, charge domain.Money) {
	if !successful {
		m.QuotesComputed.WithLabelValues("unsuccessful").Inc()
		return
	}
	m.QuotesComputed.WithLabelValues("successful").Inc()
	m.ChargeAmount.Observe(charge.Decimal().InexactFloat64())
}

// QuoteFailed counts a rejected quote by reason.
func (m *Metrics) QuoteFailed(reason string) {
	m.QuoteFailures.WithLabelValues(reason).Inc()
}

// CacheLookup counts a quote cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}
