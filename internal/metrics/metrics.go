// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheEvents counts cache lifecycle events labelled by event
	// ("hit", "miss", "eviction", "expire").
	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clouds_cache_events_total",
			Help: "Cache lookups and removals by event type.",
		},
		[]string{"event"},
	)

	// UpstreamRequests counts upstream fetches labelled by outcome
	// ("success", "bad_status", "bad_body", "error", "circuit_open").
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clouds_upstream_requests_total",
			Help: "Upstream cloud listing fetches by outcome.",
		},
		[]string{"outcome"},
	)

	// UpstreamDuration observes the latency of a full upstream fetch, retries included.
	UpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clouds_upstream_duration_seconds",
			Help:    "Upstream cloud listing fetch duration in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// CircuitBreakerState tracks breaker state: 0 = closed, 1 = open, 2 = half_open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clouds_circuit_breaker_state",
			Help: "Upstream circuit breaker state (0=closed 1=open 2=half_open).",
		},
		[]string{"name"},
	)
)

// CacheMetrics feeds cache events into CacheEvents.
type CacheMetrics struct{}

func (CacheMetrics) Hit()      { CacheEvents.WithLabelValues("hit").Inc() }
func (CacheMetrics) Miss()     { CacheEvents.WithLabelValues("miss").Inc() }
func (CacheMetrics) Eviction() { CacheEvents.WithLabelValues("eviction").Inc() }
func (CacheMetrics) Expire()   { CacheEvents.WithLabelValues("expire").Inc() }
