// Package observability holds the domain metrics and the OpenTelemetry tracer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultDropped = "dropped"
)

var (
	// CacheLookups counts cache-aside reads by key family and hit or miss.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_cache_lookups_total",
		Help: "Cache-aside reads by key family and result",
	}, []string{"family", "result"})

	// ListingTransitions counts lifecycle actions by outcome.
	ListingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_listing_transitions_total",
		Help: "Listing lifecycle transitions by action and result",
	}, []string{"action", "result"})

	// StatsRecomputes counts aggregate recomputations (listing_rating, host_stats, superhost).
	StatsRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_stats_recompute_total",
		Help: "Rating and host statistics recomputations by kind and result",
	}, []string{"kind", "result"})

	// SideEffectFailures counts best-effort work that failed after a committed write.
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_side_effect_failures_total",
		Help: "Failed best-effort side effects by effect name",
	}, []string{"effect"})

	// ActivityEvents counts activity log events by outcome (ok, error, dropped).
	ActivityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_activity_events_total",
		Help: "Host activity events by result",
	}, []string{"result"})

	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bucovina_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnections is the number of open activity feed sockets.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bucovina_websocket_connections",
		Help: "Number of open WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped because a client send buffer was full.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bucovina_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a func that records the elapsed time when called, e.g. via defer.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// Outcome maps an error to a result label.
func Outcome(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// SideEffectFailed bumps the failure counter for effect.
func SideEffectFailed(effect string) {
	SideEffectFailures.WithLabelValues(effect).Inc()
}
