package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ff_api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"method", "path", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ff_api_latency_seconds",
			Help:    "API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	Fields = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ff_fields_total",
			Help: "Number of configured fields by kind",
		},
		[]string{"kind"},
	)
	Cleans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ff_clean_total",
			Help: "Field clean calls by outcome (ok, invalid or error)",
		},
		[]string{"field", "outcome"},
	)
	CleanLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ff_clean_latency_seconds",
			Help:    "Latency of field clean calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"field"},
	)
	UserLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ff_user_lookups_total",
			Help: "User registry lookups by source and result",
		},
		[]string{"source", "result"},
	)
	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ff_cache_hits_total",
			Help: "User lookup cache hits",
		},
	)
	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ff_cache_misses_total",
			Help: "User lookup cache misses",
		},
	)
	ConfigReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ff_config_reloads_total",
			Help: "Field set reloads by status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		APILatency,
		Fields,
		Cleans,
		CleanLatency,
		UserLookups,
		CacheHits,
		CacheMisses,
		ConfigReloads,
	)
}

// SetFieldCounts replaces the field gauge with counts keyed by kind.
func SetFieldCounts(counts map[string]int) {
	Fields.Reset()
	for k, n := range counts {
		Fields.WithLabelValues(k).Set(float64(n))
	}
}
