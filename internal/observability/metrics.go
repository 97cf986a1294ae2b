package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecommerce_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecommerce_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecommerce_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecommerce_cache_hits_total",
			Help: "Cache lookups that found a stored result",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecommerce_cache_misses_total",
			Help: "Cache lookups that found nothing",
		},
	)

	CacheInvalidatedKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecommerce_cache_invalidated_keys_total",
			Help: "Keys deleted from the cache by invalidation",
		},
	)

	StatsBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecommerce_stats_build_duration_seconds",
			Help:    "Time spent rebuilding admin statistics on a cache miss",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"key"},
	)
)
