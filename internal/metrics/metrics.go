// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_build_info",
			Help: "Build information of the activity status binary",
		},
		[]string{"version", "commit", "date"},
	)

	ProxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_proxy_requests_total",
		Help: "Total number of status requests answered by the proxy",
	}, []string{"result"}) // hit, miss, error

	UpstreamFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_upstream_fetch_total",
		Help: "Total number of upstream presence fetches",
	}, []string{"result"}) // ok, unreachable, rejected

	UpstreamFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "activity_upstream_fetch_duration_seconds",
		Help:    "Duration of upstream presence fetches",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms .. ~5s
	})

	CacheAgeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "activity_cache_age_seconds",
		Help: "Age of the cached presence payload at the last request",
	})

	CacheStoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_cache_store_errors_total",
		Help: "Total number of cache store failures",
	}, []string{"op"}) // get, set

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})

	PollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_poller_polls_total",
		Help: "Total number of poller cycles",
	}, []string{"result"}) // ok, proxy_unreachable, proxy_rejected

	PollsDiscardedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_poller_polls_discarded_total",
		Help: "Poll results dropped because a newer result was already applied",
	})
)
