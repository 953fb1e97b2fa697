package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	FetchTotal     prometheus.Counter
	FetchErrors    prometheus.Counter
	SanitizeErrors prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

// New creates all metrics and registers them on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics on the given registerer. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "edt_proxy_fetch_total",
			Help: "Total number of upstream export fetches attempted",
		}),
		FetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "edt_proxy_fetch_errors_total",
			Help: "Total number of upstream export fetches that failed",
		}),
		SanitizeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "edt_proxy_sanitize_errors_total",
			Help: "Total number of exports that failed sanitization",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "edt_proxy_cache_hits_total",
			Help: "Total number of requests served from a fresh cache entry",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "edt_proxy_cache_misses_total",
			Help: "Total number of requests that triggered a regeneration",
		}),
	}
}
