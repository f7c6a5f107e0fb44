package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	cacheHit     = "hit"
	cacheMiss    = "miss"
	cachePartial = "partial"
)

type Metrics struct {
	cache    *prometheus.CounterVec
	fallback prometheus.Counter
	lookups  *prometheus.CounterVec
}

// NewMetrics registers the resolver collectors on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		cache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_resolver_cache_total",
			Help: "Instance cache lookups by result.",
		}, []string{"result"}),
		fallback: factory.NewCounter(prometheus.CounterOpts{
			Name: "console_resolver_fallback_total",
			Help: "Regions answered with placeholder instances.",
		}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "console_resolver_directory_lookups_total",
			Help: "Directory lookups by outcome.",
		}, []string{"outcome"}),
	}
}
