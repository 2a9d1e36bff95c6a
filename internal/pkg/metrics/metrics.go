package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// FetchTotal counts backend position fetch attempts.
	FetchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "positions_fetch_total",
		Help: "Total number of backend position fetch attempts.",
	})

	// FetchErrors counts failed backend position fetches.
	FetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "positions_fetch_errors_total",
		Help: "Total number of failed backend position fetches.",
	})

	// CacheHits counts store reads served from a fresh cached snapshot.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "positions_cache_hits_total",
		Help: "Total number of position fetches served from cache.",
	})

	// CacheMisses counts store reads that required a refresh.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "positions_cache_misses_total",
		Help: "Total number of position fetches that required a refresh.",
	})
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(FetchTotal, FetchErrors, CacheHits, CacheMisses)
}
