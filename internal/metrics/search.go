package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeHit     = "hit"
	OutcomeMiss    = "miss"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

// Resort search metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Resort searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_matches",
			Help:      "Number of resorts returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	SearchScoringDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_scoring_duration_seconds",
			Help:      "Time spent scoring resort names against a query",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	SearchLocationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_location_total",
			Help:      "Resort searches by whether a caller position was used for ranking",
		},
		[]string{"ranked_by"}, // "distance" / "score"
	)
)

var registerOnce sync.Once

// Register registers all skipool collectors on the default registry. Must be called once from main.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequestDuration)
		prometheus.MustRegister(httpRequestsTotal)
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchMatches)
		prometheus.MustRegister(SearchScoringDuration)
		prometheus.MustRegister(SearchLocationTotal)
	})
}
