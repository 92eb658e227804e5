package metadata

import (
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinecontext_provider_requests_total",
			Help: "Metadata provider requests by endpoint group and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	providerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinecontext_provider_request_duration_seconds",
			Help:    "Metadata provider request latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)
)

var numericSegment = regexp.MustCompile(`/\d+`)

// endpointGroup collapses ids so /movie/603/credits and /movie/13/credits
// share one label.
func endpointGroup(path string) string {
	return numericSegment.ReplaceAllString(path, "/{id}")
}

func observeRequest(path, outcome string, seconds float64) {
	group := endpointGroup(path)
	providerRequests.WithLabelValues(group, outcome).Inc()
	providerDuration.WithLabelValues(group).Observe(seconds)
}
