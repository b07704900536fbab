package cms

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records CMS fetch outcomes. A nil *Metrics records nothing.
type Metrics struct {
	Fetches        *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	FallbackServed *prometheus.CounterVec
}

// NewMetrics registers the CMS collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cms_fetches_total",
			Help: "CMS fetches by endpoint and outcome (ok, error, cache_hit)",
		}, []string{"endpoint", "outcome"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cms_fetch_duration_seconds",
			Help:    "Latency of CMS HTTP requests",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"endpoint"}),
		FallbackServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fallback_served_total",
			Help: "Times built-in sample content was served instead of CMS content",
		}, []string{"content"}),
	}
}

func (m *Metrics) observeFetch(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) observeLatency(endpoint string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Metrics) fallbackServed(content string) {
	if m == nil {
		return
	}
	m.FallbackServed.WithLabelValues(content).Inc()
}
