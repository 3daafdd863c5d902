package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "merchant_directory"

// Collectors groups the prometheus instruments used by the web server and the API client.
type Collectors struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Upstream        *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil registerer skips registration,
// which keeps tests independent of the global registry.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests served.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Upstream: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of calls to the merchants REST API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups, by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(c.Requests, c.RequestDuration, c.Upstream, c.CacheLookups)
	}
	return c
}
