// SPDX-License-Identifier: MIT

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "spatialacc"

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	Requests       *prometheus.CounterVec
	ComputeSeconds prometheus.Histogram
	CacheHits      prometheus.Counter
	Records        prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Accessibility requests by HTTP status code.",
		}, []string{"code"}),
		ComputeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "compute_seconds",
			Help:      "Time spent in accessibility.Compute.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hits_total",
			Help:      "Responses served from the response cache.",
		}),
		Records: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "records",
			Help:      "OD records per accepted request.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
		}),
	}
	reg.MustRegister(m.Requests, m.ComputeSeconds, m.CacheHits, m.Records)

	return m
}
