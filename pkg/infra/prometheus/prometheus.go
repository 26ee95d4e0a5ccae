package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Engine latency buckets in milliseconds. Generative calls dominate the
	// tail; the deterministic path lands in the first bucket.
	latencyBuckets = []float64{
		1, 5, 10,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	FixesTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemend_fixes_total",
			Help: "Total number of fix requests processed",
		},
		[]string{"category", "strategy", "status"},
	)

	FallbacksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "codemend_fallbacks_total",
			Help: "Generative attempts that fell back to the deterministic rewriter",
		},
		[]string{"category", "reason"},
	)

	EngineLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codemend_engine_latency_ms",
			Help:    "Generative engine call latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"engine"},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
