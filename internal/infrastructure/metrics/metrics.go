// Package metrics exports Prometheus counters and histograms mirroring the
// telemetry contract: per-stage terminal outcomes, gate blocks, and catalog
// search latency. One Registry is constructed per process and injected into
// the batch driver and catalog gateway, following the teacher's
// "inject a collaborator, don't reach for a global" style.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles the process's alignment metrics.
type Registry struct {
	StageOutcomes   *prometheus.CounterVec
	SodiumBlocks    prometheus.Counter
	NegativeVocab   prometheus.Counter
	MassClamps      prometheus.Counter
	InvariantErrors prometheus.Counter
	SearchLatency   prometheus.Histogram
	BatchSize       prometheus.Histogram
}

// NewRegistry builds and registers a Registry against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		StageOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "food_alignment",
			Name:      "stage_outcomes_total",
			Help:      "Count of alignment results by terminal stage.",
		}, []string{"stage"}),
		SodiumBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "food_alignment",
			Name:      "sodium_gate_blocks_total",
			Help:      "Count of candidates rejected by the sodium gate.",
		}),
		NegativeVocab: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "food_alignment",
			Name:      "negative_vocab_blocks_total",
			Help:      "Count of candidates rejected by a disallowed-alias match.",
		}),
		MassClamps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "food_alignment",
			Name:      "mass_clamps_applied_total",
			Help:      "Count of predictions whose mass_g was soft-clamped.",
		}),
		InvariantErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "food_alignment",
			Name:      "invariant_violations_total",
			Help:      "Count of alignments that failed the result-builder assertion block.",
		}),
		SearchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "food_alignment",
			Name:      "catalog_search_latency_seconds",
			Help:      "Catalog gateway search() call latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "food_alignment",
			Name:      "batch_size",
			Help:      "Number of predictions processed per batch driver run.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		}),
	}

	reg.MustRegister(r.StageOutcomes, r.SodiumBlocks, r.NegativeVocab, r.MassClamps, r.InvariantErrors, r.SearchLatency, r.BatchSize)
	return r
}

// ObserveSearchLatency records how long a catalog search() call took.
func (r *Registry) ObserveSearchLatency(start time.Time) {
	r.SearchLatency.Observe(time.Since(start).Seconds())
}
