package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ResultBuckets covers catalogs of a few hundred items.
var ResultBuckets = []float64{0, 10, 25, 50, 100, 150, 200, 300, 500}

// EligibilityMetrics records pipeline activity. A nil *EligibilityMetrics is
// valid and records nothing, so callers need no enabled checks.
type EligibilityMetrics struct {
	// Runs counts pipeline executions by pipeline name.
	Runs *prometheus.CounterVec
	// StageDrops counts items removed by each stage.
	StageDrops *prometheus.CounterVec
	// ResultSize observes the number of items a pipeline kept.
	ResultSize *prometheus.HistogramVec
	// CacheLookups counts result cache lookups by outcome.
	CacheLookups *prometheus.CounterVec
}

// NewEligibilityMetrics registers the collectors on registerer.
func NewEligibilityMetrics(namespace string, registerer prometheus.Registerer) *EligibilityMetrics {
	factory := promauto.With(registerer)

	return &EligibilityMetrics{
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eligibility",
				Name:      "runs_total",
				Help:      "Total number of item pipeline runs by pipeline",
			},
			[]string{"pipeline"},
		),
		StageDrops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eligibility",
				Name:      "stage_dropped_items_total",
				Help:      "Total number of items removed by each pipeline stage",
			},
			[]string{"stage"},
		),
		ResultSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "eligibility",
				Name:      "result_items",
				Help:      "Number of items returned by a pipeline run",
				Buckets:   ResultBuckets,
			},
			[]string{"pipeline"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eligibility",
				Name:      "cache_lookups_total",
				Help:      "Result cache lookups by outcome (hit/miss/error)",
			},
			[]string{"result"},
		),
	}
}

// StageDropped implements item.Observer.
func (m *EligibilityMetrics) StageDropped(stage string, dropped int) {
	if m == nil {
		return
	}
	m.StageDrops.WithLabelValues(stage).Add(float64(dropped))
}

// PipelineDone implements item.Observer.
func (m *EligibilityMetrics) PipelineDone(pipeline string, kept int) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(pipeline).Inc()
	m.ResultSize.WithLabelValues(pipeline).Observe(float64(kept))
}

// RecordCacheLookup counts one result cache lookup.
func (m *EligibilityMetrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
