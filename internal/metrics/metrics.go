// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devicescout"

// Metrics implements the recorder interfaces of the cache, counter, promoter,
// source and sweeper packages.
type Metrics struct {
	CacheResults    *prometheus.CounterVec
	Observations    *prometheus.CounterVec
	Recommendations *prometheus.CounterVec
	SourceMessages  *prometheus.CounterVec
	SweeperRuns     *prometheus.CounterVec
	SweeperAffected *prometheus.CounterVec
}

// New registers every collector on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CacheResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_results_total",
			Help:      "Tiered cache lookups by cache and the layer that answered",
		}, []string{"cache", "source"}),

		Observations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_total",
			Help:      "Observation registrations by outcome",
		}, []string{"outcome"}),

		Recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation promoter decisions by outcome",
		}, []string{"outcome"}),

		SourceMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_messages_total",
			Help:      "Messages consumed from the inbound source by outcome",
		}, []string{"outcome"}),

		SweeperRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_runs_total",
			Help:      "Sweeper task runs by task and result",
		}, []string{"task", "result"}),

		SweeperAffected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_affected_total",
			Help:      "Rows or entries touched by sweeper tasks",
		}, []string{"task"}),
	}
}

func (m *Metrics) CacheResult(cache, source string) {
	m.CacheResults.WithLabelValues(cache, source).Inc()
}

func (m *Metrics) Observation(outcome string) {
	m.Observations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Recommendation(outcome string) {
	m.Recommendations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SourceMessage(outcome string) {
	m.SourceMessages.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SweeperRun(task string, affected int64, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SweeperRuns.WithLabelValues(task, result).Inc()
	if affected > 0 {
		m.SweeperAffected.WithLabelValues(task).Add(float64(affected))
	}
}
