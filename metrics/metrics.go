// Package metrics exposes Banker decisions as Prometheus metrics.
package metrics

import (
	"github.com/TudorHulban/bankers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bankers"

const (
	OutcomeGranted               = "granted"
	OutcomeExceedsMaxClaim       = "exceeds_max_claim"
	OutcomeInsufficientAvailable = "insufficient_available"
	OutcomeUnsafe                = "unsafe"
)

// Collector implements bankers.Observer.
type Collector struct {
	// RequestsTotal counts admission decisions.
	// Labels: outcome
	RequestsTotal *prometheus.CounterVec

	TerminationsTotal prometheus.Counter

	// UnitsReclaimedTotal counts units returned by terminations.
	// Labels: resource (index)
	UnitsReclaimedTotal *prometheus.CounterVec

	// Safe is 1 when the last safety check found a safe sequence.
	Safe prometheus.Gauge
}

var _ bankers.Observer = (*Collector)(nil)

func NewCollector(registerer prometheus.Registerer) *Collector {
	factory := promauto.With(registerer)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Resource requests by admission outcome.",
			},
			[]string{"outcome"},
		),

		TerminationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "terminations_total",
				Help:      "Processes terminated to reclaim resources.",
			},
		),

		UnitsReclaimedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "units_reclaimed_total",
				Help:      "Resource units returned by terminations.",
			},
			[]string{"resource"},
		),

		Safe: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state_safe",
				Help:      "1 when the last safety check found a safe sequence.",
			},
		),
	}
}

func outcome(response *bankers.ResponseRequest) string {
	if response.Granted {
		return OutcomeGranted
	}

	switch response.Reason {
	case bankers.ExceedsMaxClaim:
		return OutcomeExceedsMaxClaim
	case bankers.InsufficientAvailable:
		return OutcomeInsufficientAvailable
	}

	return OutcomeUnsafe
}

func (c *Collector) ObserveRequest(response *bankers.ResponseRequest) {
	c.RequestsTotal.WithLabelValues(outcome(response)).Inc()

	// a grant proves the new state safe
	if response.Granted {
		c.Safe.Set(1)
	}
}

func (c *Collector) ObserveTermination(_ int, freed []int64) {
	c.TerminationsTotal.Inc()

	for resource, units := range freed {
		if units == 0 {
			continue
		}

		c.UnitsReclaimedTotal.WithLabelValues(resourceLabel(resource)).Add(float64(units))
	}
}

func (c *Collector) ObserveSafety(isSafe bool) {
	if isSafe {
		c.Safe.Set(1)

		return
	}

	c.Safe.Set(0)
}
