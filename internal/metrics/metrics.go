// Package metrics records generation statistics in a Prometheus registry that
// can be exported as a node-exporter textfile after a run.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "unitgen"

// Metrics holds the gauges of one generation run.
type Metrics struct {
	reg *prometheus.Registry

	phaseDuration   *prometheus.GaugeVec
	phaseUnits      *prometheus.GaugeVec
	phaseOps        *prometheus.GaugeVec
	phaseMathOps    *prometheus.GaugeVec
	blockCandidates *prometheus.GaugeVec
	units           *prometheus.GaugeVec
	hostedOps       prometheus.Gauge
	closureRounds   prometheus.Gauge
	closureStable   prometheus.Gauge
	filesWritten    prometheus.Gauge
}

// New creates the gauges on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		phaseDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each generation phase",
		}, []string{"phase"}),
		phaseUnits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_units_added",
			Help:      "Units registered by each generation phase",
		}, []string{"phase"}),
		phaseOps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_ops_added",
			Help:      "Operators synthesized by each generation phase",
		}, []string{"phase"}),
		phaseMathOps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_math_ops_added",
			Help:      "Math operations derived by each generation phase",
		}, []string{"phase"}),
		blockCandidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "block_candidates",
			Help:      "Candidate units combined by each block",
		}, []string{"block"}),
		units: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units",
			Help:      "Units in the final set by tag",
		}, []string{"tag"}),
		hostedOps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hosted_ops",
			Help:      "Operators distributed to host units",
		}),
		closureRounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "closure_rounds",
			Help:      "Rounds run by the closure phase",
		}),
		closureStable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "closure_stable",
			Help:      "1 when the closure reached a fixed point before its cap",
		}),
		filesWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files_written",
			Help:      "Source files written by the emitter",
		}),
	}
	m.reg.MustRegister(
		m.phaseDuration, m.phaseUnits, m.phaseOps, m.phaseMathOps,
		m.blockCandidates, m.units, m.hostedOps,
		m.closureRounds, m.closureStable, m.filesWritten,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// ObservePhase records the outcome of one phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration, units, ops, mathOps int) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Set(d.Seconds())
	m.phaseUnits.WithLabelValues(phase).Set(float64(units))
	m.phaseOps.WithLabelValues(phase).Set(float64(ops))
	m.phaseMathOps.WithLabelValues(phase).Set(float64(mathOps))
}

// ObserveBlock records the candidate count of a block.
func (m *Metrics) ObserveBlock(block string, candidates int) {
	if m == nil {
		return
	}
	m.blockCandidates.WithLabelValues(block).Set(float64(candidates))
}

// ObserveClosure records the closure outcome.
func (m *Metrics) ObserveClosure(rounds int, stable bool) {
	if m == nil {
		return
	}
	m.closureRounds.Set(float64(rounds))
	if stable {
		m.closureStable.Set(1)
	} else {
		m.closureStable.Set(0)
	}
}

// SetUnits records the final unit count for a tag.
func (m *Metrics) SetUnits(tag string, n int) {
	if m == nil {
		return
	}
	m.units.WithLabelValues(tag).Set(float64(n))
}

// SetHostedOps records the number of distributed operators.
func (m *Metrics) SetHostedOps(n int) {
	if m == nil {
		return
	}
	m.hostedOps.Set(float64(n))
}

// SetFilesWritten records the number of emitted files.
func (m *Metrics) SetFilesWritten(n int) {
	if m == nil {
		return
	}
	m.filesWritten.Set(float64(n))
}

// WriteTextfile writes every gauge in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("cannot write metrics to %s: %w", path, err)
	}
	return nil
}
