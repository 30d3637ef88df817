package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run phase metrics in a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	phaseTotal    *prometheus.CounterVec
	phaseDuration *prometheus.GaugeVec
	runSuccess    prometheus.Gauge
}

// NewMetrics creates a metrics set backed by a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "djazure",
				Subsystem: "bootstrap",
				Name:      "phase_total",
				Help:      "Total number of provisioning phases by result",
			},
			[]string{"phase", "result"},
		),
		phaseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "djazure",
				Subsystem: "bootstrap",
				Name:      "phase_duration_seconds",
				Help:      "Duration of the last run of each provisioning phase in seconds",
			},
			[]string{"phase"},
		),
		runSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "djazure",
				Subsystem: "bootstrap",
				Name:      "run_success",
				Help:      "Whether the last bootstrap run succeeded (1) or not (0)",
			},
		),
	}
	m.registry.MustRegister(m.phaseTotal, m.phaseDuration, m.runSuccess)
	return m
}

// ObservePhase records the outcome and duration of one phase.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.phaseTotal.WithLabelValues(phase, result).Inc()
	m.phaseDuration.WithLabelValues(phase).Set(d.Seconds())
}

// ObserveRun records whether the whole run succeeded.
func (m *Metrics) ObserveRun(success bool) {
	if m == nil {
		return
	}
	if success {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
}

// WriteTextfile writes the collected metrics in the node-exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
