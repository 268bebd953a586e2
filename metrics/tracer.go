// Package metrics provides a Prometheus-backed congestion tracer.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tcpbbr/tcpbbr/logging"
)

const metricNamespace = "tcpbbr"

var (
	stateTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "state_transitions_total",
			Help:      "Congestion Control State Transitions",
		},
		[]string{"state"},
	)
	minRTT = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "min_rtt_seconds",
			Help:      "Minimum RTT Estimate",
		},
	)
	pacingGain = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "pacing_gain",
			Help:      "Current Pacing Gain",
		},
	)
	cwndGain = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "cwnd_gain",
			Help:      "Current Congestion Window Gain",
		},
	)
	dctcpAlpha = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Name:      "dctcp_alpha",
			Help:      "Smoothed ECN Marking Fraction",
		},
	)
	ackedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "acked_bytes_total",
			Help:      "Bytes Acked in Closed ECN Observation Windows",
		},
	)
	markedBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "marked_bytes_total",
			Help:      "ECN-Marked Bytes Acked in Closed ECN Observation Windows",
		},
	)
)

// NewConnectionTracer creates a metrics ConnectionTracer using the default
// Prometheus registerer. The tracer can be set on the sender at construction
// time, multiplexed with other tracers if needed.
func NewConnectionTracer() *logging.ConnectionTracer {
	return NewConnectionTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewConnectionTracerWithRegisterer creates a metrics ConnectionTracer using
// a given Prometheus registerer.
func NewConnectionTracerWithRegisterer(registerer prometheus.Registerer) *logging.ConnectionTracer {
	for _, c := range [...]prometheus.Collector{
		stateTransitions,
		minRTT,
		pacingGain,
		cwndGain,
		dctcpAlpha,
		ackedBytes,
		markedBytes,
	} {
		if err := registerer.Register(c); err != nil {
			if ok := errors.As(err, &prometheus.AlreadyRegisteredError{}); !ok {
				panic(err)
			}
		}
	}

	return &logging.ConnectionTracer{
		UpdatedCongestionState: func(state logging.CongestionControlState) {
			stateTransitions.WithLabelValues(state.String()).Inc()
		},
		UpdatedMinRTT: func(rtt time.Duration) {
			minRTT.Set(rtt.Seconds())
		},
		UpdatedPacingGain: func(gain float64) {
			pacingGain.Set(gain)
		},
		UpdatedCwndGain: func(gain float64) {
			cwndGain.Set(gain)
		},
		UpdatedCongestionEstimate: func(bytesMarked, bytesAcked logging.ByteCount, alpha float64) {
			markedBytes.Add(float64(bytesMarked))
			ackedBytes.Add(float64(bytesAcked))
			dctcpAlpha.Set(alpha)
		},
	}
}
