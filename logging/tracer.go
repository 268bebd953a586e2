// Package logging defines the telemetry interface of the congestion core.
package logging

import (
	"time"
)

// A ConnectionTracer records congestion-control events of a single
// connection. The connection registers one at construction time; every
// callback is optional. Callbacks are invoked synchronously from the per-ACK
// control path and must not block.
type ConnectionTracer struct {
	// UpdatedCongestionState is called on every mode transition.
	UpdatedCongestionState func(CongestionControlState)
	// UpdatedPacingGain is called whenever the pacing gain changes.
	UpdatedPacingGain func(float64)
	// UpdatedCwndGain is called whenever the congestion window gain changes.
	UpdatedCwndGain func(float64)
	// UpdatedMinRTT is called whenever a new minimum RTT estimate is adopted.
	UpdatedMinRTT func(time.Duration)
	// UpdatedCongestionEstimate is called when a DCTCP observation window
	// closes, with the marked and total acked bytes of the window and the new
	// smoothed alpha.
	UpdatedCongestionEstimate func(bytesMarked, bytesAcked ByteCount, alpha float64)
	// Close is called when the connection owning this tracer is destroyed.
	Close func()
}

// NewMultiplexedTracer creates a tracer that fans out every event to all
// given tracers. Passing a single tracer returns it unchanged.
func NewMultiplexedTracer(tracers ...*ConnectionTracer) *ConnectionTracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &ConnectionTracer{
		UpdatedCongestionState: func(state CongestionControlState) {
			for _, t := range tracers {
				if t.UpdatedCongestionState != nil {
					t.UpdatedCongestionState(state)
				}
			}
		},
		UpdatedPacingGain: func(gain float64) {
			for _, t := range tracers {
				if t.UpdatedPacingGain != nil {
					t.UpdatedPacingGain(gain)
				}
			}
		},
		UpdatedCwndGain: func(gain float64) {
			for _, t := range tracers {
				if t.UpdatedCwndGain != nil {
					t.UpdatedCwndGain(gain)
				}
			}
		},
		UpdatedMinRTT: func(rtt time.Duration) {
			for _, t := range tracers {
				if t.UpdatedMinRTT != nil {
					t.UpdatedMinRTT(rtt)
				}
			}
		},
		UpdatedCongestionEstimate: func(bytesMarked, bytesAcked ByteCount, alpha float64) {
			for _, t := range tracers {
				if t.UpdatedCongestionEstimate != nil {
					t.UpdatedCongestionEstimate(bytesMarked, bytesAcked, alpha)
				}
			}
		},
		Close: func() {
			for _, t := range tracers {
				if t.Close != nil {
					t.Close()
				}
			}
		},
	}
}
