// Package qlog records the congestion core's telemetry as a qlog-style JSON
// event trace, one event object per line.
package qlog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/tcpbbr/tcpbbr/logging"
)

type connectionTracer struct {
	mutex sync.Mutex

	w             io.WriteCloser
	enc           *gojay.Encoder
	referenceTime time.Time
	encodeErr     error
}

// NewConnectionTracer creates a ConnectionTracer writing newline-delimited
// JSON events to w. Event timestamps are relative to the tracer's creation.
// Closing the tracer closes w.
func NewConnectionTracer(w io.WriteCloser) *logging.ConnectionTracer {
	t := &connectionTracer{
		w:             w,
		enc:           gojay.NewEncoder(w),
		referenceTime: time.Now(),
	}
	return &logging.ConnectionTracer{
		UpdatedCongestionState: func(state logging.CongestionControlState) {
			t.recordEvent(eventCongestionStateUpdated{state: state.String()})
		},
		UpdatedMinRTT: func(rtt time.Duration) {
			t.recordEvent(eventMetricsUpdated{MinRTT: rtt})
		},
		UpdatedPacingGain: func(gain float64) {
			t.recordEvent(eventMetricsUpdated{PacingGain: gain})
		},
		UpdatedCwndGain: func(gain float64) {
			t.recordEvent(eventMetricsUpdated{CwndGain: gain})
		},
		UpdatedCongestionEstimate: func(bytesMarked, bytesAcked logging.ByteCount, alpha float64) {
			t.recordEvent(eventCongestionEstimateUpdated{
				BytesMarked: int64(bytesMarked),
				BytesAcked:  int64(bytesAcked),
				Alpha:       alpha,
			})
		},
		Close: t.close,
	}
}

func (t *connectionTracer) recordEvent(details eventDetails) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.encodeErr != nil { // if encoding failed once, drop all further events
		return
	}
	ev := event{
		RelativeTime: time.Since(t.referenceTime),
		eventDetails: details,
	}
	if err := t.enc.Encode(ev); err != nil {
		t.encodeErr = err
		return
	}
	if _, err := t.w.Write([]byte{'\n'}); err != nil {
		t.encodeErr = err
	}
}

func (t *connectionTracer) close() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.encodeErr != nil {
		log.Printf("exporting congestion trace failed: %s\n", t.encodeErr)
	}
	if err := t.w.Close(); err != nil {
		log.Printf("closing congestion trace failed: %s\n", err)
	}
}
