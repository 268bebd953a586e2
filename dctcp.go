package tcpbbr

import (
	"log/slog"
	"time"
)

// Per-marked-ACK congestion window gain adjustment. These are tunables, not
// values derived from the BBR model: every ACK carrying an ECN echo nudges
// the window gain by ecnGainStep, upward (bounded by ecnCwndGainMax) when
// marking uses ECT(0), downward (bounded by ecnCwndGainMin) when it uses
// ECT(1).
const (
	ecnGainStep    = 0.1
	ecnCwndGainMax = 2.5
	ecnCwndGainMin = 1.5
)

// dctcpState is the DCTCP-style ECN feedback estimator: a smoothed estimate
// of the fraction of acked bytes that were congestion-marked, updated once
// per observation window (roughly one RTT of sent data).
type dctcpState struct {
	logger *slog.Logger

	alpha float64
	g     float64

	ackedBytesEcn   ByteCount
	ackedBytesTotal ByteCount
	nextSeq         SequenceNumber
	nextSeqSet      bool

	ceState            bool
	delayedAckReserved bool
	priorRcvNxt        SequenceNumber
	priorRcvNxtSet     bool

	// Smoothed deviation of the RTT from its minimum, using the same gain as
	// alpha.
	rttJitter time.Duration

	initialized bool
}

func newDctcpState(config *Config, logger *slog.Logger) dctcpState {
	return dctcpState{
		logger: logger,
		alpha:  config.DctcpAlphaOnInit,
		g:      config.DctcpShiftG,
	}
}

// Alpha returns the smoothed congestion-marking fraction.
func (b *BbrSender) Alpha() float64 { return b.dctcp.alpha }

// RTTJitter returns the smoothed deviation of the measured RTT from the
// minimum RTT estimate.
func (b *BbrSender) RTTJitter() time.Duration { return b.dctcp.rttJitter }

// InitializeDctcpAlpha overrides the initial marking-fraction estimate. It
// must be called before Initialize; once the estimator is running, changing
// alpha would corrupt the in-progress smoothing, so a late call panics.
func (b *BbrSender) InitializeDctcpAlpha(alpha float64) {
	if b.dctcp.initialized {
		panic("tcpbbr: DCTCP alpha initialized after the estimator has started")
	}
	b.dctcp.alpha = alpha
}

// OnPacketsAcked is invoked by the connection for every ACK of new data,
// after its RTT estimator has processed the measurement. It feeds the DCTCP
// byte counters, applies the per-marked-ACK gain nudge, and closes the
// observation window once the acked sequence passes the window boundary.
func (b *BbrSender) OnPacketsAcked(ss *SocketState, ackedBytes ByteCount, rtt time.Duration) {
	d := &b.dctcp
	d.ackedBytesTotal += ackedBytes
	if ss.EcnState == EcnStateEceRcvd {
		d.ackedBytesEcn += ackedBytes
		if ss.EctCodePoint == Ect0 {
			b.setCwndGain(min(b.cwndGain+ecnGainStep, ecnCwndGainMax))
		} else {
			b.setCwndGain(max(b.cwndGain-ecnGainStep, ecnCwndGainMin))
		}
	}

	if rtt > 0 && b.minRtt.HasSample() {
		deviation := rtt - b.minRtt.MinRTT()
		if deviation < 0 {
			deviation = -deviation
		}
		d.rttJitter = time.Duration((1-d.g)*float64(d.rttJitter) + d.g*float64(deviation))
	}

	if !d.nextSeqSet {
		d.nextSeq = ss.NextTxSequence
		d.nextSeqSet = true
	}
	if ss.LastAckedSeq >= d.nextSeq {
		fraction := 0.0
		if d.ackedBytesTotal > 0 {
			fraction = float64(d.ackedBytesEcn) / float64(d.ackedBytesTotal)
		}
		d.alpha = (1-d.g)*d.alpha + d.g*fraction
		d.logger.Debug("observation window closed",
			"marked", int64(d.ackedBytesEcn), "acked", int64(d.ackedBytesTotal), "alpha", d.alpha)
		if b.tracer != nil && b.tracer.UpdatedCongestionEstimate != nil {
			b.tracer.UpdatedCongestionEstimate(d.ackedBytesEcn, d.ackedBytesTotal, d.alpha)
		}
		d.resetWindow(ss)
	}
}

// resetWindow starts a new observation window at the current send position.
func (d *dctcpState) resetWindow(ss *SocketState) {
	d.nextSeq = ss.NextTxSequence
	d.ackedBytesEcn = 0
	d.ackedBytesTotal = 0
}

// ceState0to1 handles the arrival of the first CE-marked packet after a
// stretch of unmarked ones. If a delayed ACK is outstanding, the previously
// received data must be acknowledged without an ECN echo before the state
// flips, so that the peer's marked and unmarked bytes are attributed
// correctly.
func (b *BbrSender) ceState0to1(ss *SocketState) {
	d := &b.dctcp
	if !d.ceState && d.delayedAckReserved && d.priorRcvNxtSet && ss.SendEmptyAck != nil {
		ss.SendEmptyAck(d.priorRcvNxt, false)
	}
	d.priorRcvNxt = ss.NextRxSequence
	d.priorRcvNxtSet = true
	d.ceState = true
	ss.EcnState = EcnStateCeRcvd
}

// ceState1to0 handles the first unmarked packet after CE-marked ones,
// acknowledging the pending marked data with an ECN echo.
func (b *BbrSender) ceState1to0(ss *SocketState) {
	d := &b.dctcp
	if d.ceState && d.delayedAckReserved && d.priorRcvNxtSet && ss.SendEmptyAck != nil {
		ss.SendEmptyAck(d.priorRcvNxt, true)
	}
	d.priorRcvNxt = ss.NextRxSequence
	d.priorRcvNxtSet = true
	d.ceState = false
	if ss.EcnState == EcnStateCeRcvd || ss.EcnState == EcnStateSendingEce {
		ss.EcnState = EcnStateIdle
	}
}

func (b *BbrSender) updateAckReserved(event CwndEvent) {
	switch event {
	case CwndEventDelayedAck:
		b.dctcp.delayedAckReserved = true
	case CwndEventNonDelayedAck:
		b.dctcp.delayedAckReserved = false
	}
}
