// Package tcpbbr implements the BBR congestion-control decision core of a
// TCP sender: a model of the path's bottleneck bandwidth and round-trip
// propagation delay, and the four-phase control loop (Startup, Drain,
// ProbeBW, ProbeRTT) that derives the pacing rate and congestion window
// from it.
//
// The TCP connection itself, its retransmission logic, and the rate sampler
// that produces per-ACK delivery statistics are external: the connection
// feeds this package RateSamples and event notifications, and reads the
// pacing rate and congestion window back out of the SocketState it owns.
package tcpbbr

import (
	"time"

	"github.com/tcpbbr/tcpbbr/internal/protocol"
)

// A ByteCount in TCP.
type ByteCount = protocol.ByteCount

// A SequenceNumber is a position in the TCP byte stream.
type SequenceNumber = protocol.SequenceNumber

// A Clock returns the current time. It is injected into the sender so that
// tests can drive synthetic time.
type Clock interface {
	Now() time.Time
}

// DefaultClock is a Clock reading the system clock.
type DefaultClock struct{}

// Now returns the current time.
func (DefaultClock) Now() time.Time { return time.Now() }

// CongestionState is the state of the connection's generic congestion state
// machine (RFC 5681 / Linux tcp_ca_state).
type CongestionState uint8

const (
	// CongStateOpen: normal state, no dubious events.
	CongStateOpen CongestionState = iota
	// CongStateDisorder: some SACKs or duplicate ACKs are in flight.
	CongStateDisorder
	// CongStateCWR: the sender is reducing the window in response to ECN.
	CongStateCWR
	// CongStateRecovery: fast retransmit is in progress.
	CongStateRecovery
	// CongStateLoss: a retransmission timeout fired.
	CongStateLoss
)

// A CwndEvent is a congestion-window related event notified by the
// connection.
type CwndEvent uint8

const (
	// CwndEventTxStart: the first transmission when no packets are in flight
	// (restart after idle).
	CwndEventTxStart CwndEvent = iota
	// CwndEventCompleteCWR: the congestion-window reduction is finished.
	CwndEventCompleteCWR
	// CwndEventDelayedAck: the receiver reserved a delayed ACK.
	CwndEventDelayedAck
	// CwndEventNonDelayedAck: the receiver sent a non-delayed ACK.
	CwndEventNonDelayedAck
	// CwndEventEcnIsCE: a Congestion Experienced codepoint was received.
	CwndEventEcnIsCE
	// CwndEventEcnNoCE: a packet without the CE codepoint was received.
	CwndEventEcnNoCE
)

// EcnMode selects how the connection interprets ECN feedback.
type EcnMode uint8

const (
	// EcnModeClassic: RFC 3168 behavior.
	EcnModeClassic EcnMode = iota
	// EcnModeDctcp: DCTCP-style per-packet marking feedback.
	EcnModeDctcp
)

// EcnCodePoint is the ECN-capable-transport codepoint the sender marks
// outgoing packets with.
type EcnCodePoint uint8

const (
	// Ect0 is the ECT(0) codepoint.
	Ect0 EcnCodePoint = iota
	// Ect1 is the ECT(1) codepoint.
	Ect1
)

// EcnState is the connection's ECN state machine position.
type EcnState uint8

const (
	// EcnStateDisabled: ECN is not in use.
	EcnStateDisabled EcnState = iota
	// EcnStateIdle: ECN is enabled, no unacknowledged congestion signal.
	EcnStateIdle
	// EcnStateCeRcvd: a CE codepoint was received and not yet echoed.
	EcnStateCeRcvd
	// EcnStateSendingEce: the receiver is echoing ECE to the peer.
	EcnStateSendingEce
	// EcnStateEceRcvd: the last ACK carried an ECN echo.
	EcnStateEceRcvd
	// EcnStateCwrSent: a CWR was sent in response to an ECE.
	EcnStateCwrSent
)

// SocketState is the per-connection transport state shared between the
// connection and the congestion core. The connection owns it; the core reads
// and writes the fields documented below from within the connection's event
// callbacks.
type SocketState struct {
	// CongestionWindow in bytes. Written by the core.
	CongestionWindow ByteCount
	// InitialCongestionWindow in bytes.
	InitialCongestionWindow ByteCount
	// SlowStartThreshold in bytes. Written by the core on Startup exit.
	SlowStartThreshold ByteCount
	// InitialSlowStartThreshold in bytes.
	InitialSlowStartThreshold ByteCount
	// SegmentSize is the maximum segment size in bytes.
	SegmentSize ByteCount
	// BytesInFlight is the amount of unacknowledged data in the network.
	BytesInFlight ByteCount
	// Pacing reports whether the connection paces outgoing packets. BBR
	// requires pacing and forces this on.
	Pacing bool
	// PacingRate in bits per second. Written by the core.
	PacingRate Bandwidth
	// MaxPacingRate caps the pacing rate; zero means no cap.
	MaxPacingRate Bandwidth
	// SmoothedRTT is the connection's smoothed RTT estimate, zero before the
	// first measurement.
	SmoothedRTT time.Duration
	// LastRTT is the most recent RTT measurement, zero before the first.
	LastRTT time.Duration
	// MinRTT is the connection's own lifetime-minimum RTT, zero before the
	// first measurement. Distinct from the core's windowed min-RTT estimate.
	MinRTT time.Duration
	// CongState is the generic congestion state machine position.
	CongState CongestionState
	// LastAckedSackedBytes is the number of bytes acked or sacked by the most
	// recent ACK.
	LastAckedSackedBytes ByteCount
	// NextTxSequence is the next sequence number to be sent.
	NextTxSequence SequenceNumber
	// LastAckedSeq is the highest cumulatively acknowledged sequence number.
	LastAckedSeq SequenceNumber
	// NextRxSequence is the sequence number of the first missing byte on the
	// receive side.
	NextRxSequence SequenceNumber
	// UseEcn reports whether ECN is negotiated. The core forces this on.
	UseEcn bool
	// EcnMode is the ECN interpretation mode. The core forces DCTCP mode.
	EcnMode EcnMode
	// EctCodePoint is the codepoint used for outgoing packets.
	EctCodePoint EcnCodePoint
	// EcnState is the ECN state machine position.
	EcnState EcnState
	// SuppressGrowthIfCwndLimited suppresses window growth while the sender
	// is not window-limited. The core disables it.
	SuppressGrowthIfCwndLimited bool
	// AppLimitedUntil is the delivered-byte count up to which the rate
	// sampler must flag samples as app-limited. The core raises it while
	// ProbeRTT deliberately caps the amount of data in flight.
	AppLimitedUntil ByteCount
	// SendEmptyAck, if set, instructs the connection to emit a pure ACK for
	// the given receive sequence, with or without an ECN echo. Used to flush
	// delayed-ACK state across CE transitions; the header mechanics stay with
	// the connection.
	SendEmptyAck func(ackSeq SequenceNumber, withEcnEcho bool)
}

// A RateSample carries the per-ACK delivery statistics produced by the
// connection's rate sampler. It is treated as immutable.
type RateSample struct {
	// Delivered is the number of bytes delivered over Interval. Negative
	// values mark an invalid sample.
	Delivered ByteCount
	// Interval is the sampling interval. A zero interval marks an invalid
	// sample.
	Interval time.Duration
	// DeliveryRate is the delivery rate of the sample.
	DeliveryRate Bandwidth
	// IsAppLimited reports that the sample may understate the path capacity
	// because the sender ran out of data.
	IsAppLimited bool
	// PriorInFlight is the number of bytes in flight before the ACK arrived.
	PriorInFlight ByteCount
	// BytesLoss is the number of bytes newly marked lost.
	BytesLoss ByteCount
	// AckedSacked is the number of bytes newly acked or sacked.
	AckedSacked ByteCount
	// PriorDelivered is the connection's cumulative delivered-byte count when
	// the sampled packet was sent.
	PriorDelivered ByteCount
}

// DeliveryTotals carries the connection-lifetime delivery counters.
type DeliveryTotals struct {
	// Delivered is the total number of bytes delivered so far.
	Delivered ByteCount
}
