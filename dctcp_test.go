package tcpbbr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tcpbbr/tcpbbr/logging"
)

func TestAlphaUpdateOnWindowClose(t *testing.T) {
	h := newTestBbrSender(t)
	require.InDelta(t, 1.0, h.sender.Alpha(), 1e-9)

	h.ss.NextTxSequence = 1000
	h.ss.LastAckedSeq = 500

	// 50 marked bytes, window still open
	h.ss.EcnState = EcnStateEceRcvd
	h.sender.OnPacketsAcked(h.ss, 50, testRTT)
	require.InDelta(t, 1.0, h.sender.Alpha(), 1e-9)

	// 50 unmarked bytes, the acked sequence passes the window boundary
	h.ss.EcnState = EcnStateIdle
	h.ss.LastAckedSeq = 1000
	h.ss.NextTxSequence = 2000
	h.sender.OnPacketsAcked(h.ss, 50, testRTT)
	// alpha = 0.9375 * 1.0 + 0.0625 * (50 / 100)
	require.InDelta(t, 0.96875, h.sender.Alpha(), 1e-9)

	// the next window starts fresh at the new send position
	require.Equal(t, SequenceNumber(2000), h.sender.dctcp.nextSeq)
	require.Zero(t, h.sender.dctcp.ackedBytesEcn)
	require.Zero(t, h.sender.dctcp.ackedBytesTotal)
}

func TestAlphaWindowCloseWithoutAckedBytes(t *testing.T) {
	h := newTestBbrSender(t)
	h.sender.dctcp.nextSeqSet = true
	h.sender.dctcp.nextSeq = 100
	h.ss.LastAckedSeq = 100

	h.sender.OnPacketsAcked(h.ss, 0, testRTT)
	// marked fraction is 0 when nothing was acked in the window
	require.InDelta(t, 0.9375, h.sender.Alpha(), 1e-9)
}

func TestWindowCloseEmitsCongestionEstimate(t *testing.T) {
	h := newTestBbrSender(t)
	var gotMarked, gotAcked ByteCount
	var gotAlpha float64
	h.sender.tracer = &logging.ConnectionTracer{
		UpdatedCongestionEstimate: func(bytesMarked, bytesAcked logging.ByteCount, alpha float64) {
			gotMarked, gotAcked, gotAlpha = bytesMarked, bytesAcked, alpha
		},
	}

	h.ss.NextTxSequence = 1000
	h.ss.EcnState = EcnStateEceRcvd
	h.sender.OnPacketsAcked(h.ss, 50, testRTT)
	h.ss.EcnState = EcnStateIdle
	h.ss.LastAckedSeq = 1000
	h.sender.OnPacketsAcked(h.ss, 50, testRTT)

	require.Equal(t, ByteCount(50), gotMarked)
	require.Equal(t, ByteCount(100), gotAcked)
	require.InDelta(t, 0.96875, gotAlpha, 1e-9)
}

func TestMarkedAcksNudgeTheWindowGain(t *testing.T) {
	h := newTestBbrSender(t)
	h.sender.cwndGain = 2
	h.ss.EcnState = EcnStateEceRcvd

	h.ss.EctCodePoint = Ect0
	h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT)
	require.InDelta(t, 2.1, h.sender.CwndGain(), 1e-9)
	for i := 0; i < 10; i++ {
		h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT)
	}
	require.InDelta(t, 2.5, h.sender.CwndGain(), 1e-9) // upper bound

	h.ss.EctCodePoint = Ect1
	for i := 0; i < 20; i++ {
		h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT)
	}
	require.InDelta(t, 1.5, h.sender.CwndGain(), 1e-9) // lower bound
}

func TestUnmarkedAcksLeaveTheWindowGainAlone(t *testing.T) {
	h := newTestBbrSender(t)
	gain := h.sender.CwndGain()
	h.ss.EcnState = EcnStateIdle
	h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT)
	require.InDelta(t, gain, h.sender.CwndGain(), 1e-9)
}

func TestRTTJitterTracksDeviationFromMinRTT(t *testing.T) {
	h := newTestBbrSender(t)
	require.Zero(t, h.sender.RTTJitter())

	h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT+16*time.Millisecond)
	// jitter = 0.9375 * 0 + 0.0625 * 16ms
	require.Equal(t, time.Millisecond, h.sender.RTTJitter())

	h.sender.OnPacketsAcked(h.ss, segmentSize, testRTT)
	require.Less(t, h.sender.RTTJitter(), time.Millisecond)
}

func TestInitializeDctcpAlpha(t *testing.T) {
	clock := mockClock(time.Unix(1700000000, 0))
	sender, err := NewBbrSender(&clock, &Config{RandomSeed: 1}, nil, nil)
	require.NoError(t, err)

	sender.InitializeDctcpAlpha(0.5)
	require.InDelta(t, 0.5, sender.Alpha(), 1e-9)

	sender.Initialize(&SocketState{})
	require.Panics(t, func() { sender.InitializeDctcpAlpha(0.25) })
}

func TestCeTransitionsReAckPendingDelayedAcks(t *testing.T) {
	type sentAck struct {
		seq SequenceNumber
		ece bool
	}
	h := newTestBbrSender(t)
	var acks []sentAck
	h.ss.SendEmptyAck = func(seq SequenceNumber, withEcnEcho bool) {
		acks = append(acks, sentAck{seq: seq, ece: withEcnEcho})
	}
	h.ss.EcnState = EcnStateIdle
	h.ss.NextRxSequence = 500

	// first CE arrival: nothing pending yet, no re-ACK
	h.sender.OnCwndEvent(h.ss, CwndEventEcnIsCE)
	require.Empty(t, acks)
	require.Equal(t, EcnStateCeRcvd, h.ss.EcnState)

	// with a delayed ACK reserved, the CE-to-no-CE flip re-ACKs the old data
	// with an ECN echo
	h.sender.OnCwndEvent(h.ss, CwndEventDelayedAck)
	h.ss.NextRxSequence = 800
	h.sender.OnCwndEvent(h.ss, CwndEventEcnNoCE)
	require.Equal(t, []sentAck{{seq: 500, ece: true}}, acks)
	require.Equal(t, EcnStateIdle, h.ss.EcnState)

	// and the no-CE-to-CE flip re-ACKs without one
	h.ss.NextRxSequence = 1200
	h.sender.OnCwndEvent(h.ss, CwndEventEcnIsCE)
	require.Equal(t, []sentAck{{seq: 500, ece: true}, {seq: 800, ece: false}}, acks)
	require.Equal(t, EcnStateCeRcvd, h.ss.EcnState)
}

func TestCeArrivalForcesCeRcvdFromAnyEcnState(t *testing.T) {
	h := newTestBbrSender(t)

	// a CE mark overrides whatever the ECN state machine was doing
	h.ss.EcnState = EcnStateEceRcvd
	h.sender.OnCwndEvent(h.ss, CwndEventEcnIsCE)
	require.Equal(t, EcnStateCeRcvd, h.ss.EcnState)

	// the reverse transition only clears a pending congestion signal
	h.ss.EcnState = EcnStateEceRcvd
	h.sender.OnCwndEvent(h.ss, CwndEventEcnNoCE)
	require.Equal(t, EcnStateEceRcvd, h.ss.EcnState)

	h.ss.EcnState = EcnStateSendingEce
	h.sender.OnCwndEvent(h.ss, CwndEventEcnIsCE)
	require.Equal(t, EcnStateCeRcvd, h.ss.EcnState)
	h.sender.OnCwndEvent(h.ss, CwndEventEcnNoCE)
	require.Equal(t, EcnStateIdle, h.ss.EcnState)
}

func TestNonDelayedAckClearsTheReservation(t *testing.T) {
	h := newTestBbrSender(t)
	var acked bool
	h.ss.SendEmptyAck = func(SequenceNumber, bool) { acked = true }
	h.ss.EcnState = EcnStateIdle
	h.ss.NextRxSequence = 500

	h.sender.OnCwndEvent(h.ss, CwndEventEcnIsCE)
	h.sender.OnCwndEvent(h.ss, CwndEventDelayedAck)
	h.sender.OnCwndEvent(h.ss, CwndEventNonDelayedAck)
	h.sender.OnCwndEvent(h.ss, CwndEventEcnNoCE)
	require.False(t, acked)
}
