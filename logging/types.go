package logging

import "github.com/tcpbbr/tcpbbr/internal/protocol"

// A ByteCount in TCP.
type ByteCount = protocol.ByteCount

// A CongestionControlState is a state of the BBR mode machine.
type CongestionControlState uint8

const (
	// CongestionStateStartup: ramp up the sending rate rapidly to fill the pipe.
	CongestionStateStartup CongestionControlState = iota
	// CongestionStateDrain: drain the queue created during startup.
	CongestionStateDrain
	// CongestionStateProbeBW: discover and share bandwidth, pacing around the estimate.
	CongestionStateProbeBW
	// CongestionStateProbeRTT: cut in-flight data to measure the minimum RTT.
	CongestionStateProbeRTT
)

func (s CongestionControlState) String() string {
	switch s {
	case CongestionStateStartup:
		return "startup"
	case CongestionStateDrain:
		return "drain"
	case CongestionStateProbeBW:
		return "probe_bw"
	case CongestionStateProbeRTT:
		return "probe_rtt"
	default:
		return "unknown"
	}
}
