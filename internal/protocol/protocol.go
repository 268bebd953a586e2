// Package protocol holds the basic types and constants shared between the
// congestion core and its telemetry packages.
package protocol

// A ByteCount in TCP.
type ByteCount int64

// A SequenceNumber is a position in the TCP byte stream.
// The core treats it as monotonic; wraparound handling belongs to the
// connection's sequence-number bookkeeping.
type SequenceNumber uint64

// DefaultTCPMSS is the default maximum segment size used for congestion
// window computations, in bytes.
const DefaultTCPMSS ByteCount = 1460

// InitialCongestionWindowSegments is the default initial congestion window,
// in segments.
const InitialCongestionWindowSegments = 10

// MaxByteCount is the maximum value of a ByteCount.
const MaxByteCount = ByteCount(1<<62 - 1)
