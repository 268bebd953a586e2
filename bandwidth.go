package tcpbbr

import (
	"math"
	"time"
)

// Bandwidth of a connection, stored in bits per second resolution.
type Bandwidth uint64

const (
	// BitsPerSecond is 1 bit per second.
	BitsPerSecond Bandwidth = 1
	// BytesPerSecond is 8 bits per second.
	BytesPerSecond = 8 * BitsPerSecond
)

const infBandwidth = Bandwidth(math.MaxUint64)

// BandwidthFromDelta calculates the bandwidth from a number of bytes and a
// time delta.
func BandwidthFromDelta(bytes ByteCount, delta time.Duration) Bandwidth {
	if delta <= 0 {
		return 0
	}
	return Bandwidth(bytes) * Bandwidth(time.Second) / Bandwidth(delta) * BytesPerSecond
}

// toBytesPerInterval returns the number of bytes the bandwidth delivers over
// the given interval.
func (b Bandwidth) toBytesPerInterval(interval time.Duration) ByteCount {
	return ByteCount(float64(b) * interval.Seconds() / 8)
}
