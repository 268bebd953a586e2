package tcpbbr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBandwidthFromDelta(t *testing.T) {
	// 1000 bytes in 10ms is 100 kB/s, or 800 kbit/s
	require.Equal(t, 800_000*BitsPerSecond, BandwidthFromDelta(1000, 10*time.Millisecond))
	require.Zero(t, BandwidthFromDelta(1000, 0))
	require.Zero(t, BandwidthFromDelta(1000, -time.Millisecond))
}

func TestBandwidthToBytesPerInterval(t *testing.T) {
	bw := BandwidthFromDelta(1000, 10*time.Millisecond)
	require.Equal(t, ByteCount(1000), bw.toBytesPerInterval(10*time.Millisecond))
	require.Equal(t, ByteCount(100_000), bw.toBytesPerInterval(time.Second))
	require.Zero(t, bw.toBytesPerInterval(0))
}
