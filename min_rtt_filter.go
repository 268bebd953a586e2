package tcpbbr

import (
	"math"
	"time"
)

const infRTT = time.Duration(math.MaxInt64)

// minRTTFilter tracks the minimum RTT observed over a sliding time window.
// A new sample is admitted when it does not exceed the current minimum, or
// when the current minimum has expired.
type minRTTFilter struct {
	filterLen time.Duration
	rtt       time.Duration
	stamp     time.Time
}

func newMinRTTFilter(filterLen time.Duration) *minRTTFilter {
	return &minRTTFilter{
		filterLen: filterLen,
		rtt:       infRTT,
	}
}

// HasSample reports whether the filter holds a valid estimate.
func (f *minRTTFilter) HasSample() bool { return f.rtt != infRTT }

// MinRTT returns the current minimum RTT estimate, or infRTT if no sample
// was admitted yet.
func (f *minRTTFilter) MinRTT() time.Duration { return f.rtt }

// Expired reports whether the current estimate is older than the filter
// window. An empty filter is never expired.
func (f *minRTTFilter) Expired(now time.Time) bool {
	return f.HasSample() && now.Sub(f.stamp) > f.filterLen
}

// Observe offers a new RTT sample. It returns true if the sample was
// admitted as the new minimum. Non-positive samples are ignored.
func (f *minRTTFilter) Observe(rtt time.Duration, now time.Time) bool {
	if rtt <= 0 {
		return false
	}
	if rtt <= f.rtt || f.Expired(now) {
		f.rtt = rtt
		f.stamp = now
		return true
	}
	return false
}

// ResetStamp restarts the expiry window without changing the estimate.
func (f *minRTTFilter) ResetStamp(now time.Time) { f.stamp = now }

// Reset discards the estimate, leaving the filter empty.
func (f *minRTTFilter) Reset() {
	f.rtt = infRTT
	f.stamp = time.Time{}
}
