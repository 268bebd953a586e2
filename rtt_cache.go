package tcpbbr

import (
	"sync"
	"time"

	"github.com/tcpbbr/tcpbbr/internal/utils/ringbuffer"
)

// DefaultRTTCacheCapacity is the number of samples an RTTCache created with
// NewRTTCache retains.
const DefaultRTTCacheCapacity = 10

// An RTTSample is one minimum-RTT observation, tagged with the time it was
// adopted.
type RTTSample struct {
	RTT  time.Duration
	Time time.Time
}

// RTTCache is a bounded cache of the most recent minimum-RTT estimates,
// shared between connections for external reporting. It is the only piece of
// state multiple connections may touch concurrently: appends and snapshots
// are safe from any goroutine, and the oldest sample is evicted once the
// capacity is reached.
type RTTCache struct {
	mx      sync.RWMutex
	samples ringbuffer.RingBuffer[RTTSample]
}

// NewRTTCache creates an RTTCache with the default capacity.
func NewRTTCache() *RTTCache { return NewRTTCacheWithCapacity(DefaultRTTCacheCapacity) }

// NewRTTCacheWithCapacity creates an RTTCache retaining the given number of
// samples.
func NewRTTCacheWithCapacity(capacity int) *RTTCache {
	c := &RTTCache{}
	c.samples.Init(capacity)
	return c
}

// Add records a new sample, evicting the oldest one if the cache is full.
func (c *RTTCache) Add(sample RTTSample) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.samples.PushBack(sample)
}

// Len returns the number of samples currently held.
func (c *RTTCache) Len() int {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.samples.Len()
}

// Snapshot returns a copy of the retained samples, oldest first. The copy is
// consistent: no concurrent Add is reflected partially.
func (c *RTTCache) Snapshot() []RTTSample {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.samples.AppendTo(make([]RTTSample, 0, c.samples.Len()))
}
