package ringbuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingBufferPushAndPop(t *testing.T) {
	var r RingBuffer[int]
	r.Init(4)
	require.True(t, r.Empty())
	require.Zero(t, r.Len())

	r.PushBack(1)
	r.PushBack(2)
	require.False(t, r.Empty())
	require.Equal(t, 2, r.Len())
	require.Equal(t, 1, r.PopFront())
	require.Equal(t, 2, r.PopFront())
	require.True(t, r.Empty())
}

func TestRingBufferEvictsTheOldestEntryWhenFull(t *testing.T) {
	var r RingBuffer[int]
	r.Init(3)
	for i := 1; i <= 5; i++ {
		r.PushBack(i)
	}
	require.Equal(t, 3, r.Len())
	require.Equal(t, []int{3, 4, 5}, r.AppendTo(nil))
}

func TestRingBufferAppendToWrapsAroundTheRing(t *testing.T) {
	var r RingBuffer[int]
	r.Init(4)
	r.PushBack(1)
	r.PushBack(2)
	r.PushBack(3)
	require.Equal(t, 1, r.PopFront())
	r.PushBack(4)
	r.PushBack(5) // tail wraps past the start of the ring
	require.Equal(t, []int{2, 3, 4, 5}, r.AppendTo(nil))

	dst := []int{0}
	require.Equal(t, []int{0, 2, 3, 4, 5}, r.AppendTo(dst))
}

func TestRingBufferPopFromEmptyPanics(t *testing.T) {
	var r RingBuffer[int]
	r.Init(2)
	require.Panics(t, func() { r.PopFront() })
}

func TestRingBufferClear(t *testing.T) {
	var r RingBuffer[int]
	r.Init(2)
	r.PushBack(1)
	r.PushBack(2)
	r.Clear()
	require.True(t, r.Empty())
	require.Zero(t, r.Len())

	r.PushBack(3)
	require.Equal(t, []int{3}, r.AppendTo(nil))
}
