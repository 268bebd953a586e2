// Package ringbuffer provides a fixed-capacity generic ring buffer that
// evicts its oldest entry on overflow.
package ringbuffer

// A RingBuffer of fixed capacity. Pushing to a full buffer drops the oldest
// entry. The zero value is unusable; call Init first.
type RingBuffer[T any] struct {
	ring             []T
	headPos, tailPos int
	full             bool
}

// Init allocates the buffer with the given capacity.
func (r *RingBuffer[T]) Init(capacity int) {
	r.ring = make([]T, capacity)
}

// Len returns the number of entries currently held.
func (r *RingBuffer[T]) Len() int {
	if r.full {
		return len(r.ring)
	}
	if r.tailPos >= r.headPos {
		return r.tailPos - r.headPos
	}
	return r.tailPos - r.headPos + len(r.ring)
}

// Empty says if the buffer holds no entries.
func (r *RingBuffer[T]) Empty() bool {
	return !r.full && r.headPos == r.tailPos
}

// PushBack appends an entry, evicting the oldest one if the buffer is full.
func (r *RingBuffer[T]) PushBack(t T) {
	if r.full {
		r.PopFront()
	}
	r.ring[r.tailPos] = t
	r.tailPos++
	if r.tailPos == len(r.ring) {
		r.tailPos = 0
	}
	if r.tailPos == r.headPos {
		r.full = true
	}
}

// PopFront removes and returns the oldest entry.
func (r *RingBuffer[T]) PopFront() T {
	if r.Empty() {
		panic("github.com/tcpbbr/tcpbbr/internal/utils/ringbuffer: pop from an empty buffer")
	}
	r.full = false
	t := r.ring[r.headPos]
	r.ring[r.headPos] = *new(T)
	r.headPos++
	if r.headPos == len(r.ring) {
		r.headPos = 0
	}
	return t
}

// AppendTo appends all entries, oldest first, to the given slice.
func (r *RingBuffer[T]) AppendTo(dst []T) []T {
	if r.Empty() {
		return dst
	}
	if r.tailPos > r.headPos {
		return append(dst, r.ring[r.headPos:r.tailPos]...)
	}
	dst = append(dst, r.ring[r.headPos:]...)
	return append(dst, r.ring[:r.tailPos]...)
}

// Clear removes all entries.
func (r *RingBuffer[T]) Clear() {
	var zeroValue T
	for i := range r.ring {
		r.ring[i] = zeroValue
	}
	r.headPos, r.tailPos, r.full = 0, 0, false
}
