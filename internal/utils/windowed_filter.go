package utils

import (
	"golang.org/x/exp/constraints"
)

// WindowedFilter tracks the best estimate of a stream of samples over some
// fixed window length, using Kathleen Nichols' three-estimate algorithm.
// The best estimate is the largest (or smallest, depending on the comparator)
// sample admitted within the window; second and third best estimates provide
// replacements once the best ages out.
//
// V is the type of the sample, T the type of the window index (round count
// or timestamp).
type WindowedFilter[V constraints.Ordered, T constraints.Integer] struct {
	windowLength T
	estimates    [3]entry[V, T]
	initialized  bool
	comparator   func(V, V) bool
}

type entry[V constraints.Ordered, T constraints.Integer] struct {
	sample V
	time   T
}

// MaxFilter compares two values and returns true if the first is greater.
func MaxFilter[T constraints.Ordered](a, b T) bool { return a > b }

// MinFilter compares two values and returns true if the first is smaller.
func MinFilter[T constraints.Ordered](a, b T) bool { return a < b }

func NewWindowedFilter[V constraints.Ordered, T constraints.Integer](windowLength T, comparator func(V, V) bool) *WindowedFilter[V, T] {
	return &WindowedFilter[V, T]{
		windowLength: windowLength,
		comparator:   comparator,
	}
}

// GetBest returns the best (largest for a max filter, smallest for a min
// filter) estimate admitted within the window.
func (f *WindowedFilter[V, T]) GetBest() V {
	return f.estimates[0].sample
}

func (f *WindowedFilter[V, T]) GetSecondBest() V {
	return f.estimates[1].sample
}

func (f *WindowedFilter[V, T]) GetThirdBest() V {
	return f.estimates[2].sample
}

// Update admits a new sample recorded at the given time, expiring estimates
// that have aged out of the window.
func (f *WindowedFilter[V, T]) Update(newSample V, newTime T) {
	// Reset all estimates if they have not yet been initialized, if the new
	// sample is a new best, or if the newest recorded estimate is too old.
	if !f.initialized || f.comparator(newSample, f.estimates[0].sample) || newTime-f.estimates[2].time > f.windowLength {
		f.Reset(newSample, newTime)
		return
	}

	if f.comparator(newSample, f.estimates[1].sample) {
		f.estimates[1] = entry[V, T]{newSample, newTime}
		f.estimates[2] = f.estimates[1]
	} else if f.comparator(newSample, f.estimates[2].sample) {
		f.estimates[2] = entry[V, T]{newSample, newTime}
	}

	if newTime-f.estimates[0].time > f.windowLength {
		// The best estimate hasn't been updated for an entire window, so
		// promote second and third best estimates.
		f.estimates[0] = f.estimates[1]
		f.estimates[1] = f.estimates[2]
		f.estimates[2] = entry[V, T]{newSample, newTime}
		// Check if the new best estimate is outside the window as well, since
		// it may also have been recorded a long time ago. Don't need to
		// iterate once more since we cover that case at the beginning of the
		// method.
		if newTime-f.estimates[0].time > f.windowLength {
			f.estimates[0] = f.estimates[1]
			f.estimates[1] = f.estimates[2]
		}
		return
	}

	if f.estimates[1].sample == f.estimates[0].sample && newTime-f.estimates[1].time > f.windowLength/4 {
		// A quarter of the window has passed without a better sample, so the
		// second-best estimate is taken from the second quarter of the
		// window.
		f.estimates[1] = entry[V, T]{newSample, newTime}
		f.estimates[2] = f.estimates[1]
		return
	}

	if f.estimates[2].sample == f.estimates[1].sample && newTime-f.estimates[2].time > f.windowLength/2 {
		// We've passed a half of the window without a better estimate, so
		// take a third-best estimate from the second half of the window.
		f.estimates[2] = entry[V, T]{newSample, newTime}
	}
}

// Reset sets all estimates to the given sample.
func (f *WindowedFilter[V, T]) Reset(newSample V, newTime T) {
	e := entry[V, T]{newSample, newTime}
	f.estimates[0], f.estimates[1], f.estimates[2] = e, e, e
	f.initialized = true
}
