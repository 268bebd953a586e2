package utils

import (
	"golang.org/x/exp/constraints"
)

// SaturatingSub subtracts b from a, flooring the result at zero.
// Byte counters are decremented by possibly-larger amounts in several places;
// this avoids the underflow.
func SaturatingSub[T constraints.Integer](a, b T) T {
	if a < b {
		return 0
	}
	return a - b
}
