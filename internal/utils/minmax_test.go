package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaturatingSub(t *testing.T) {
	require.Equal(t, 3, SaturatingSub(10, 7))
	require.Equal(t, 0, SaturatingSub(7, 10))
	require.Equal(t, uint64(0), SaturatingSub(uint64(0), uint64(1)))
	require.Equal(t, int64(5), SaturatingSub(int64(5), int64(0)))
}
