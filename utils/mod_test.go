package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Equal(t, 0.0, Mean([]float64{}))
	require.InDelta(t, 0.5, Mean([]float64{0.25, 0.75, 0.5}), 1e-12)
	require.Equal(t, float32(2), Mean([]float32{1, 3}))
}
