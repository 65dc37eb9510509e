package encoders

import (
	"math"
	"testing"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitIsBadSkippedWhenNoMissing(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, 2, 3})
	_, ok := FitIsBad(col, []int{0, 1, 2})
	assert.False(t, ok)
}

func TestFitIsBadEmitsIndicator(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, math.NaN(), 3, math.NaN()})
	enc, ok := FitIsBad(col, []int{0, 1, 2, 3})
	require.True(t, ok)
	assert.InDelta(t, 0.5, enc.Mean(), 1e-9)

	out := enc.Apply(col, []int{0, 1, 2, 3})[0]
	assert.Equal(t, []float64{0, 1, 0, 1}, out)
}

func TestRestoreIsBadRoundTrip(t *testing.T) {
	enc := RestoreIsBad("x", 0.3)
	assert.Equal(t, "x", enc.Origin())
	assert.Equal(t, []string{"x_isBAD"}, enc.Names())
	assert.Equal(t, []float64{0.3}, enc.MeanEmitted())
}
