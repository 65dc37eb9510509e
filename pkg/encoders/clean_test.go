package encoders

import (
	"math"
	"testing"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitCleanImputesMean(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, 2, math.NaN(), 3})
	enc := FitClean(col, []int{0, 1, 2, 3}, Imputation{Strategy: ImputeMean})
	assert.InDelta(t, 2.0, enc.Fill(), 1e-9)

	out := enc.Apply(col, []int{0, 1, 2, 3})
	require.Len(t, out, 1)
	assert.Equal(t, []float64{1, 2, 2, 3}, out[0])
}

func TestFitCleanImputesMedian(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, 2, 100, math.NaN()})
	enc := FitClean(col, []int{0, 1, 2, 3}, Imputation{Strategy: ImputeMedian})
	assert.InDelta(t, 2.0, enc.Fill(), 1e-9)
}

func TestFitCleanImputesCustom(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, 2, 3})
	enc := FitClean(col, []int{0, 1, 2}, Imputation{
		Strategy: ImputeCustom,
		Custom:   func(vals []float64) float64 { return -1 },
	})
	assert.Equal(t, -1.0, enc.Fill())
}

func TestFitCleanCollaredClipsExtremeValues(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 1000}
	col := frame.NewNumericColumn("x", vals)
	rows := make([]int, len(vals))
	for i := range rows {
		rows[i] = i
	}
	enc := FitCleanCollared(col, rows, Imputation{Strategy: ImputeMean}, 0.1)

	low, high, collared := enc.Collared()
	require.True(t, collared)
	assert.Less(t, high, 1000.0)

	out := enc.Apply(col, rows)[0]
	assert.Equal(t, high, out[len(out)-1])
	assert.GreaterOrEqual(t, out[0], low)
}

func TestRestoreCleanRoundTrip(t *testing.T) {
	col := frame.NewNumericColumn("x", []float64{1, 2, 3})
	restored := RestoreClean("x", 1.5, 0, 10, true)
	out := restored.Apply(col, []int{0, 1, 2})[0]
	assert.Equal(t, []float64{1, 2, 3}, out)
	low, high, collared := restored.Collared()
	assert.Equal(t, 0.0, low)
	assert.Equal(t, 10.0, high)
	assert.True(t, collared)
}
