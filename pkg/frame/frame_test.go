package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumericColumnMarksMissing(t *testing.T) {
	col := NewNumericColumn("x", []float64{1, math.NaN(), math.Inf(1), 4})
	assert.Equal(t, []bool{false, true, true, false}, col.Missing)
	assert.Equal(t, KindNumeric, col.Kind)
	assert.Equal(t, 4, col.Len())
}

func TestNewCategoricalColumnMarksSentinel(t *testing.T) {
	col := NewCategoricalColumn("c", []string{"a", "", "b", ""}, "")
	assert.Equal(t, []bool{false, true, false, true}, col.Missing)
	assert.False(t, col.AllMissing())
	assert.True(t, col.AnyMissing())
}

func TestColumnAllMissing(t *testing.T) {
	col := NewNumericColumn("x", []float64{math.NaN(), math.NaN()})
	assert.True(t, col.AllMissing())
}

func TestColumnSubset(t *testing.T) {
	col := NewNumericColumn("x", []float64{10, 20, 30, 40})
	sub := col.Subset([]int{1, 3})
	require.Equal(t, []float64{20, 40}, sub.Nums)
	assert.Equal(t, "x", sub.Name)
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	a := NewNumericColumn("a", []float64{1, 2, 3})
	b := NewNumericColumn("b", []float64{1, 2})
	_, err := New(a, b)
	assert.Error(t, err)
}

func TestFrameColumnLookup(t *testing.T) {
	a := NewNumericColumn("a", []float64{1, 2})
	b := NewCategoricalColumn("b", []string{"x", "y"}, "")
	fr, err := New(a, b)
	require.NoError(t, err)

	assert.Equal(t, 2, fr.RowCount())
	assert.Equal(t, []string{"a", "b"}, fr.ColumnNames())
	assert.True(t, fr.HasColumn("a"))
	assert.False(t, fr.HasColumn("z"))

	col, ok := fr.Column("b")
	require.True(t, ok)
	assert.Equal(t, KindCategorical, col.Kind)

	assert.Equal(t, []int{0, 1}, fr.AllRows())
}

func TestIsMissingNumeric(t *testing.T) {
	assert.True(t, IsMissingNumeric(math.NaN()))
	assert.True(t, IsMissingNumeric(math.Inf(-1)))
	assert.False(t, IsMissingNumeric(0))
}
