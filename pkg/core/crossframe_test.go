package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCrossFrameShapeAndNames(t *testing.T) {
	cf := NewCrossFrame(4, []string{"a_clean", "b_catB"})
	assert.Equal(t, 4, cf.R)
	assert.Equal(t, 2, cf.C)
	assert.Equal(t, []string{"a_clean", "b_catB"}, cf.Names)
}

func TestColumnIndexFindsByName(t *testing.T) {
	cf := NewCrossFrame(1, []string{"a_clean", "b_catB"})
	assert.Equal(t, 0, cf.ColumnIndex("a_clean"))
	assert.Equal(t, 1, cf.ColumnIndex("b_catB"))
	assert.Equal(t, -1, cf.ColumnIndex("missing"))
}

func TestWriteColumnWritesSelectedRows(t *testing.T) {
	cf := NewCrossFrame(4, []string{"x"})
	cf.WriteColumn(0, []int{1, 3}, []float64{10, 30})
	assert.Equal(t, 0.0, cf.At(0, 0))
	assert.Equal(t, 10.0, cf.At(1, 0))
	assert.Equal(t, 0.0, cf.At(2, 0))
	assert.Equal(t, 30.0, cf.At(3, 0))
}

func TestColumnExtractsCopy(t *testing.T) {
	cf := NewCrossFrame(3, []string{"x", "y"})
	cf.WriteColumn(1, []int{0, 1, 2}, []float64{1, 2, 3})
	got := cf.Column(1)
	assert.Equal(t, []float64{1, 2, 3}, got)

	got[0] = 999
	assert.Equal(t, 1.0, cf.At(0, 1), "Column must return a copy, not a view")
}

func TestRowExtractsCopy(t *testing.T) {
	cf := NewCrossFrame(2, []string{"x", "y"})
	cf.Set(1, 0, 5)
	cf.Set(1, 1, 6)
	row := cf.Row(1)
	assert.Equal(t, []float64{5, 6}, row)

	row[0] = 999
	assert.Equal(t, 5.0, cf.At(1, 0), "Row must return a copy, not a view")
}

func TestDisjointColumnWritesDoNotInterfere(t *testing.T) {
	cf := NewCrossFrame(2, []string{"a", "b", "c"})
	cf.WriteColumn(0, []int{0, 1}, []float64{1, 2})
	cf.WriteColumn(2, []int{0, 1}, []float64{7, 8})
	assert.Equal(t, 0.0, cf.At(0, 1))
	assert.Equal(t, 7.0, cf.At(0, 2))
	assert.Equal(t, 1.0, cf.At(0, 0))
}
