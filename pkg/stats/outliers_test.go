package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollarClipsToFittedBounds(t *testing.T) {
	c := NewCollar()
	train := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}
	c.Fit(train, 0.1)

	out := c.Apply([]float64{-50, 5, 500})
	assert.Equal(t, c.Lower, out[0])
	assert.Equal(t, 5.0, out[1])
	assert.Equal(t, c.Upper, out[2])
}

func TestCollarUnfitIsIdentity(t *testing.T) {
	c := NewCollar()
	in := []float64{1, 2, 3}
	out := c.Apply(in)
	assert.Equal(t, in, out)
}

func TestClipOutliersPerColumn(t *testing.T) {
	X := [][]float64{
		{1, 100},
		{2, 200},
		{3, 300},
		{1000, 1},
	}
	out := ClipOutliers(X, 10, 90)
	// column 0's high outlier (1000) in row 3 should be clipped down.
	assert.Less(t, out[3][0], 1000.0)
}
