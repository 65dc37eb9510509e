package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreNumericConstantColumnHasNoVariance(t *testing.T) {
	values := []float64{1, 1, 1, 1}
	y := []float64{1, 2, 3, 4}
	row := ScoreNumeric("x_clean", "x", "clean", false, 0, values, y)
	assert.False(t, row.VarMoves)
	assert.Equal(t, 1.0, row.Sig)
}

func TestScoreNumericStrongPredictorScoresHigh(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2, 4, 6, 8, 10, 12, 14, 16}
	row := ScoreNumeric("x_clean", "x", "clean", false, 0, values, y)
	assert.True(t, row.VarMoves)
	assert.InDelta(t, 1.0, row.Rsq, 1e-6)
	assert.Less(t, row.Sig, 0.01)
}

func TestScoreBinomialSeparatingPredictor(t *testing.T) {
	values := []float64{-3, -2, -1, 1, 2, 3}
	y01 := []float64{0, 0, 0, 1, 1, 1}
	row := ScoreBinomial("x_catB", "x", "impact", true, 5, values, y01)
	assert.True(t, row.VarMoves)
	assert.Greater(t, row.Rsq, 0.0)
}

func TestApplyRecommendationsThreshold(t *testing.T) {
	rows := []Row{
		{VarMoves: true, Sig: 0.001},
		{VarMoves: true, Sig: 0.9},
		{VarMoves: false, Sig: 0.0001},
	}
	ApplyRecommendations(rows)
	assert.True(t, rows[0].Recommended)
	assert.False(t, rows[1].Recommended)
	assert.False(t, rows[2].Recommended, "a constant column is never recommended even with a tiny sig")
}
