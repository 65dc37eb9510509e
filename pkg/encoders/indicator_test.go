package encoders

import (
	"testing"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRowsOf(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestFitIndicatorRespectsMinFraction(t *testing.T) {
	cats := []string{"a", "a", "a", "a", "a", "a", "a", "a", "b", "c"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	enc, ok := FitIndicator(col, allRowsOf(len(cats)), 0.2)
	require.True(t, ok)
	// only "a" clears 0.2 prevalence (8/10); b and c are each 1/10.
	assert.Equal(t, []string{"a"}, enc.Levels())
}

func TestFitIndicatorSingleLevelSkipped(t *testing.T) {
	cats := []string{"a", "a", "a"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	_, ok := FitIndicator(col, allRowsOf(len(cats)), 0.1)
	assert.False(t, ok)
}

func TestFitIndicatorCapsEmissionCount(t *testing.T) {
	cats := []string{"a", "b", "c", "d", "e"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	// minFraction=0.2 -> maxIndicators = 5, every level qualifies at 1/5 each.
	enc, ok := FitIndicator(col, allRowsOf(len(cats)), 0.2)
	require.True(t, ok)
	assert.Len(t, enc.Levels(), 5)
}

func TestIndicatorApplyOneHot(t *testing.T) {
	cats := []string{"a", "b", "a", "b"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	enc, ok := FitIndicator(col, allRowsOf(len(cats)), 0.1)
	require.True(t, ok)

	out := enc.Apply(col, allRowsOf(len(cats)))
	require.Len(t, out, len(enc.Levels()))
	for k, level := range enc.Levels() {
		for i, c := range cats {
			if c == level {
				assert.Equal(t, 1.0, out[k][i])
			} else {
				assert.Equal(t, 0.0, out[k][i])
			}
		}
	}
}

func TestIndicatorMissingTreatedAsLevel(t *testing.T) {
	cats := []string{"a", "", "a", ""}
	col := frame.NewCategoricalColumn("dept", cats, "")
	enc, ok := FitIndicator(col, allRowsOf(len(cats)), 0.1)
	require.True(t, ok)
	assert.Contains(t, enc.Levels(), missingLevel)
}
