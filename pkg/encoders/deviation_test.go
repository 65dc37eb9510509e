package encoders

import (
	"testing"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/stretchr/testify/assert"
)

func TestFitDeviationPerLevelStd(t *testing.T) {
	cats := []string{"a", "a", "a", "b", "b", "b"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	y := []float64{1, 2, 3, 10, 10, 10}
	enc := FitDeviation(col, allRowsOf(len(cats)), y)
	assert.Greater(t, enc.Std()["a"], 0.0)
	assert.Equal(t, 0.0, enc.Std()["b"])
}

func TestFitDeviationFallsBackToPooledForSingleObservationLevel(t *testing.T) {
	cats := []string{"a", "a", "b"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	y := []float64{1, 3, 100}
	enc := FitDeviation(col, allRowsOf(len(cats)), y)
	assert.Equal(t, enc.Pooled(), enc.Std()["b"])
}

func TestDeviationApplyNovelLevelUsesPooled(t *testing.T) {
	cats := []string{"a", "a", "b", "b"}
	col := frame.NewCategoricalColumn("dept", cats, "")
	y := []float64{1, 2, 10, 12}
	enc := FitDeviation(col, allRowsOf(len(cats)), y)

	fresh := frame.NewCategoricalColumn("dept", []string{"never_seen"}, "")
	out := enc.Apply(fresh, []int{0})[0]
	assert.Equal(t, enc.Pooled(), out[0])
}

func TestRestoreDeviationRoundTrip(t *testing.T) {
	std := map[string]float64{"a": 1.1}
	enc := RestoreDeviation("dept", std, 2.2)
	assert.Equal(t, []string{"dept_catD"}, enc.Names())
	assert.Equal(t, 2.2, enc.Pooled())
}
