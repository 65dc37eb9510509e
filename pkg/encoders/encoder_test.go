package encoders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPriorityOrder(t *testing.T) {
	assert.Less(t, KindClean.Priority(), KindIsBad.Priority())
	assert.Less(t, KindIsBad.Priority(), KindPrevalence.Priority())
	assert.Less(t, KindPrevalence.Priority(), KindImpact.Priority())
	assert.Less(t, KindImpact.Priority(), KindIndicator.Priority())
	assert.Less(t, KindIndicator.Priority(), KindDeviation.Priority())
}

func TestKindNeedsSplit(t *testing.T) {
	for _, k := range []Kind{KindPrevalence, KindImpact, KindDeviation} {
		assert.True(t, k.NeedsSplit(), "%s should need split", k)
	}
	for _, k := range []Kind{KindClean, KindIsBad, KindIndicator} {
		assert.False(t, k.NeedsSplit(), "%s should not need split", k)
	}
}

func TestSubstituteFiniteReplacesNonFinite(t *testing.T) {
	out := substituteFinite([]float64{1, posInf, negInf, 2}, -1)
	assert.Equal(t, []float64{1, -1, -1, 2}, out)
}
