package crossfit

import (
	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/stats"
)

// applyScaling implements the `scale` parameter: every
// derived column is rescaled in place to outcome units via a one-variable
// regression slope, and the corresponding deployment encoder is wrapped
// so transform-time output stays in the same units. Multi-column kinds
// (indicator) share a single slope fit against their first column, since
// indicator columns are already 0/1-scaled and rescaling only matters for
// the continuous kinds (clean, prevalence, impact, deviation).
func applyScaling(cf *core.CrossFrame, plans []kindPlan, colOffset []int, deployEncoders []encoders.Encoder, outcome frame.Outcome, effectiveRows []int) {
	y := outcome.NumericAt(effectiveRows)
	for i, p := range plans {
		base := colOffset[i]
		vals := subsetColumn(cf, base, effectiveRows)
		scaler := stats.NewOutcomeScaler()
		scaler.Fit(vals, y)
		if scaler.Slope == 0 || scaler.Slope == 1 {
			continue
		}
		for k := range p.names {
			col := base + k
			full := cf.Column(col)
			for r := range full {
				full[r] *= scaler.Slope
			}
			cf.WriteColumn(col, allIndices(len(full)), full)
		}
		deployEncoders[i] = encoders.NewScaledEncoder(deployEncoders[i], scaler.Slope)
	}
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
