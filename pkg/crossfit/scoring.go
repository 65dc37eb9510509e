package crossfit

import (
	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/score"
	"github.com/slee1009/vtreat/pkg/stats"
)

// scoreColumns runs the significance scorer over every derived column,
// restricted to effectiveRows so a row with no recorded outcome never
// contaminates the fit.
func scoreColumns(cf *core.CrossFrame, plans []kindPlan, colOffset []int, deployEncoders []encoders.Encoder, outcome frame.Outcome, effectiveRows []int) []score.Row {
	var y []float64
	var y01 []float64
	switch outcome.Kind {
	case frame.OutcomeNumeric:
		y = outcome.NumericAt(effectiveRows)
	case frame.OutcomeBinomial:
		y01 = outcome.Binary(effectiveRows)
	}

	var rows []score.Row
	for i, p := range plans {
		base := colOffset[i]
		extraDegrees := 0
		if i < len(deployEncoders) && deployEncoders[i] != nil {
			extraDegrees = deployEncoders[i].ExtraDegrees()
		}
		for k, name := range p.names {
			col := subsetColumn(cf, base+k, effectiveRows)
			switch outcome.Kind {
			case frame.OutcomeNumeric:
				rows = append(rows, score.ScoreNumeric(name, p.origin, string(p.kind), p.kind.NeedsSplit(), extraDegrees, col, y))
			case frame.OutcomeBinomial:
				rows = append(rows, score.ScoreBinomial(name, p.origin, string(p.kind), p.kind.NeedsSplit(), extraDegrees, col, y01))
			default:
				rows = append(rows, score.Row{
					VarName: name, Origin: p.origin, Kind: string(p.kind),
					NeedsSplit: p.kind.NeedsSplit(), ExtraModelDegrees: extraDegrees,
					VarMoves: stats.Variance(col) > 0, Sig: 1,
				})
			}
		}
	}
	return rows
}

func subsetColumn(cf *core.CrossFrame, j int, rows []int) []float64 {
	full := cf.Column(j)
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = full[r]
	}
	return out
}
