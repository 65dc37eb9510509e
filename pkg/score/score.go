// Package score implements the significance scorer: a one-variable model
// of each derived column against the outcome, reduced to a coefficient
// of determination, a Wald-test p-value adjusted for the extra degrees
// of freedom a cross-validated encoder consumed, and the variance-moves
// flag that gates recommendation.
//
// This is grounded on pkg/model (the Fit/Predict shape) but
// deliberately does not reuse its gradient-descent LinearRegression /
// LogisticRegression. The numeric path uses the closed-form OLS fit; the
// binomial path runs Newton-Raphson (IRLS) iterations from a fixed start,
// so repeated fits on the same data give the same estimate — see
// pkg/stats/regression.go.
package score

import (
	"github.com/slee1009/vtreat/pkg/stats"
)

// Row is one record of the score frame:
// `var_name, var_moves, rsq, sig, needs_split, extra_model_degrees,
// origin, kind, recommended, outcome_level?`.
type Row struct {
	VarName           string
	VarMoves          bool
	Rsq               float64
	Sig               float64
	NeedsSplit        bool
	ExtraModelDegrees int
	Origin            string
	Kind              string
	Recommended       bool
	// OutcomeLevel is the class this row was scored against, set only for
	// multinomial outcomes.
	OutcomeLevel string
}

// ScoreNumeric scores a derived column against a numeric outcome.
func ScoreNumeric(varName, origin, kind string, needsSplit bool, extraDegrees int, values, y []float64) Row {
	row := Row{
		VarName: varName, Origin: origin, Kind: kind,
		NeedsSplit: needsSplit, ExtraModelDegrees: extraDegrees,
		VarMoves: stats.Variance(values) > 0, Sig: 1,
	}
	if !row.VarMoves {
		return row
	}
	fit := stats.FitOLS(values, y, extraDegrees)
	row.Rsq = fit.Rsq
	if fit.StdErrB == 0 && fit.DF > 0 && fit.Slope != 0 {
		// Zero residuals: the Wald statistic is unbounded.
		row.Sig = 0
		return row
	}
	row.Sig = stats.WaldP(fit.Slope, fit.StdErrB, fit.DF)
	return row
}

// ScoreBinomial scores a derived column against a binomial (0/1) outcome.
func ScoreBinomial(varName, origin, kind string, needsSplit bool, extraDegrees int, values, y01 []float64) Row {
	row := Row{
		VarName: varName, Origin: origin, Kind: kind,
		NeedsSplit: needsSplit, ExtraModelDegrees: extraDegrees,
		VarMoves: stats.Variance(values) > 0, Sig: 1,
	}
	if !row.VarMoves {
		return row
	}
	fit := stats.FitLogisticIRLS(values, y01, 50)
	df := float64(len(values)-2) - float64(extraDegrees)
	row.Rsq = fit.PseudoRsq
	row.Sig = stats.WaldP(fit.Slope, fit.StdErrB, df)
	return row
}

// ApplyRecommendations sets Recommended on every row:
// `recommended = var_moves ∧ (sig < 1 / derived_variable_count)`, the
// count being the total number of rows passed (one per derived column,
// or per derived-column-and-class for multinomial).
func ApplyRecommendations(rows []Row) {
	threshold := 1 / float64(len(rows))
	for i := range rows {
		rows[i].Recommended = rows[i].VarMoves && rows[i].Sig < threshold
	}
}
