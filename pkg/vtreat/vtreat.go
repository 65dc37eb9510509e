// Package vtreat is the public facade: FitNumeric, FitBinomial,
// FitMultinomial, and FitUnsupervised each validate their Params, build
// the matching frame.Outcome descriptor, and delegate to pkg/treatment
// or pkg/multinomial for the actual cross-fit/score work.
package vtreat

import (
	"context"
	"fmt"

	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/crossfit"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/multinomial"
	"github.com/slee1009/vtreat/pkg/stats"
	"github.com/slee1009/vtreat/pkg/treatment"
)

// FitNumeric fits a treatment plan against a numeric outcome.
func FitNumeric(ctx context.Context, fr *frame.Frame, variables []string, y []float64, params Params) (*treatment.Plan, *core.CrossFrame, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := params.catScaling(true); err != nil {
		return nil, nil, err
	}
	if stats.Variance(y) == 0 {
		return nil, nil, ErrDegenerateOutcome
	}
	outcome := frame.NewNumericOutcome(y)
	cfg := toConfig(params, false)
	return treatment.Fit(ctx, fr, variables, outcome, cfg)
}

// FitBinomial fits a treatment plan against a binomial outcome: raw is
// the outcome column's raw string levels, one per row; params.PosValue
// names the level treated as positive.
func FitBinomial(ctx context.Context, fr *frame.Frame, variables []string, raw []string, missingSentinel string, params Params) (*treatment.Plan, *core.CrossFrame, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	catScaling, err := params.catScaling(false)
	if err != nil {
		return nil, nil, err
	}
	if params.PosValue == "" {
		return nil, nil, fmt.Errorf("%w: pos_value required for binomial outcome", ErrInvalidParameter)
	}
	if !containsLevel(raw, params.PosValue) {
		return nil, nil, ErrDegenerateOutcome
	}
	outcome := frame.NewBinomialOutcome(raw, params.PosValue, missingSentinel)
	cfg := toConfig(params, catScaling)
	return treatment.Fit(ctx, fr, variables, outcome, cfg)
}

// FitMultinomial fits a multinomial treatment plan.
func FitMultinomial(ctx context.Context, fr *frame.Frame, variables []string, raw []string, missingSentinel string, params Params) (*multinomial.Plan, *core.CrossFrame, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	outcome := frame.NewMultinomialOutcome(raw, missingSentinel)
	if len(outcome.Classes) < 2 {
		return nil, nil, ErrDegenerateOutcome
	}
	cfg := toConfig(params, true)
	return multinomial.Fit(ctx, fr, variables, outcome, cfg)
}

// FitUnsupervised fits a treatment plan with no outcome: only clean,
// is_bad, indicator, and prevalence encoders are built.
func FitUnsupervised(ctx context.Context, fr *frame.Frame, variables []string, params Params) (*treatment.Plan, *core.CrossFrame, error) {
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	outcome := frame.UnsupervisedOutcome(fr.RowCount())
	cfg := toConfig(params, false)
	return treatment.Fit(ctx, fr, variables, outcome, cfg)
}

func toConfig(p Params, catScaling bool) crossfit.Config {
	return crossfit.Config{
		MinFraction:     p.MinFraction,
		SmFactor:        p.SmFactor,
		RareCount:       p.RareCount,
		DoCollar:        p.DoCollar,
		CollarProb:      p.CollarProb,
		CodeRestriction: p.CodeRestriction,
		NCross:          p.NCross,
		Seed:            p.Seed,
		Scale:           p.Scale,
		CatScaling:      catScaling,
		Imputation:      p.Imputation,
		NovelPrevalence: p.NovelPrevalence,
	}
}

func containsLevel(raw []string, level string) bool {
	for _, v := range raw {
		if v == level {
			return true
		}
	}
	return false
}
