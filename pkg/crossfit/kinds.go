package crossfit

import (
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
)

// fitOne fits a single encoder of the given kind on rows, dispatching the
// outcome-dependent kinds (impact, deviation) on outcome.Kind.
func fitOne(col frame.Column, rows []int, kind encoders.Kind, outcome frame.Outcome, cfg Config) (encoders.Encoder, error) {
	switch kind {
	case encoders.KindClean:
		if !cfg.DoCollar {
			return encoders.FitClean(col, rows, cfg.Imputation), nil
		}
		return encoders.FitCleanCollared(col, rows, cfg.Imputation, cfg.CollarProb), nil
	case encoders.KindIsBad:
		enc, ok := encoders.FitIsBad(col, rows)
		if !ok {
			return constZeroEncoder{kind: kind, origin: col.Name, name: col.Name + "_isBAD"}, nil
		}
		return enc, nil
	case encoders.KindPrevalence:
		return encoders.FitPrevalence(col, rows, cfg.NovelPrevalence), nil
	case encoders.KindImpact:
		switch outcome.Kind {
		case frame.OutcomeNumeric:
			y := outcome.NumericAt(rows)
			return encoders.FitImpactNumeric(col, rows, y, cfg.SmFactor, cfg.RareCount), nil
		default: // OutcomeBinomial
			y01 := outcome.Binary(rows)
			return encoders.FitImpactBinomial(col, rows, y01, cfg.SmFactor, cfg.RareCount, cfg.CatScaling), nil
		}
	case encoders.KindDeviation:
		y := outcome.NumericAt(rows)
		return encoders.FitDeviation(col, rows, y), nil
	}
	return constZeroEncoder{kind: kind, origin: col.Name, name: col.Name + "_" + string(kind)}, nil
}

// fitAndApplyDeployment fits the encoder retained on the treatment plan:
// for needs_split=false kinds this is the only fit; for needs_split=true
// kinds it is the extra full-training-data deployment fit made in
// addition to the per-fold fits.
func fitAndApplyDeployment(col frame.Column, effectiveRows []int, p kindPlan, outcome frame.Outcome, cfg Config, prebuilt map[string]encoders.Encoder) (encoders.Encoder, []float64, error) {
	if p.kind == encoders.KindIndicator {
		enc := prebuilt[p.origin+"/"+string(p.kind)]
		return enc, enc.MeanEmitted(), nil
	}
	enc, err := fitOne(col, effectiveRows, p.kind, outcome, cfg)
	if err != nil {
		return nil, nil, err
	}
	return enc, enc.MeanEmitted(), nil
}

// constZeroEncoder is the degenerate fallback for a needs_split=false
// kind whose eligibility check (run over the whole column) doesn't hold
// on the narrower outcome-non-missing row set actually fit against —
// e.g. is_bad when every missing cell happens to have a missing outcome
// too. It emits a constant 0, which the scorer will correctly flag as
// var_moves=false.
type constZeroEncoder struct {
	kind   encoders.Kind
	origin string
	name   string
}

func (c constZeroEncoder) Kind() encoders.Kind    { return c.kind }
func (c constZeroEncoder) Origin() string         { return c.origin }
func (c constZeroEncoder) Names() []string        { return []string{c.name} }
func (c constZeroEncoder) NeedsSplit() bool       { return false }
func (c constZeroEncoder) ExtraDegrees() int      { return 0 }
func (c constZeroEncoder) MeanEmitted() []float64 { return []float64{0} }
func (c constZeroEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	return [][]float64{make([]float64, len(rows))}
}
