package stats

// OutcomeScaler implements the `scale` parameter: rescale a numeric
// derived column to outcome units by multiplying it by the slope of the
// one-variable regression of the outcome on that column, so a fitted
// linear/logistic model downstream sees comparable coefficient
// magnitudes across derived columns regardless of their native scale.
//
// This keeps the StandardScaler Fit/Transform/FitTransform
// shape (pkg/stats originally implemented z-score standardization here)
// but the statistic it fits is the regression slope, not mean/variance;
// z-scoring a derived column has no defined role in treatment-plan
// output, whereas outcome-unit rescaling is an explicitly named
// parameter.
type OutcomeScaler struct {
	Slope float64
	fit   bool
}

// NewOutcomeScaler returns a zero-value, unfit scaler.
func NewOutcomeScaler() *OutcomeScaler { return &OutcomeScaler{} }

// Fit computes the OLS slope of y regressed on x (no intercept needed
// beyond what FitOLS already centers internally).
func (s *OutcomeScaler) Fit(x, y []float64) {
	fitted := FitOLS(x, y, 0)
	s.Slope = fitted.Slope
	s.fit = true
}

// Transform multiplies each value by the fitted slope. Unfit scalers are
// the identity transform.
func (s *OutcomeScaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	if !s.fit {
		copy(out, x)
		return out
	}
	for i, v := range x {
		out[i] = v * s.Slope
	}
	return out
}

// FitTransform fits and applies in one call.
func (s *OutcomeScaler) FitTransform(x, y []float64) []float64 {
	s.Fit(x, y)
	return s.Transform(x)
}
