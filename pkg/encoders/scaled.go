package encoders

import "github.com/slee1009/vtreat/pkg/frame"

// ScaledEncoder decorates another encoder with a fixed multiplicative
// rescaling, implementing the `scale` parameter. The slope is fit once, by
// regressing the inner encoder's cross-frame output on the outcome (see
// pkg/stats.OutcomeScaler), and baked into the deployment encoder so
// transform-time outputs stay in the same units as the cross-frame.
type ScaledEncoder struct {
	inner Encoder
	slope float64
}

// NewScaledEncoder wraps inner with a fixed rescaling factor.
func NewScaledEncoder(inner Encoder, slope float64) *ScaledEncoder {
	return &ScaledEncoder{inner: inner, slope: slope}
}

func (e *ScaledEncoder) Kind() Kind        { return e.inner.Kind() }
func (e *ScaledEncoder) Origin() string    { return e.inner.Origin() }
func (e *ScaledEncoder) Names() []string   { return e.inner.Names() }
func (e *ScaledEncoder) NeedsSplit() bool  { return e.inner.NeedsSplit() }
func (e *ScaledEncoder) ExtraDegrees() int { return e.inner.ExtraDegrees() }

func (e *ScaledEncoder) MeanEmitted() []float64 {
	means := e.inner.MeanEmitted()
	out := make([]float64, len(means))
	for i, m := range means {
		out[i] = m * e.slope
	}
	return out
}

func (e *ScaledEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	raw := e.inner.Apply(col, rows)
	out := make([][]float64, len(raw))
	for i, vals := range raw {
		scaled := make([]float64, len(vals))
		for j, v := range vals {
			scaled[j] = v * e.slope
		}
		out[i] = scaled
	}
	return out
}
