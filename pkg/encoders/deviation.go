package encoders

import (
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/stats"
)

// DeviationEncoder maps each categorical level to the out-of-fold
// standard deviation of the (numeric-only) outcome within that level, a
// dispersion companion to ImpactEncoder's location statistic. Levels
// with fewer than two observations, and novel levels, fall back to the
// pooled standard deviation across the whole fitting set.
type DeviationEncoder struct {
	origin string
	names  []string
	std    map[string]float64
	pooled float64
}

// FitDeviation fits a DeviationEncoder on a numeric outcome y aligned to
// rows.
func FitDeviation(col frame.Column, rows []int, y []float64) *DeviationEncoder {
	byLevel := map[string][]float64{}
	for i, r := range rows {
		var level string
		if col.Missing[r] {
			level = missingLevel
		} else {
			level = col.Cats[r]
		}
		byLevel[level] = append(byLevel[level], y[i])
	}
	pooled := stats.Std(y)
	std := make(map[string]float64, len(byLevel))
	for level, vals := range byLevel {
		if len(vals) < 2 {
			std[level] = pooled
			continue
		}
		std[level] = stats.Clamp(stats.Std(vals))
	}
	return &DeviationEncoder{
		origin: col.Name,
		names:  []string{col.Name + "_catD"},
		std:    std,
		pooled: pooled,
	}
}

func (e *DeviationEncoder) Kind() Kind        { return KindDeviation }
func (e *DeviationEncoder) Origin() string    { return e.origin }
func (e *DeviationEncoder) Names() []string   { return e.names }
func (e *DeviationEncoder) NeedsSplit() bool  { return true }
func (e *DeviationEncoder) ExtraDegrees() int { return 0 }
func (e *DeviationEncoder) MeanEmitted() []float64 {
	return []float64{e.pooled}
}

// Std returns the fitted level->standard-deviation map (exported for
// plan serialization).
func (e *DeviationEncoder) Std() map[string]float64 { return e.std }

// Pooled returns the fit-time pooled standard deviation (exported for
// plan serialization).
func (e *DeviationEncoder) Pooled() float64 { return e.pooled }

// RestoreDeviation reconstructs a DeviationEncoder from a serialized
// plan record.
func RestoreDeviation(origin string, std map[string]float64, pooled float64) *DeviationEncoder {
	return &DeviationEncoder{origin: origin, names: []string{origin + "_catD"}, std: std, pooled: pooled}
}

func (e *DeviationEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		var level string
		if col.Missing[r] {
			level = missingLevel
		} else {
			level = col.Cats[r]
		}
		if s, ok := e.std[level]; ok {
			out[i] = s
		} else {
			out[i] = e.pooled
		}
	}
	return [][]float64{substituteFinite(out, e.pooled)}
}
