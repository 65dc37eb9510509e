package encoders

import (
	"math"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/stats"
)

// ImpactEncoder maps each categorical level to its out-of-fold effect on
// the outcome: for a numeric outcome, the smoothed mean deviation from
// the grand mean; for a binomial outcome, the smoothed
// log-odds shift from the overall rate (or, with CatScaling disabled,
// the raw rate shift). Levels observed rare_count times or fewer are
// pooled into a single bucket before fitting so their coefficient is
// estimated from a less noisy, larger sample. Novel and missing-in-fold
// levels take the pooled bucket's coefficient when a bucket was fit, and
// zero (no shift from the grand mean/rate) otherwise.
//
// This is the cross-validated generalization of
// pkg/dataprep/encode.go FrequencyEncode/EncodeCategorical, which only
// ever reported unconditioned level statistics.
type ImpactEncoder struct {
	origin     string
	numeric    bool
	catScaling bool
	coef       map[string]float64
	names      []string
	grand      float64
}

// FitImpactNumeric fits the numeric-outcome impact encoder. Each level's
// coefficient is Σ(y − ȳ) / (n_level + smFactor) over that level's rows:
// its mean deviation from the grand mean, shrunk toward zero by smFactor
// pseudo-observations.
func FitImpactNumeric(col frame.Column, rows []int, y []float64, smFactor float64, rareCount int) *ImpactEncoder {
	levels := bucketLevels(col, rows, rareCount)
	ybar := stats.Mean(y)

	sums := map[string]float64{}
	counts := map[string]int{}
	for i, r := range rows {
		_ = r
		level := levels[i]
		sums[level] += y[i] - ybar
		counts[level]++
	}
	coef := make(map[string]float64, len(sums))
	for level, sum := range sums {
		n := float64(counts[level])
		coef[level] = stats.Clamp(sum / (n + smFactor))
	}
	return &ImpactEncoder{
		origin: col.Name, numeric: true,
		coef: coef, names: []string{col.Name + "_catN"}, grand: ybar,
	}
}

// FitImpactBinomial fits the binomial-outcome impact encoder. y must be
// the 0/1 materialization of the outcome over rows (frame.Outcome.Binary).
// When catScaling is true, coefficients live in logit space (log-odds
// shift from the overall rate); otherwise they're raw rate shifts. Each
// level's smoothed rate is p = (sum1 + smFactor*pbar) / (n_level + smFactor)
// and its coefficient is logit(p) − logit(pbar), or p − pbar without
// catScaling; p is bounded away from 0 and 1 only for the logit.
func FitImpactBinomial(col frame.Column, rows []int, y []float64, smFactor float64, rareCount int, catScaling bool) *ImpactEncoder {
	levels := bucketLevels(col, rows, rareCount)
	pbar := clampProbability(stats.Mean(y))

	sums := map[string]float64{}
	counts := map[string]int{}
	for i := range rows {
		level := levels[i]
		sums[level] += y[i]
		counts[level]++
	}
	coef := make(map[string]float64, len(sums))
	for level, sum1 := range sums {
		n := float64(counts[level])
		p := (sum1 + smFactor*pbar) / (n + smFactor)
		if catScaling {
			coef[level] = stats.Clamp(logit(clampProbability(p)) - logit(pbar))
		} else {
			coef[level] = stats.Clamp(p - pbar)
		}
	}
	return &ImpactEncoder{
		origin: col.Name, numeric: false, catScaling: catScaling,
		coef: coef, names: []string{col.Name + "_catB"}, grand: pbar,
	}
}

// bucketLevels returns, in row order, the level key each row's cell maps
// to: the raw category (or missingLevel), with any level observed
// rareCount times or fewer across rows collapsed into rareLevel.
func bucketLevels(col frame.Column, rows []int, rareCount int) []string {
	raw := make([]string, len(rows))
	counts := map[string]int{}
	for i, r := range rows {
		var level string
		if col.Missing[r] {
			level = missingLevel
		} else {
			level = col.Cats[r]
		}
		raw[i] = level
		counts[level]++
	}
	if rareCount <= 0 {
		return raw
	}
	out := make([]string, len(rows))
	for i, level := range raw {
		if level != missingLevel && counts[level] <= rareCount {
			out[i] = rareLevel
		} else {
			out[i] = level
		}
	}
	return out
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

func clampProbability(p float64) float64 {
	const eps = 1e-9
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

func (e *ImpactEncoder) Kind() Kind        { return KindImpact }
func (e *ImpactEncoder) Origin() string    { return e.origin }
func (e *ImpactEncoder) Names() []string   { return e.names }
func (e *ImpactEncoder) NeedsSplit() bool  { return true }
func (e *ImpactEncoder) ExtraDegrees() int { return 5 }
func (e *ImpactEncoder) MeanEmitted() []float64 {
	return []float64{0}
}

// Coef returns the fitted level->coefficient map (exported for plan
// serialization).
func (e *ImpactEncoder) Coef() map[string]float64 { return e.coef }

// Numeric reports whether this encoder was fit against a numeric outcome.
func (e *ImpactEncoder) Numeric() bool { return e.numeric }

// CatScaling reports whether binomial coefficients live in link space.
func (e *ImpactEncoder) CatScaling() bool { return e.catScaling }

// Grand returns the fit-time grand mean/rate (exported for plan
// serialization).
func (e *ImpactEncoder) Grand() float64 { return e.grand }

// RestoreImpact reconstructs an ImpactEncoder from a serialized plan
// record.
func RestoreImpact(origin string, numeric, catScaling bool, coef map[string]float64, grand float64) *ImpactEncoder {
	suffix := "_catN"
	if !numeric {
		suffix = "_catB"
	}
	return &ImpactEncoder{
		origin: origin, numeric: numeric, catScaling: catScaling,
		coef: coef, names: []string{origin + suffix}, grand: grand,
	}
}

func (e *ImpactEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		var level string
		if col.Missing[r] {
			level = missingLevel
		} else {
			level = col.Cats[r]
		}
		if c, ok := e.coef[level]; ok {
			out[i] = c
		} else if c, ok := e.coef[rareLevel]; ok {
			out[i] = c
		} else {
			out[i] = 0
		}
	}
	return [][]float64{substituteFinite(out, 0)}
}
