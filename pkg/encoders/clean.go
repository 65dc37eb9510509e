package encoders

import (
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/stats"
)

// ImputationStrategy selects how CleanEncoder fills a missing numeric
// cell, implementing the `missingness_imputation` parameter.
type ImputationStrategy int

const (
	ImputeMean ImputationStrategy = iota
	ImputeMedian
	ImputeCustom
)

// Imputation configures a CleanEncoder's fit-time substitution statistic.
// This generalizes pkg/dataprep/impute.go's ImputeMean /
// ImputeMedian free functions (each recomputing its statistic from
// scratch on [][]float64) into a fit-once, reused-at-apply-time value;
// ImputeKNN has no equivalent here because a per-column encoder cannot
// reach across columns without breaking fold isolation.
type Imputation struct {
	Strategy ImputationStrategy
	// Custom computes the substitution value from the non-missing
	// training values, used when Strategy is ImputeCustom.
	Custom func(nonMissing []float64) float64
}

func (im Imputation) compute(vals []float64) float64 {
	switch im.Strategy {
	case ImputeMedian:
		return stats.Median(vals)
	case ImputeCustom:
		if im.Custom != nil {
			return im.Custom(vals)
		}
		return stats.Mean(vals)
	default:
		return stats.Mean(vals)
	}
}

// CleanEncoder is the numeric-origin "clean" encoder:
// passes numeric values through unchanged, substituting the fit-time
// imputation statistic for missing or non-finite cells, and optionally
// winsorizing the result to fit-time percentile bounds (`do_collar`/
// `collar_prob`).
type CleanEncoder struct {
	origin                string
	fill                  float64
	names                 []string
	collared              bool
	collarLow, collarHigh float64
}

// FitClean fits a CleanEncoder on rows of a numeric column.
func FitClean(col frame.Column, rows []int, imputation Imputation) *CleanEncoder {
	nonMissing := make([]float64, 0, len(rows))
	for _, r := range rows {
		if !col.Missing[r] {
			nonMissing = append(nonMissing, col.Nums[r])
		}
	}
	fill := 0.0
	if len(nonMissing) > 0 {
		fill = imputation.compute(nonMissing)
	}
	return &CleanEncoder{
		origin: col.Name,
		fill:   fill,
		names:  []string{col.Name + "_clean"},
	}
}

// FitCleanCollared fits a CleanEncoder and, in the same pass, a
// winsorizing collar over its own imputed output: the clean column is a
// common target for an extreme training-time value dragging a
// downstream model's fit, so collaring clips it to the fit-time
// percentile bounds before it ever reaches the cross-frame. prob is the
// tail probability on each side, as with stats.Collar.
func FitCleanCollared(col frame.Column, rows []int, imputation Imputation, prob float64) *CleanEncoder {
	e := FitClean(col, rows, imputation)
	collar := stats.NewCollar()
	collar.Fit(e.Apply(col, rows)[0], prob)
	e.collared = true
	e.collarLow, e.collarHigh = collar.Lower, collar.Upper
	return e
}

func (e *CleanEncoder) Kind() Kind             { return KindClean }
func (e *CleanEncoder) Origin() string         { return e.origin }
func (e *CleanEncoder) Names() []string        { return e.names }
func (e *CleanEncoder) NeedsSplit() bool       { return false }
func (e *CleanEncoder) ExtraDegrees() int      { return 0 }
func (e *CleanEncoder) MeanEmitted() []float64 { return []float64{e.fill} }

// Fill returns the fit-time substitution value (exported for plan
// serialization).
func (e *CleanEncoder) Fill() float64 { return e.fill }

// Collared reports whether this encoder was fit with winsorization, and
// its fit-time bounds (exported for plan serialization).
func (e *CleanEncoder) Collared() (low, high float64, ok bool) {
	return e.collarLow, e.collarHigh, e.collared
}

// RestoreClean reconstructs a CleanEncoder from a serialized plan
// record. low/high/collared restore a collar fitted by
// FitCleanCollared; pass collared=false for a plain clean encoder.
func RestoreClean(origin string, fill float64, low, high float64, collared bool) *CleanEncoder {
	return &CleanEncoder{
		origin: origin, fill: fill, names: []string{origin + "_clean"},
		collared: collared, collarLow: low, collarHigh: high,
	}
}

// Apply substitutes e.fill for missing or non-finite cells, passes
// everything else through unchanged, and clips to the fitted collar
// bounds when the encoder was fit with winsorization.
func (e *CleanEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if col.Missing[r] {
			out[i] = e.fill
		} else {
			out[i] = col.Nums[r]
		}
	}
	out = substituteFinite(out, e.fill)
	if e.collared {
		for i, v := range out {
			switch {
			case v < e.collarLow:
				out[i] = e.collarLow
			case v > e.collarHigh:
				out[i] = e.collarHigh
			}
		}
	}
	return [][]float64{out}
}
