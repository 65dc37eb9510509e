// Package encoders implements the six column-encoder kinds: clean,
// is_bad, indicator, prevalence, impact, and deviation. Each kind is fit
// on a set of rows and, once fitted, is an immutable, read-only value
// implementing Encoder; the cross-fit driver dispatches on the Encoder
// interface alone, never on a concrete kind.
//
// This generalizes pkg/dataprep (encode.go, impute.go,
// clean.go) — which hard-coded one encoding scheme at a time over
// [][]string — into a fitted/frozen encoder taxonomy operating on
// frame.Column and capable of honest out-of-fold emission.
package encoders

import (
	"math"

	"github.com/slee1009/vtreat/pkg/frame"
)

// Kind is one of the six encoder kinds.
type Kind string

const (
	KindClean      Kind = "clean"
	KindIsBad      Kind = "is_bad"
	KindIndicator  Kind = "indicator"
	KindPrevalence Kind = "prevalence"
	KindImpact     Kind = "impact"
	KindDeviation  Kind = "deviation"
)

// missingLevel is the sentinel level name representing a missing
// categorical cell.
const missingLevel = "missing"

// rareLevel is the pooled bucket rare categorical levels are merged into
// before impact fitting.
const rareLevel = "_rare_"

// Priority implements the kind_priority total order:
// clean < is_bad < prevalence < impact < indicator < deviation.
func (k Kind) Priority() int {
	switch k {
	case KindClean:
		return 0
	case KindIsBad:
		return 1
	case KindPrevalence:
		return 2
	case KindImpact:
		return 3
	case KindIndicator:
		return 4
	case KindDeviation:
		return 5
	default:
		return 99
	}
}

// NeedsSplit reports whether fitting this kind must be cross-validated
// out-of-fold: prevalence, impact, and deviation do;
// clean, is_bad, and indicator don't.
func (k Kind) NeedsSplit() bool {
	switch k {
	case KindPrevalence, KindImpact, KindDeviation:
		return true
	default:
		return false
	}
}

// Encoder is the fitted, immutable capability set every encoder kind
// implements.
type Encoder interface {
	Kind() Kind
	Origin() string
	Names() []string
	NeedsSplit() bool
	ExtraDegrees() int
	// MeanEmitted is the fit-time fallback value of each emitted column
	// (same order as Names), substituted for non-finite apply-time outputs
	// and written into cross-frame rows whose outcome is missing. It is
	// the training mean of the column for is_bad, indicator, and
	// prevalence, and for clean under mean imputation without a collar;
	// otherwise clean returns its imputation fill, impact returns 0, and
	// deviation returns the pooled standard deviation.
	MeanEmitted() []float64
	// Apply computes, for each name in Names() (outer slice) and each row
	// in rows (inner slice), the derived value.
	Apply(col frame.Column, rows []int) [][]float64
}

// substituteFinite replaces any non-finite value in vals with fallback,
// implementing the cross-frame finiteness invariant.
func substituteFinite(vals []float64, fallback float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if isFinite(v) {
			out[i] = v
		} else {
			out[i] = fallback
		}
	}
	return out
}

func isFinite(v float64) bool {
	return v == v && v > negInf && v < posInf
}

var posInf = math.Inf(1)
var negInf = math.Inf(-1)
