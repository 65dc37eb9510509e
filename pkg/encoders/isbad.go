package encoders

import "github.com/slee1009/vtreat/pkg/frame"

// IsBadEncoder emits a 0/1 missingness indicator for a numeric or
// categorical origin column. Fitting is skipped by the caller when the
// training column has no missing values at all (an is_bad column would
// otherwise be a constant zero — no information, a wasted derived
// column).
type IsBadEncoder struct {
	origin string
	names  []string
	mean   float64
}

// FitIsBad fits an IsBadEncoder. ok is false when rows contains no
// missing cell, signalling the caller to skip emitting this encoder.
func FitIsBad(col frame.Column, rows []int) (enc *IsBadEncoder, ok bool) {
	count := 0
	for _, r := range rows {
		if col.Missing[r] {
			count++
		}
	}
	if count == 0 {
		return nil, false
	}
	return &IsBadEncoder{
		origin: col.Name,
		names:  []string{col.Name + "_isBAD"},
		mean:   float64(count) / float64(len(rows)),
	}, true
}

func (e *IsBadEncoder) Kind() Kind             { return KindIsBad }
func (e *IsBadEncoder) Origin() string         { return e.origin }
func (e *IsBadEncoder) Names() []string        { return e.names }
func (e *IsBadEncoder) NeedsSplit() bool       { return false }
func (e *IsBadEncoder) ExtraDegrees() int      { return 0 }
func (e *IsBadEncoder) MeanEmitted() []float64 { return []float64{e.mean} }

// Mean returns the fit-time missingness rate (exported for plan serialization).
func (e *IsBadEncoder) Mean() float64 { return e.mean }

// RestoreIsBad reconstructs an IsBadEncoder from a serialized plan record.
func RestoreIsBad(origin string, mean float64) *IsBadEncoder {
	return &IsBadEncoder{origin: origin, names: []string{origin + "_isBAD"}, mean: mean}
}

func (e *IsBadEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if col.Missing[r] {
			out[i] = 1
		}
	}
	return [][]float64{out}
}
