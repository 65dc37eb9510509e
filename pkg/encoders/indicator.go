package encoders

import (
	"sort"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/ident"
)

// IndicatorEncoder emits one 0/1 column per qualifying level of a
// categorical origin: levels whose training prevalence is at least
// min_fraction, the missing sentinel treated as its own level, capped at
// ⌊1/min_fraction⌋ indicators and, among those, reported in
// sanitized-level lexical order for deterministic column placement.
//
// This generalizes pkg/dataprep/encode.go's EncodeCategorical
// (which one-hot-encoded every observed level unconditionally) by adding
// a prevalence floor and an emission cap.
type IndicatorEncoder struct {
	origin string
	// levels[i] is the raw category value (or missingLevel) the i-th
	// emitted column indicates; names[i] is its derived column name.
	levels []string
	names  []string
	means  []float64
}

// FitIndicator fits an IndicatorEncoder. ok is false when the column has
// only one observed level overall (indicators would be constant) or when
// no level clears minFraction.
func FitIndicator(col frame.Column, rows []int, minFraction float64) (enc *IndicatorEncoder, ok bool) {
	counts := map[string]int{}
	for _, r := range rows {
		if col.Missing[r] {
			counts[missingLevel]++
		} else {
			counts[col.Cats[r]]++
		}
	}
	if len(counts) <= 1 {
		return nil, false
	}

	n := float64(len(rows))
	type cand struct {
		level string
		prev  float64
	}
	var qualifying []cand
	for level, c := range counts {
		p := float64(c) / n
		if p >= minFraction {
			qualifying = append(qualifying, cand{level, p})
		}
	}
	if len(qualifying) == 0 {
		return nil, false
	}

	maxIndicators := 0
	if minFraction > 0 {
		maxIndicators = int(1 / minFraction)
	}
	if maxIndicators > 0 && len(qualifying) > maxIndicators {
		sort.Slice(qualifying, func(i, j int) bool {
			if qualifying[i].prev != qualifying[j].prev {
				return qualifying[i].prev > qualifying[j].prev
			}
			return qualifying[i].level < qualifying[j].level
		})
		qualifying = qualifying[:maxIndicators]
	}

	sort.Slice(qualifying, func(i, j int) bool {
		return ident.Sanitize(qualifying[i].level) < ident.Sanitize(qualifying[j].level)
	})

	levels := make([]string, len(qualifying))
	names := make([]string, len(qualifying))
	means := make([]float64, len(qualifying))
	deduper := ident.NewDeduper()
	for i, q := range qualifying {
		levels[i] = q.level
		names[i] = deduper.Resolve(ident.LevelColumnName(col.Name, ident.Sanitize(q.level)))
		means[i] = q.prev
	}
	return &IndicatorEncoder{origin: col.Name, levels: levels, names: names, means: means}, true
}

func (e *IndicatorEncoder) Kind() Kind             { return KindIndicator }
func (e *IndicatorEncoder) Origin() string         { return e.origin }
func (e *IndicatorEncoder) Names() []string        { return e.names }
func (e *IndicatorEncoder) NeedsSplit() bool       { return false }
func (e *IndicatorEncoder) ExtraDegrees() int      { return 0 }
func (e *IndicatorEncoder) MeanEmitted() []float64 { return e.means }

// Levels returns the raw level each emitted column indicates, same order
// as Names (exported for plan serialization).
func (e *IndicatorEncoder) Levels() []string { return e.levels }

// RestoreIndicator reconstructs an IndicatorEncoder from a serialized
// plan record.
func RestoreIndicator(origin string, levels, names []string, means []float64) *IndicatorEncoder {
	return &IndicatorEncoder{origin: origin, levels: levels, names: names, means: means}
}

func (e *IndicatorEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([][]float64, len(e.levels))
	for k := range out {
		out[k] = make([]float64, len(rows))
	}
	for i, r := range rows {
		var value string
		if col.Missing[r] {
			value = missingLevel
		} else {
			value = col.Cats[r]
		}
		for k, level := range e.levels {
			if value == level {
				out[k][i] = 1
			}
		}
	}
	return out
}
