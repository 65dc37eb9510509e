package encoders

import "github.com/slee1009/vtreat/pkg/frame"

// PrevalenceEncoder maps each categorical level to its cross-validated
// out-of-fold training frequency, the missing sentinel counted as its
// own level. A novel level unseen in the fitting fold maps to
// novelDefault rather than panicking or propagating NaN.
type PrevalenceEncoder struct {
	origin      string
	names       []string
	prevalence  map[string]float64
	novelValue  float64
	trainedMean float64
}

// FitPrevalence fits a PrevalenceEncoder on rows. novelDefault is the
// value assigned to levels not observed during fitting (the facade
// leaves this 0 by default; a Laplace-style 0.5/(n+1) is also valid and
// can be supplied here by the caller).
func FitPrevalence(col frame.Column, rows []int, novelDefault float64) *PrevalenceEncoder {
	counts := map[string]int{}
	for _, r := range rows {
		if col.Missing[r] {
			counts[missingLevel]++
		} else {
			counts[col.Cats[r]]++
		}
	}
	n := float64(len(rows))
	prevalence := make(map[string]float64, len(counts))
	// The mean of the emitted prevalence column on the training data is
	// not 1/n: each row with level l emits count_l/n, and there are
	// count_l such rows, so the mean is Σ(count_l/n * count_l)/n =
	// Σ(count_l²)/n².
	sumSq := 0.0
	for level, c := range counts {
		prevalence[level] = float64(c) / n
		sumSq += float64(c) * float64(c)
	}
	return &PrevalenceEncoder{
		origin:      col.Name,
		names:       []string{col.Name + "_catP"},
		prevalence:  prevalence,
		novelValue:  novelDefault,
		trainedMean: sumSq / (n * n),
	}
}

func (e *PrevalenceEncoder) Kind() Kind        { return KindPrevalence }
func (e *PrevalenceEncoder) Origin() string    { return e.origin }
func (e *PrevalenceEncoder) Names() []string   { return e.names }
func (e *PrevalenceEncoder) NeedsSplit() bool  { return true }
func (e *PrevalenceEncoder) ExtraDegrees() int { return 0 }
func (e *PrevalenceEncoder) MeanEmitted() []float64 {
	return []float64{e.trainedMean}
}

// Prevalence returns the fitted level->frequency map (exported for plan
// serialization).
func (e *PrevalenceEncoder) Prevalence() map[string]float64 { return e.prevalence }

// NovelValue returns the novel-level fallback (exported for plan
// serialization).
func (e *PrevalenceEncoder) NovelValue() float64 { return e.novelValue }

// RestorePrevalence reconstructs a PrevalenceEncoder from a serialized
// plan record.
func RestorePrevalence(origin string, prevalence map[string]float64, novelValue, trainedMean float64) *PrevalenceEncoder {
	return &PrevalenceEncoder{
		origin: origin, names: []string{origin + "_catP"},
		prevalence: prevalence, novelValue: novelValue, trainedMean: trainedMean,
	}
}

func (e *PrevalenceEncoder) Apply(col frame.Column, rows []int) [][]float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		var level string
		if col.Missing[r] {
			level = missingLevel
		} else {
			level = col.Cats[r]
		}
		if p, ok := e.prevalence[level]; ok {
			out[i] = p
		} else {
			out[i] = e.novelValue
		}
	}
	return [][]float64{substituteFinite(out, e.trainedMean)}
}
