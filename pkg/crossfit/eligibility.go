// Package crossfit implements the cross-fit driver: for each origin
// column, it determines which encoder kinds apply, fits
// `needs_split=false` kinds once on the full training data and
// `needs_split=true` kinds out-of-fold per split plan, and assembles the
// resulting derived columns into a cross-frame in the deterministic
// `(origin_index, kind_priority, level_lex_order)` order.
//
// This is the core the rest of the corpus has no direct analogue for; it
// is grounded on pkg/core (Matrix storage) and pkg/model
// (Fit/Apply lifecycle shape), generalized to honest out-of-fold
// emission with golang.org/x/sync/errgroup-based fan-out over each
// (column, kind) unit of work; a unit fits its folds in sequence and
// checks for cancellation before the unit and before each fold.
package crossfit

import (
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
)

// kindPlan is one (origin column, encoder kind) unit the driver will fit,
// with its derived column names already known.
type kindPlan struct {
	originIndex int
	origin      string
	kind        encoders.Kind
	names       []string // pre-assigned; authoritative once set for non-indicator kinds
}

// eligibleKinds returns the encoder kinds instantiated for one origin
// column given its type, the outcome descriptor, and any
// code_restriction. The order is not kind_priority order; buildKindPlans
// sorts the resulting units into it.
func eligibleKinds(col frame.Column, outcomeKind frame.OutcomeKind, restriction map[encoders.Kind]bool) []encoders.Kind {
	if col.AllMissing() {
		return nil
	}

	var candidates []encoders.Kind
	switch col.Kind {
	case frame.KindNumeric:
		candidates = append(candidates, encoders.KindClean)
		if col.AnyMissing() {
			candidates = append(candidates, encoders.KindIsBad)
		}
	case frame.KindCategorical:
		if col.AnyMissing() {
			candidates = append(candidates, encoders.KindIsBad)
		}
		candidates = append(candidates, encoders.KindPrevalence)

		distinctLevels := countDistinctLevels(col)
		if distinctLevels > 1 {
			candidates = append(candidates, encoders.KindIndicator)
			if outcomeKind == frame.OutcomeNumeric || outcomeKind == frame.OutcomeBinomial {
				candidates = append(candidates, encoders.KindImpact)
			}
			if outcomeKind == frame.OutcomeNumeric {
				candidates = append(candidates, encoders.KindDeviation)
			}
		}
	}

	filtered := candidates[:0]
	for _, k := range candidates {
		if restriction == nil || restriction[k] {
			filtered = append(filtered, k)
		}
	}

	out := make([]encoders.Kind, len(filtered))
	copy(out, filtered)
	return out
}

func countDistinctLevels(col frame.Column) int {
	seen := map[string]struct{}{}
	anyMissing := false
	for i := range col.Cats {
		if col.Missing[i] {
			anyMissing = true
			continue
		}
		seen[col.Cats[i]] = struct{}{}
	}
	if anyMissing {
		seen[missingLevelMarker] = struct{}{}
	}
	return len(seen)
}

const missingLevelMarker = "\x00missing\x00"
