package vtreat

import "errors"

// Error taxonomy. All are recoverable by the caller unless
// noted; NumericalOverflow never surfaces here (clamped and logged at
// the encoder boundary, see pkg/stats.Clamp) and SameFrameTransformWarning
// is returned as a warning string, not an error, from Plan.Transform.
var (
	// ErrDegenerateOutcome: outcome constant, or (binomial) pos_value absent
	// from the observed levels.
	ErrDegenerateOutcome = errors.New("vtreat: degenerate outcome")

	// ErrInvalidParameter: a disallowed parameter combination, e.g. an
	// explicit cat_scaling on a numeric-outcome fit.
	ErrInvalidParameter = errors.New("vtreat: invalid parameter")
)
