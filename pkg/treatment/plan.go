// Package treatment implements the treatment plan lifecycle: an
// immutable, serializable artifact produced by Fit and later replayed by
// Transform without needing the training data again.
//
// This plays the role pkg/model.Model plays for
// a single model (Fit/Predict, frozen parameters after fit), generalized
// to a collection of column encoders plus the bookkeeping a treatment
// plan needs: score frame, same-frame-transform detection, and
// serialization.
package treatment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/crossfit"
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/score"
)

// ErrSchemaMismatch reports that transform was given a frame missing a
// required origin column.
var ErrSchemaMismatch = errors.New("treatment: input frame missing required origin column")

// OutcomeDescriptor is the serializable summary of the outcome a plan was
// fit against.
type OutcomeDescriptor struct {
	Kind          frame.OutcomeKind
	PositiveValue string
	Classes       []string
}

// Plan is the immutable treatment-plan artifact. Once returned from Fit
// it is read-only; Transform never mutates it.
type Plan struct {
	ID          uuid.UUID
	Encoders    []encoders.Encoder
	Score       []score.Row
	Outcome     OutcomeDescriptor
	FitRowCount int
	Names       []string
	Warnings    []string

	trainFingerprint fingerprint
}

// Fit runs the split planner, cross-fit driver, and significance scorer,
// returning both the deployable plan and the cross-validated training
// matrix.
func Fit(ctx context.Context, fr *frame.Frame, variables []string, outcome frame.Outcome, cfg crossfit.Config) (*Plan, *core.CrossFrame, error) {
	result, err := crossfit.Fit(ctx, fr, variables, outcome, cfg)
	if err != nil {
		return nil, nil, err
	}

	plan := &Plan{
		ID:          uuid.New(),
		Encoders:    result.DeployEncoders,
		Score:       result.ScoreRows,
		Outcome:     describeOutcome(outcome),
		FitRowCount: fr.RowCount(),
		Names:       result.CrossFrame.Names,
		Warnings:    result.Warnings,

		trainFingerprint: fingerprintFrame(fr),
	}
	return plan, result.CrossFrame, nil
}

// FitTransform is shorthand for Fit that returns the cross-frame
// directly.
func FitTransform(ctx context.Context, fr *frame.Frame, variables []string, outcome frame.Outcome, cfg crossfit.Config) (*Plan, *core.CrossFrame, error) {
	return Fit(ctx, fr, variables, outcome, cfg)
}

func describeOutcome(o frame.Outcome) OutcomeDescriptor {
	return OutcomeDescriptor{Kind: o.Kind, PositiveValue: o.PositiveValue, Classes: o.Classes}
}

// FeatureNames returns the ordered derived column name list.
func (p *Plan) FeatureNames() []string { return p.Names }

// ScoreFrame returns the per-derived-variable significance rows.
func (p *Plan) ScoreFrame() []score.Row { return p.Score }

// RecommendedNames returns the subset of FeatureNames flagged recommended.
func (p *Plan) RecommendedNames() []string {
	rec := make(map[string]bool, len(p.Score))
	for _, row := range p.Score {
		if row.Recommended {
			rec[row.VarName] = true
		}
	}
	var out []string
	for _, name := range p.Names {
		if rec[name] {
			out = append(out, name)
		}
	}
	return out
}

// String renders a short diagnostic summary of the plan, used in logging.
func (p *Plan) String() string {
	parts := make([]string, len(p.Encoders))
	for i, enc := range p.Encoders {
		parts[i] = encoderSummary(enc)
	}
	return fmt.Sprintf("plan %s: %d encoders -> %d derived columns %v", p.ID, len(p.Encoders), len(p.Names), parts)
}

func encoderSummary(enc encoders.Encoder) string {
	return fmt.Sprintf("%s(%s)", enc.Kind(), enc.Origin())
}
