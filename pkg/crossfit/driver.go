package crossfit

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/score"
	"github.com/slee1009/vtreat/pkg/split"
	"github.com/slee1009/vtreat/pkg/telemetry"
)

// ErrEmptyVariableList reports that every candidate column was
// suppressed before any encoder could be built.
var ErrEmptyVariableList = errors.New("crossfit: no encoders survive column filtering")

// Result is everything the cross-fit driver produces: the honest
// cross-frame, the deployment encoders the plan retains, the score rows,
// and any structural warnings.
type Result struct {
	CrossFrame     *core.CrossFrame
	DeployEncoders []encoders.Encoder
	ScoreRows      []score.Row
	Warnings       []string
}

// Fit runs the eligibility check, split planner, cross-fit, and
// significance scorer over fr's variables against outcome, returning the
// deployable encoder set, the cross-validated training matrix, and the
// per-column significance scores.
func Fit(ctx context.Context, fr *frame.Frame, variables []string, outcome frame.Outcome, cfg Config) (*Result, error) {
	obs := cfg.Observer
	if obs == nil {
		obs = telemetry.NoopObserver{}
	}
	n := fr.RowCount()
	allRows := fr.AllRows()
	effectiveRows := outcome.NonMissingRows(allRows)
	missingOutcomeRows := complement(allRows, effectiveRows)

	plans, prebuiltIndicators, err := buildKindPlans(fr, variables, outcome.Kind, effectiveRows, cfg)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, ErrEmptyVariableList
	}

	names := allColumnNames(plans)
	cf := core.NewCrossFrame(n, names)

	needsSplit := cfg.NCross > 1 && anyNeedsSplit(plans)
	var plan split.Plan
	if needsSplit {
		plan = buildSplitPlan(outcome, effectiveRows, cfg)
	}

	deployEncoders := make([]encoders.Encoder, len(plans))
	meanEmitted := make([][]float64, len(plans)) // per plan, per derived column

	colOffset := make([]int, len(plans))
	offset := 0
	for i, p := range plans {
		colOffset[i] = offset
		offset += len(p.names)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range plans {
		i := i
		p := plans[i]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			unitCtx, done := obs.FitUnitStarted(gctx, p.origin, string(p.kind))
			defer done()
			_ = unitCtx
			col, _ := fr.Column(p.origin)

			deployEnc, deployMeans, err := fitAndApplyDeployment(col, effectiveRows, p, outcome, cfg, prebuiltIndicators)
			if err != nil {
				return fmt.Errorf("column %q kind %q: %w", p.origin, p.kind, err)
			}
			deployEncoders[i] = deployEnc
			meanEmitted[i] = deployMeans

			base := colOffset[i]
			if p.kind.NeedsSplit() && needsSplit {
				for fIdx, fold := range plan.Folds {
					_ = fIdx
					if err := gctx.Err(); err != nil {
						return err
					}
					trainRows := mapRows(effectiveRows, fold.TrainIndices)
					appRows := mapRows(effectiveRows, fold.AppIndices)
					foldEnc, err := fitOne(col, trainRows, p.kind, outcome, cfg)
					if err != nil {
						return fmt.Errorf("column %q kind %q fold: %w", p.origin, p.kind, err)
					}
					vals := foldEnc.Apply(col, appRows)
					for k, colVals := range vals {
						cf.WriteColumn(base+k, appRows, colVals)
					}
				}
			} else {
				vals := deployEnc.Apply(col, effectiveRows)
				for k, colVals := range vals {
					cf.WriteColumn(base+k, effectiveRows, colVals)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range plans {
		base := colOffset[i]
		for k := range p.names {
			cf.WriteColumn(base+k, missingOutcomeRows, constSlice(meanEmitted[i][minInt(k, len(meanEmitted[i])-1)], len(missingOutcomeRows)))
		}
	}

	if cfg.Scale && outcome.Kind == frame.OutcomeNumeric {
		applyScaling(cf, plans, colOffset, deployEncoders, outcome, effectiveRows)
	}

	rows := scoreColumns(cf, plans, colOffset, deployEncoders, outcome, effectiveRows)
	score.ApplyRecommendations(rows)
	obs.FitCompleted(n, len(names))

	var warnings []string
	for _, name := range variables {
		if col, ok := fr.Column(name); ok && col.AllMissing() {
			warnings = append(warnings, fmt.Sprintf("column %q is entirely missing; all encoders suppressed", name))
		}
	}

	return &Result{CrossFrame: cf, DeployEncoders: deployEncoders, ScoreRows: rows, Warnings: warnings}, nil
}

func anyNeedsSplit(plans []kindPlan) bool {
	for _, p := range plans {
		if p.kind.NeedsSplit() {
			return true
		}
	}
	return false
}

func buildSplitPlan(outcome frame.Outcome, effectiveRows []int, cfg Config) split.Plan {
	n := len(effectiveRows)
	k := cfg.NCross
	if k < 2 {
		k = 3
	}
	switch outcome.Kind {
	case frame.OutcomeBinomial, frame.OutcomeMultinomial:
		labels := make([]string, n)
		for i, r := range effectiveRows {
			labels[i] = outcome.Raw[r]
		}
		return split.StratifiedByClass(labels, k, cfg.Seed)
	case frame.OutcomeNumeric:
		y := make([]float64, n)
		for i, r := range effectiveRows {
			y[i] = outcome.Numeric[r]
		}
		return split.StratifiedByQuantile(y, 10, k, cfg.Seed)
	default:
		return split.KFold(n, k, cfg.Seed)
	}
}

// mapRows translates local indices (into effectiveRows) to original frame
// row ids.
func mapRows(effectiveRows []int, local []int) []int {
	out := make([]int, len(local))
	for i, l := range local {
		out[i] = effectiveRows[l]
	}
	return out
}

func complement(all, subset []int) []int {
	in := make(map[int]bool, len(subset))
	for _, r := range subset {
		in[r] = true
	}
	out := make([]int, 0, len(all)-len(subset))
	for _, r := range all {
		if !in[r] {
			out = append(out, r)
		}
	}
	return out
}

func constSlice(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
