// Package multinomial implements the K-class orchestrator: a shared
// outcome-free encoder set built once, plus one impact encoder per
// (class, categorical origin) pair built by reprojecting the multinomial
// outcome onto each class as a binomial sub-problem.
//
// Grounded on the single-outcome cross-fit driver, crossfit.Fit, reused
// here K+1 times (once unsupervised for the shared encoders, once per
// class restricted to impact) rather than reimplemented.
package multinomial

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slee1009/vtreat/pkg/core"
	"github.com/slee1009/vtreat/pkg/crossfit"
	"github.com/slee1009/vtreat/pkg/encoders"
	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/ident"
	"github.com/slee1009/vtreat/pkg/score"
)

// Plan is the multinomial treatment plan: a shared outcome-free encoder
// set plus per-class impact encoders, assembled into one cross-frame
// whose columns are the shared derived columns followed by each class's
// impact columns in class-lexical order.
type Plan struct {
	ID          uuid.UUID
	Classes     []string
	Shared      []encoders.Encoder
	ClassImpact map[string][]encoders.Encoder
	Score       []score.Row
	Names       []string
	FitRowCount int
	Warnings    []string
}

// Fit runs three-step orchestration.
func Fit(ctx context.Context, fr *frame.Frame, variables []string, outcome frame.Outcome, cfg crossfit.Config) (*Plan, *core.CrossFrame, error) {
	if outcome.Kind != frame.OutcomeMultinomial {
		return nil, nil, fmt.Errorf("multinomial: outcome must be multinomial, got %s", outcome.Kind)
	}
	classes := outcome.Classes

	sharedCfg := cfg
	sharedCfg.CodeRestriction = restrictTo(cfg.CodeRestriction, encoders.KindClean, encoders.KindIsBad, encoders.KindIndicator, encoders.KindPrevalence)
	sharedResult, err := crossfit.Fit(ctx, fr, variables, frame.UnsupervisedOutcome(fr.RowCount()), sharedCfg)
	if err != nil {
		return nil, nil, err
	}

	n := fr.RowCount()
	totalCols := len(sharedResult.CrossFrame.Names)
	classImpact := map[string][]encoders.Encoder{}
	classResults := map[string]*crossfit.Result{}
	classNames := map[string][]string{}

	for _, class := range classes {
		classCfg := cfg
		classCfg.CodeRestriction = restrictTo(cfg.CodeRestriction, encoders.KindImpact)
		binOutcome := outcome.AsBinomial(class)
		result, err := crossfit.Fit(ctx, fr, variables, binOutcome, classCfg)
		if err != nil {
			continue // a class with no eligible impact variable contributes nothing
		}
		renamed := make([]string, len(result.CrossFrame.Names))
		for i, name := range result.CrossFrame.Names {
			renamed[i] = ident.ClassColumnName(class, name)
		}
		classImpact[class] = result.DeployEncoders
		classResults[class] = result
		classNames[class] = renamed
		totalCols += len(renamed)
	}

	allNames := make([]string, 0, totalCols)
	allNames = append(allNames, sharedResult.CrossFrame.Names...)
	for _, class := range classes {
		allNames = append(allNames, classNames[class]...)
	}

	cf := core.NewCrossFrame(n, allNames)
	for j := 0; j < len(sharedResult.CrossFrame.Names); j++ {
		col := sharedResult.CrossFrame.Column(j)
		for r := 0; r < n; r++ {
			cf.Set(r, j, col[r])
		}
	}
	offset := len(sharedResult.CrossFrame.Names)
	for _, class := range classes {
		result, ok := classResults[class]
		if !ok {
			continue
		}
		for j := 0; j < len(result.CrossFrame.Names); j++ {
			col := result.CrossFrame.Column(j)
			for r := 0; r < n; r++ {
				cf.Set(r, offset+j, col[r])
			}
		}
		offset += len(result.CrossFrame.Names)
	}

	var rows []score.Row
	for _, class := range classes {
		binOutcome := outcome.AsBinomial(class)
		effectiveRows := binOutcome.NonMissingRows(fr.AllRows())
		y01 := binOutcome.Binary(effectiveRows)
		for j, name := range sharedResult.CrossFrame.Names {
			col := sharedResult.CrossFrame.Column(j)
			vals := subsetAt(col, effectiveRows)
			srcEnc := sharedResult.DeployEncoders[encoderIndexForColumn(sharedResult, j)]
			row := score.ScoreBinomial(name, srcEnc.Origin(), string(srcEnc.Kind()), srcEnc.NeedsSplit(), srcEnc.ExtraDegrees(), vals, y01)
			row.OutcomeLevel = class
			rows = append(rows, row)
		}
		if result, ok := classResults[class]; ok {
			for i, row := range result.ScoreRows {
				row.VarName = classNames[class][i]
				row.OutcomeLevel = class
				rows = append(rows, row)
			}
		}
	}
	score.ApplyRecommendations(rows)

	var warnings []string
	warnings = append(warnings, sharedResult.Warnings...)
	for _, class := range classes {
		if result, ok := classResults[class]; ok {
			warnings = append(warnings, result.Warnings...)
		}
	}

	plan := &Plan{
		ID: uuid.New(), Classes: classes, Shared: sharedResult.DeployEncoders,
		ClassImpact: classImpact, Score: rows, Names: allNames, FitRowCount: n, Warnings: warnings,
	}
	return plan, cf, nil
}

func restrictTo(existing map[encoders.Kind]bool, allowed ...encoders.Kind) map[encoders.Kind]bool {
	out := map[encoders.Kind]bool{}
	for _, k := range allowed {
		if existing == nil || existing[k] {
			out[k] = true
		}
	}
	return out
}

func subsetAt(full []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = full[r]
	}
	return out
}

// encoderIndexForColumn maps a cross-frame column index back to the
// encoder that produced it.
func encoderIndexForColumn(result *crossfit.Result, col int) int {
	offset := 0
	for i, enc := range result.DeployEncoders {
		width := len(enc.Names())
		if col < offset+width {
			return i
		}
		offset += width
	}
	return len(result.DeployEncoders) - 1
}

// FeatureNames returns the ordered derived column name list.
func (p *Plan) FeatureNames() []string { return p.Names }

// ScoreFrame returns the per-derived-variable, per-class significance rows.
func (p *Plan) ScoreFrame() []score.Row { return p.Score }

// RecommendedNames returns FeatureNames whose recommendation is OR'd
// across classes, matching columns by name with the class prefix
// removed: a shared variable counts as recommended if any class
// recommends it, and a class-specific impact variable counts as
// recommended if the impact variable of the same origin is recommended
// for any class.
func (p *Plan) RecommendedNames() []string {
	recommendedBase := map[string]bool{}
	for _, row := range p.Score {
		if !row.Recommended {
			continue
		}
		recommendedBase[baseName(row.VarName, row.OutcomeLevel)] = true
	}
	seen := map[string]bool{}
	var out []string
	for _, row := range p.Score {
		base := baseName(row.VarName, row.OutcomeLevel)
		if recommendedBase[base] && !seen[row.VarName] {
			seen[row.VarName] = true
			out = append(out, row.VarName)
		}
	}
	return out
}

func baseName(varName, outcomeLevel string) string {
	prefix := ident.Sanitize(outcomeLevel) + "_"
	if len(varName) > len(prefix) && varName[:len(prefix)] == prefix {
		return varName[len(prefix):]
	}
	return varName
}
