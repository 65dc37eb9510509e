package vtreat

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slee1009/vtreat/pkg/frame"
	"github.com/slee1009/vtreat/pkg/stats"
)

func employeeFrame(t *testing.T) (*frame.Frame, []float64) {
	t.Helper()
	n := 90
	tenure := make([]float64, n)
	dept := make([]string, n)
	y := make([]float64, n)
	depts := []string{"eng", "sales", "support"}
	for i := 0; i < n; i++ {
		tenure[i] = float64(i % 12)
		if i%17 == 0 {
			tenure[i] = math.NaN()
		}
		dept[i] = depts[i%3]
		base := 40000.0 + tenure[i]*1000
		if dept[i] == "eng" {
			base += 5000
		}
		y[i] = base
	}
	fr, err := frame.New(
		frame.NewNumericColumn("tenure", tenure),
		frame.NewCategoricalColumn("dept", dept, ""),
	)
	require.NoError(t, err)
	return fr, y
}

// Scenario A: fitting a numeric outcome surfaces a recommended subset
// that includes the genuinely predictive column.
func TestScenarioNumericRecommendsPredictiveColumn(t *testing.T) {
	fr, y := employeeFrame(t)
	params := DefaultParams()
	params.Seed = 1
	plan, cf, err := FitNumeric(context.Background(), fr, []string{"tenure", "dept"}, y, params)
	require.NoError(t, err)
	assert.Equal(t, fr.RowCount(), cf.R)
	assert.NotEmpty(t, plan.RecommendedNames())

	var tenureRecommended bool
	for _, row := range plan.ScoreFrame() {
		if row.Origin == "tenure" && row.Recommended {
			tenureRecommended = true
		}
	}
	assert.True(t, tenureRecommended)
}

// Scenario B: transforming the exact training frame surfaces
// SameFrameTransformWarning; transforming a fresh frame doesn't.
func TestScenarioSameFrameTransformWarning(t *testing.T) {
	fr, y := employeeFrame(t)
	params := DefaultParams()
	params.Seed = 2
	plan, _, err := FitNumeric(context.Background(), fr, []string{"tenure", "dept"}, y, params)
	require.NoError(t, err)

	_, warnings, err := plan.Transform(fr)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.True(t, strings.HasPrefix(warnings[0], "SameFrameTransformWarning"))

	fresh, err := frame.New(
		frame.NewNumericColumn("tenure", []float64{1, 2}),
		frame.NewCategoricalColumn("dept", []string{"eng", "sales"}, ""),
	)
	require.NoError(t, err)
	_, freshWarnings, err := plan.Transform(fresh)
	require.NoError(t, err)
	assert.Empty(t, freshWarnings)
}

// Scenario B (nested-model-bias guard): dept's impact is a per-level
// constant, so the biased deployment fit over the exact training frame
// assigns every row of a level the single whole-data group mean -- zero
// within-level variance. The cross-frame holds the same column's
// out-of-fold values instead, where different folds see a different
// subset of rows and so fit a different group mean; that honest variance
// is what downstream significance scoring depends on to avoid reporting
// a trivially perfect fit.
func TestScenarioNestedModelBiasGuardOnImpactColumn(t *testing.T) {
	fr, y := employeeFrame(t)
	params := DefaultParams()
	params.Seed = 9
	plan, cf, err := FitNumeric(context.Background(), fr, []string{"tenure", "dept"}, y, params)
	require.NoError(t, err)

	col := -1
	for i, name := range plan.Names {
		if name == "dept_catN" {
			col = i
		}
	}
	require.NotEqual(t, -1, col, "dept_catN must be among the derived columns")

	deptCol, ok := fr.Column("dept")
	require.True(t, ok)

	crossWithinVar := meanWithinLevelVariance(deptCol.Cats, cf.Column(col))
	assert.Greater(t, crossWithinVar, 1e-6, "cross-frame impact column should vary within a level across folds")

	deployed, _, err := plan.Transform(fr)
	require.NoError(t, err)
	deployedWithinVar := meanWithinLevelVariance(deptCol.Cats, deployed.Column(col))
	assert.Less(t, deployedWithinVar, 1e-9, "transforming the training frame through the deployment fit must collapse to a single group mean per level")
}

// meanWithinLevelVariance averages, across levels, the variance of vals
// among the rows sharing that level.
func meanWithinLevelVariance(levels []string, vals []float64) float64 {
	byLevel := map[string][]float64{}
	for i, lvl := range levels {
		byLevel[lvl] = append(byLevel[lvl], vals[i])
	}
	var total float64
	var n int
	for _, group := range byLevel {
		total += stats.Variance(group)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Scenario C: a transform-time novel categorical level does not error.
func TestScenarioNovelLevelAtTransform(t *testing.T) {
	fr, y := employeeFrame(t)
	params := DefaultParams()
	params.Seed = 3
	plan, _, err := FitNumeric(context.Background(), fr, []string{"tenure", "dept"}, y, params)
	require.NoError(t, err)

	fresh, err := frame.New(
		frame.NewNumericColumn("tenure", []float64{5}),
		frame.NewCategoricalColumn("dept", []string{"legal"}, ""),
	)
	require.NoError(t, err)
	cf, _, err := plan.Transform(fresh)
	require.NoError(t, err)
	assert.Equal(t, 1, cf.R)
}

// Scenario D: a binomial fit fails closed with ErrInvalidParameter when
// no pos_value is given, and succeeds once one is set.
func TestScenarioBinomialRequiresPosValue(t *testing.T) {
	fr, _ := employeeFrame(t)
	raw := make([]string, fr.RowCount())
	for i := range raw {
		if i%3 == 0 {
			raw[i] = "churned"
		} else {
			raw[i] = "stayed"
		}
	}
	params := DefaultParams()
	_, _, err := FitBinomial(context.Background(), fr, []string{"tenure", "dept"}, raw, "", params)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	params.PosValue = "churned"
	plan, _, err := FitBinomial(context.Background(), fr, []string{"tenure", "dept"}, raw, "", params)
	require.NoError(t, err)
	assert.NotNil(t, plan)
}

// Scenario E: cat_scaling explicitly set on a numeric-outcome fit is
// rejected rather than silently ignored.
func TestScenarioCatScalingRejectedForNumericOutcome(t *testing.T) {
	fr, y := employeeFrame(t)
	params := DefaultParams()
	explicit := true
	params.CatScaling = &explicit
	_, _, err := FitNumeric(context.Background(), fr, []string{"tenure"}, y, params)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

// Scenario F: a constant outcome is a degenerate fit, rejected before any
// encoder work begins.
func TestScenarioDegenerateOutcomeRejected(t *testing.T) {
	fr, _ := employeeFrame(t)
	constant := make([]float64, fr.RowCount())
	for i := range constant {
		constant[i] = 42
	}
	params := DefaultParams()
	_, _, err := FitNumeric(context.Background(), fr, []string{"tenure"}, constant, params)
	assert.ErrorIs(t, err, ErrDegenerateOutcome)
}

func TestFitUnsupervisedHasNoOutcomeDependentEncoders(t *testing.T) {
	fr, _ := employeeFrame(t)
	params := DefaultParams()
	plan, _, err := FitUnsupervised(context.Background(), fr, []string{"tenure", "dept"}, params)
	require.NoError(t, err)
	for _, row := range plan.ScoreFrame() {
		assert.NotEqual(t, "impact", row.Kind)
		assert.NotEqual(t, "deviation", row.Kind)
	}
}

func TestFitMultinomialRequiresAtLeastTwoClasses(t *testing.T) {
	fr, _ := employeeFrame(t)
	raw := make([]string, fr.RowCount())
	for i := range raw {
		raw[i] = "only_class"
	}
	params := DefaultParams()
	_, _, err := FitMultinomial(context.Background(), fr, []string{"tenure"}, raw, "", params)
	assert.ErrorIs(t, err, ErrDegenerateOutcome)
}

func TestFitMultinomialProducesPerClassRecommendations(t *testing.T) {
	fr, _ := employeeFrame(t)
	raw := make([]string, fr.RowCount())
	classes := []string{"small", "medium", "large"}
	for i := range raw {
		raw[i] = classes[i%3]
	}
	params := DefaultParams()
	params.Seed = 5
	plan, cf, err := FitMultinomial(context.Background(), fr, []string{"tenure", "dept"}, raw, "", params)
	require.NoError(t, err)
	assert.Equal(t, fr.RowCount(), cf.R)
	require.NotNil(t, plan)

	scoredClasses := map[string]bool{}
	for _, row := range plan.ScoreFrame() {
		scoredClasses[row.OutcomeLevel] = true
	}
	for _, class := range classes {
		assert.True(t, scoredClasses[class], "no score rows for class %q", class)
	}
}
