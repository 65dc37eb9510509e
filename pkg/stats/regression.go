package stats

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// OneVarOLS is the closed-form single-predictor ordinary least squares fit
// used by the significance scorer and by OutcomeScaler. A single predictor has a unique global optimum,
// so the closed form is used here instead of the gradient-descent
// machinery in pkg/model: the scorer needs a bit-identical, not
// iteratively-approximated, slope across repeated fits.
type OneVarOLS struct {
	Slope     float64
	Intercept float64
	Rsq       float64
	StdErrB   float64 // standard error of Slope
	DF        float64 // residual degrees of freedom used for StdErrB
}

// FitOLS fits y ~ a + b*x and reports the slope's standard error with
// `extraDegrees` residual degrees of freedom subtracted, the significance
// adjustment a cross-validated encoder's extra fitted parameters need.
func FitOLS(x, y []float64, extraDegrees int) OneVarOLS {
	n := float64(len(x))
	if n < 3 {
		return OneVarOLS{}
	}
	sxx := Variance(x) * n
	if sxx == 0 {
		return OneVarOLS{Intercept: Mean(y)}
	}
	a, b := stat.LinearRegression(x, y, nil, false)
	rsq := 0.0
	if Variance(y) != 0 {
		rsq = stat.RSquared(x, y, nil, a, b)
	}

	ssRes := 0.0
	for i := range x {
		resid := y[i] - (a + b*x[i])
		ssRes += resid * resid
	}

	df := n - 2 - float64(extraDegrees)
	se := math.Inf(1)
	if df > 0 && sxx > 0 {
		variance := ssRes / df
		se = math.Sqrt(variance / sxx)
	}
	return OneVarOLS{Slope: b, Intercept: a, Rsq: rsq, StdErrB: se, DF: df}
}

// WaldP computes the two-sided Wald-test p-value for a coefficient
// estimate against a Student's t null distribution with df residual
// degrees of freedom.
func WaldP(coef, stdErr, df float64) float64 {
	if stdErr <= 0 || math.IsInf(stdErr, 1) || df <= 0 {
		return 1
	}
	t := coef / stdErr
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// OneVarLogistic is the one-variable logistic regression used by the
// significance scorer's binomial pseudo-R² / Wald test.
type OneVarLogistic struct {
	Slope        float64
	Intercept    float64
	StdErrB      float64
	Deviance     float64
	NullDeviance float64
	PseudoRsq    float64
}

// FitLogisticIRLS fits a one-variable logistic regression of binary y on x
// via Newton-Raphson (iteratively reweighted least squares), the standard
// iterative route to maximum-likelihood coefficients and their
// Fisher-information standard errors for a single predictor. Iteration
// starts from zero coefficients and stops once both steps are below 1e-10,
// the Hessian cannot be solved, or maxIter steps have run.
func FitLogisticIRLS(x, y []float64, maxIter int) OneVarLogistic {
	n := len(x)
	if n == 0 {
		return OneVarLogistic{}
	}
	b0, b1 := 0.0, 0.0

	for iter := 0; iter < maxIter; iter++ {
		hessian, gradient := logisticHessianGradient(x, y, b0, b1)
		var delta mat.VecDense
		if err := delta.SolveVec(hessian, gradient); err != nil {
			break
		}
		db0, db1 := delta.AtVec(0), delta.AtVec(1)
		b0 += db0
		b1 += db1
		if math.Abs(db0) < 1e-10 && math.Abs(db1) < 1e-10 {
			break
		}
	}

	hessian, _ := logisticHessianGradient(x, y, b0, b1)
	var deviance float64
	pbar := Mean(y)
	nullDeviance := 0.0
	for i := 0; i < n; i++ {
		eta := b0 + b1*x[i]
		p := clampProba(1 / (1 + math.Exp(-eta)))
		deviance += -2 * (y[i]*math.Log(p) + (1-y[i])*math.Log(1-p))
		pn := clampProba(pbar)
		nullDeviance += -2 * (y[i]*math.Log(pn) + (1-y[i])*math.Log(1-pn))
	}
	se := math.Inf(1)
	var cov mat.Dense
	if err := cov.Inverse(hessian); err == nil {
		if varB1 := cov.At(1, 1); varB1 > 0 {
			se = math.Sqrt(varB1)
		}
	}
	pseudo := 0.0
	if nullDeviance != 0 {
		pseudo = 1 - deviance/nullDeviance
	}
	return OneVarLogistic{
		Slope: b1, Intercept: b0, StdErrB: se,
		Deviance: deviance, NullDeviance: nullDeviance, PseudoRsq: pseudo,
	}
}

// logisticHessianGradient builds the (2x2) observed-information Hessian and
// the score-function gradient for a one-variable logistic fit at (b0, b1),
// the normal-equations system the Newton-Raphson step in FitLogisticIRLS
// solves via gonum/mat instead of a hand-inverted 2x2.
func logisticHessianGradient(x, y []float64, b0, b1 float64) (*mat.Dense, *mat.VecDense) {
	var g0, g1, h00, h01, h11 float64
	for i := range x {
		eta := b0 + b1*x[i]
		p := 1 / (1 + math.Exp(-eta))
		w := p * (1 - p)
		resid := y[i] - p
		g0 += resid
		g1 += resid * x[i]
		h00 += w
		h01 += w * x[i]
		h11 += w * x[i] * x[i]
	}
	hessian := mat.NewDense(2, 2, []float64{h00, h01, h01, h11})
	gradient := mat.NewVecDense(2, []float64{g0, g1})
	return hessian, gradient
}

func clampProba(p float64) float64 {
	const eps = 1e-12
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

// Clamp bounds a value to ±1e12 (NaN becomes 0): internal impact
// computations that overflow are clamped and logged with slog rather than
// surfaced as an error.
func Clamp(v float64) float64 {
	const bound = 1e12
	if math.IsNaN(v) {
		slog.Warn("vtreat: numeric overflow clamped", "value", v, "clamped", 0.0)
		return 0
	}
	if v > bound {
		slog.Warn("vtreat: numeric overflow clamped", "value", v, "clamped", bound)
		return bound
	}
	if v < -bound {
		slog.Warn("vtreat: numeric overflow clamped", "value", v, "clamped", -bound)
		return -bound
	}
	return v
}
