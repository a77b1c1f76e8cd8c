package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit holds the output of one OLS regression. It is created fresh per
// test invocation and discarded once the statistic is extracted.
type Fit struct {
	// Coefficients are the estimated betas, in design-column order.
	Coefficients []float64
	// StdErrors are the per-coefficient standard errors from
	// s^2 * (X'X)^-1.
	StdErrors []float64
	// Residuals are y - X*beta.
	Residuals []float64
	// RSS is the residual sum of squares.
	RSS float64
	// DF is the residual degrees of freedom, n - k.
	DF int
}

// OLS regresses y on the columns of x via the normal equations
// beta = (X'X)^-1 X'y and returns coefficients, standard errors,
// residuals and RSS.
//
// A rank-deficient X'X (duplicate or constant columns, too few rows)
// is a hard error: the unit-root and causality tests must never turn a
// degenerate design matrix into a NaN statistic.
func OLS(x *mat.Dense, y []float64) (*Fit, error) {
	n, k := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("response length %d does not match design rows %d", len(y), n)
	}
	if n <= k {
		return nil, fmt.Errorf("not enough observations for %d regressors: n=%d", k, n)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("design matrix is rank deficient: %v", err)
	}

	yVec := mat.NewVecDense(n, y)

	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	var yHat mat.VecDense
	yHat.MulVec(x, &beta)

	resid := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		resid[i] = y[i] - yHat.AtVec(i)
		rss += resid[i] * resid[i]
	}

	df := n - k
	s2 := rss / float64(df)

	coef := make([]float64, k)
	se := make([]float64, k)
	for j := 0; j < k; j++ {
		coef[j] = beta.AtVec(j)
		se[j] = math.Sqrt(s2 * xtxInv.At(j, j))
		if math.IsNaN(coef[j]) || math.IsNaN(se[j]) {
			return nil, fmt.Errorf("regression produced a non-finite estimate for column %d", j)
		}
	}

	return &Fit{
		Coefficients: coef,
		StdErrors:    se,
		Residuals:    resid,
		RSS:          rss,
		DF:           df,
	}, nil
}

// Residuals regresses y on x and returns only the residual vector.
// When x has zero columns the residuals are y itself (nothing to
// project out), which is the p=1, no-deterministics case of the
// Johansen reduction.
func Residuals(x *mat.Dense, y []float64) ([]float64, error) {
	if x == nil {
		out := make([]float64, len(y))
		copy(out, y)
		return out, nil
	}
	_, k := x.Dims()
	if k == 0 {
		out := make([]float64, len(y))
		copy(out, y)
		return out, nil
	}
	fit, err := OLS(x, y)
	if err != nil {
		return nil, err
	}
	return fit.Residuals, nil
}
