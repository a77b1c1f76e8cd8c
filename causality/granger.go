package causality

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// GrangerResult holds a Granger causality F-test of whether past x
// improves the prediction of y beyond y's own past.
type GrangerResult struct {
	// FStatistic is non-negative by construction.
	FStatistic float64
	// PValue is the upper-tail F probability.
	PValue float64
	// Lag is the number of lags in both models.
	Lag int
	// N is the common series length; EffectiveN is N - Lag.
	N          int
	EffectiveN int
	// DF1 = Lag, DF2 = EffectiveN - 2*Lag - 1.
	DF1 int
	DF2 int
	// RSSRestricted and RSSUnrestricted are the residual sums of
	// squares of the nested fits; RSSUnrestricted <= RSSRestricted.
	RSSRestricted   float64
	RSSUnrestricted float64
}

// Granger tests whether x Granger-causes y. The restricted model
// regresses y_t on an intercept and its own lag lags; the unrestricted
// model adds the same number of lags of x. Both are fit over the same
// effective sample of n - lag observations and compared with an F-test
// on the exclusion of the x lags. A non-positive lag auto-selects
// min(10, floor((n-1)^(1/3))).
func Granger(x, y []float64, lag int) (*GrangerResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("series lengths differ: x has %d, y has %d", len(x), len(y))
	}
	if err := timeseries.Validate(x, 10); err != nil {
		return nil, fmt.Errorf("x: %v", err)
	}
	if err := timeseries.Validate(y, 10); err != nil {
		return nil, fmt.Errorf("y: %v", err)
	}
	n := len(y)
	if lag <= 0 {
		lag = grangerAutoLag(n)
	}

	effN := n - lag
	df1 := lag
	df2 := effN - 2*lag - 1
	if df2 <= 0 {
		return nil, fmt.Errorf("insufficient degrees of freedom: lag %d leaves df2 = %d", lag, df2)
	}

	restricted, err := regression.OLS(lagDesign(y, nil, lag), y[lag:])
	if err != nil {
		return nil, fmt.Errorf("restricted regression failed: %v", err)
	}
	unrestricted, err := regression.OLS(lagDesign(y, x, lag), y[lag:])
	if err != nil {
		return nil, fmt.Errorf("unrestricted regression failed: %v", err)
	}

	// More regressors cannot worsen in-sample fit; a tiny negative
	// difference is floating-point noise.
	num := restricted.RSS - unrestricted.RSS
	if num < 0 {
		num = 0
	}

	den := unrestricted.RSS / float64(df2)
	var f, p float64
	if den <= 0 || num == 0 {
		f = 0
		p = 1
	} else {
		f = (num / float64(df1)) / den
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("F statistic is not finite")
		}
		fDist := distuv.F{D1: float64(df1), D2: float64(df2)}
		p = 1 - fDist.CDF(f)
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return &GrangerResult{
		FStatistic:      f,
		PValue:          p,
		Lag:             lag,
		N:               n,
		EffectiveN:      effN,
		DF1:             df1,
		DF2:             df2,
		RSSRestricted:   restricted.RSS,
		RSSUnrestricted: unrestricted.RSS,
	}, nil
}

// lagDesign builds the design matrix for y_t over t = lag..n-1: an
// intercept, lag lags of y, and (when x is non-nil) lag lags of x.
func lagDesign(y, x []float64, lag int) *mat.Dense {
	n := len(y)
	rows := n - lag
	cols := 1 + lag
	if x != nil {
		cols += lag
	}
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		t := i + lag
		m.Set(i, 0, 1.0)
		col := 1
		for j := 1; j <= lag; j++ {
			m.Set(i, col, y[t-j])
			col++
		}
		if x != nil {
			for j := 1; j <= lag; j++ {
				m.Set(i, col, x[t-j])
				col++
			}
		}
	}
	return m
}

func grangerAutoLag(n int) int {
	l := int(math.Floor(math.Cbrt(float64(n - 1))))
	if l > 10 {
		l = 10
	}
	if l < 1 {
		l = 1
	}
	return l
}

// Interpret describes the test outcome at significance level alpha.
func (r *GrangerResult) Interpret(alpha float64) string {
	if r.PValue < alpha {
		return fmt.Sprintf("F(%d, %d) = %.4f (p = %.4f): x Granger-causes y at the %.0f%% level",
			r.DF1, r.DF2, r.FStatistic, r.PValue, alpha*100)
	}
	return fmt.Sprintf("F(%d, %d) = %.4f (p = %.4f): no evidence that x Granger-causes y at the %.0f%% level",
		r.DF1, r.DF2, r.FStatistic, r.PValue, alpha*100)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *GrangerResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *GrangerResult) String() string {
	return fmt.Sprintf("Granger causality test: F = %.4f, p = %.4f, lag = %d, n = %d (effective %d)",
		r.FStatistic, r.PValue, r.Lag, r.N, r.EffectiveN)
}
