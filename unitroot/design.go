package unitroot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/d-setiawan/tsdiag/regression"
)

// autoLag is the default lag rule for the augmented regressions:
// floor((n-1)^(1/3)) capped at 10.
func autoLag(n int) int {
	l := int(math.Floor(math.Cbrt(float64(n - 1))))
	if l > 10 {
		l = 10
	}
	if l < 0 {
		l = 0
	}
	return l
}

// dickeyFullerDesign builds the regression of Delta y_t on the
// deterministic terms of spec, the lagged level y_{t-1}, and lag
// lagged differences. It returns the design matrix and the response,
// with rows t = lag+2 .. n (effective sample n - lag - 1). The lagged
// level sits at column index spec.Columns().
func dickeyFullerDesign(y []float64, lag int, spec regression.Deterministic) (*mat.Dense, []float64, error) {
	n := len(y)
	rows := n - lag - 1
	cols := spec.Columns() + 1 + lag
	if rows <= cols {
		return nil, nil, fmt.Errorf("not enough observations for lag %d with specification %s: n=%d", lag, spec, n)
	}

	d := make([]float64, n-1)
	for i := 1; i < n; i++ {
		d[i-1] = y[i] - y[i-1]
	}

	x := mat.NewDense(rows, cols, nil)
	resp := make([]float64, rows)

	for i := 0; i < rows; i++ {
		t := i + lag + 1 // zero-based index of the response point
		resp[i] = d[t-1]

		col := 0
		if spec == regression.SpecDrift || spec == regression.SpecTrend {
			x.Set(i, col, 1.0)
			col++
		}
		if spec == regression.SpecTrend {
			x.Set(i, col, float64(t+1))
			col++
		}
		x.Set(i, col, y[t-1])
		col++
		for j := 1; j <= lag; j++ {
			x.Set(i, col, d[t-1-j])
			col++
		}
	}
	return x, resp, nil
}

// tauStatistic runs the Dickey-Fuller regression and returns gamma,
// its standard error and the t-ratio on the lagged level.
func tauStatistic(y []float64, lag int, spec regression.Deterministic) (gamma, se, stat float64, err error) {
	x, resp, err := dickeyFullerDesign(y, lag, spec)
	if err != nil {
		return 0, 0, 0, err
	}
	fit, err := regression.OLS(x, resp)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("unit-root regression failed: %v", err)
	}
	idx := spec.Columns()
	gamma = fit.Coefficients[idx]
	se = fit.StdErrors[idx]
	if se == 0 || math.IsNaN(se) {
		return 0, 0, 0, fmt.Errorf("unit-root regression produced a degenerate standard error")
	}
	return gamma, se, gamma / se, nil
}
