package stats

import (
	"fmt"

	"github.com/d-setiawan/tsdiag/timeseries"
)

// ACF returns the sample autocorrelations of xs for lags 0..maxLag.
// Lag 0 is always 1 and every value lies in [-1, 1]. maxLag must lie
// in [0, len(xs)-1].
func ACF(xs []float64, maxLag int) ([]float64, error) {
	if err := timeseries.Validate(xs, 2); err != nil {
		return nil, err
	}
	n := len(xs)
	if maxLag < 0 {
		return nil, fmt.Errorf("maxLag must be non-negative, got %d", maxLag)
	}
	if maxLag >= n {
		return nil, fmt.Errorf("maxLag must be smaller than the sample size: maxLag=%d, n=%d", maxLag, n)
	}

	mean := timeseries.Mean(xs)
	variance := 0.0
	for _, v := range xs {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil, fmt.Errorf("series is constant (zero variance)")
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (xs[i] - mean) * (xs[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf, nil
}
