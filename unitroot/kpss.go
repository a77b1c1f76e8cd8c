package unitroot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// KpssResult holds a KPSS stationarity test. Unlike the Dickey-Fuller
// family, the null here is stationarity and the statistic rejects in
// the upper tail.
type KpssResult struct {
	// Statistic is the KPSS eta statistic.
	Statistic float64
	// Lags is the Bartlett-window truncation used for the long-run
	// variance.
	Lags int
	// N is the sample size.
	N int
	// Specification is drift (level stationarity) or trend.
	Specification regression.Deterministic
	// CriticalValues are the upper-tail KPSS values (1% largest).
	CriticalValues CriticalValues
	// PValue is an approximate, table-interpolated p-value.
	PValue float64
}

// Kpss runs the Kwiatkowski-Phillips-Schmidt-Shin test. The series is
// demeaned (spec drift) or linearly detrended (spec trend), partial
// sums of the residuals are accumulated, and the statistic is their
// scaled sum of squares over a Bartlett-window long-run variance.
//
// KPSS requires at least demeaning, so spec none is treated as drift.
// lags <= 0 auto-selects ceil(12*(n/100)^(1/4)).
func Kpss(series []float64, lags int, spec regression.Deterministic) (*KpssResult, error) {
	if !spec.Valid() {
		return nil, fmt.Errorf("invalid specification %v", spec)
	}
	if spec == regression.SpecNone {
		spec = regression.SpecDrift
	}
	if err := timeseries.Validate(series, 10); err != nil {
		return nil, err
	}
	n := len(series)

	if lags <= 0 {
		lags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if lags >= n {
		return nil, fmt.Errorf("lags must be smaller than the sample size: lags=%d, n=%d", lags, n)
	}

	var resid []float64
	if spec == regression.SpecTrend {
		x := mat.NewDense(n, 2, nil)
		for t := 0; t < n; t++ {
			x.Set(t, 0, 1.0)
			x.Set(t, 1, float64(t+1))
		}
		fit, err := regression.OLS(x, series)
		if err != nil {
			return nil, fmt.Errorf("detrending regression failed: %v", err)
		}
		resid = fit.Residuals
	} else {
		resid = timeseries.Demean(series)
	}

	// Partial sums of the residuals.
	cum := make([]float64, n)
	cum[0] = resid[0]
	for t := 1; t < n; t++ {
		cum[t] = cum[t-1] + resid[t]
	}

	// Long-run variance with Bartlett weights.
	s2 := 0.0
	for _, e := range resid {
		s2 += e * e
	}
	s2 /= float64(n)
	for l := 1; l <= lags; l++ {
		cov := 0.0
		for t := l; t < n; t++ {
			cov += resid[t] * resid[t-l]
		}
		cov /= float64(n)
		w := 1.0 - float64(l)/float64(lags+1)
		s2 += 2 * w * cov
	}
	if s2 <= 0 {
		return nil, fmt.Errorf("long-run variance estimate is not positive")
	}

	eta := 0.0
	for _, c := range cum {
		eta += c * c
	}
	eta /= float64(n) * float64(n) * s2

	cv := kpssLevelRow
	if spec == regression.SpecTrend {
		cv = kpssTrendRow
	}

	return &KpssResult{
		Statistic:      eta,
		Lags:           lags,
		N:              n,
		Specification:  spec,
		CriticalValues: cv,
		PValue:         approxUpperTailPValue(eta, cv),
	}, nil
}

// Interpret describes the test outcome at significance level alpha
// (snapped to the nearest of 1%, 5%, 10%). Note the reversed null:
// rejection here favors a unit root.
func (r *KpssResult) Interpret(alpha float64) string {
	value, level := r.CriticalValues.AtLevel(alpha)
	if r.Statistic > value {
		return fmt.Sprintf("KPSS: eta = %.4f > %.3f: reject the stationarity null at the %.0f%% level; the series looks non-stationary",
			r.Statistic, value, level*100)
	}
	return fmt.Sprintf("KPSS: eta = %.4f <= %.3f: cannot reject stationarity at the %.0f%% level",
		r.Statistic, value, level*100)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *KpssResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *KpssResult) String() string {
	return fmt.Sprintf("KPSS test: eta = %.4f, lags = %d, spec = %s, n = %d, critical values 1%% %.3f, 5%% %.3f, 10%% %.3f",
		r.Statistic, r.Lags, r.Specification, r.N,
		r.CriticalValues.OnePercent, r.CriticalValues.FivePercent, r.CriticalValues.TenPercent)
}
