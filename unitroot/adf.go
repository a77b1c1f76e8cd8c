package unitroot

import (
	"fmt"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// AdfResult holds an augmented Dickey-Fuller unit-root test.
type AdfResult struct {
	// Statistic is the t-ratio on the lagged level.
	Statistic float64
	// Gamma is the coefficient on the lagged level.
	Gamma float64
	// StdError is gamma's standard error.
	StdError float64
	// Lag is the number of lagged differences in the regression.
	Lag int
	// N is the sample size; EffectiveN is N - Lag - 1.
	N          int
	EffectiveN int
	// Specification is the deterministic-term choice used.
	Specification regression.Deterministic
	// CriticalValues are the Fuller values at the effective sample size.
	CriticalValues CriticalValues
	// PValue is an approximate, table-interpolated p-value.
	PValue float64
}

// Adf runs the augmented Dickey-Fuller test: the Df regression plus
// lag lagged differences of the series to soak up serial correlation.
// A negative lag auto-selects min(10, floor((n-1)^(1/3))).
func Adf(series []float64, lag int, spec regression.Deterministic) (*AdfResult, error) {
	if !spec.Valid() {
		return nil, fmt.Errorf("invalid specification %v", spec)
	}
	if err := timeseries.Validate(series, 10); err != nil {
		return nil, err
	}
	n := len(series)
	if lag < 0 {
		lag = autoLag(n)
	}
	if n-lag-1 < 10 {
		return nil, fmt.Errorf("lag %d leaves too few effective observations: n=%d", lag, n)
	}

	gamma, se, stat, err := tauStatistic(series, lag, spec)
	if err != nil {
		return nil, err
	}

	effN := n - lag - 1
	cv := dickeyFullerCritical(spec, effN)

	return &AdfResult{
		Statistic:      stat,
		Gamma:          gamma,
		StdError:       se,
		Lag:            lag,
		N:              n,
		EffectiveN:     effN,
		Specification:  spec,
		CriticalValues: cv,
		PValue:         approxLowerTailPValue(stat, cv),
	}, nil
}

// Interpret describes the test outcome at significance level alpha
// (snapped to the nearest of 1%, 5%, 10%).
func (r *AdfResult) Interpret(alpha float64) string {
	return interpretUnitRoot("Augmented Dickey-Fuller", r.Statistic, r.CriticalValues, alpha)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *AdfResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *AdfResult) String() string {
	return fmt.Sprintf("Augmented Dickey-Fuller test: tau = %.4f, lag = %d, spec = %s, n = %d (effective %d), critical values 1%% %.2f, 5%% %.2f, 10%% %.2f",
		r.Statistic, r.Lag, r.Specification, r.N, r.EffectiveN,
		r.CriticalValues.OnePercent, r.CriticalValues.FivePercent, r.CriticalValues.TenPercent)
}
