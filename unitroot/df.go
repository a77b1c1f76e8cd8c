package unitroot

import (
	"fmt"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// DfResult holds a simple Dickey-Fuller unit-root test.
type DfResult struct {
	// Statistic is the t-ratio on the lagged level.
	Statistic float64
	// Gamma is the coefficient on the lagged level.
	Gamma float64
	// StdError is gamma's standard error.
	StdError float64
	// N is the sample size; EffectiveN is N-1.
	N          int
	EffectiveN int
	// Specification is the deterministic-term choice used.
	Specification regression.Deterministic
	// CriticalValues are the Fuller values at the effective sample size.
	CriticalValues CriticalValues
	// PValue is an approximate, table-interpolated p-value.
	PValue float64
}

// Df runs the simple (lag-free) Dickey-Fuller test: Delta y_t is
// regressed on y_{t-1} plus the deterministic terms of spec, and the
// t-ratio on y_{t-1} is compared against the Fuller critical values.
// The null is a unit root; the alternative is stationarity.
func Df(series []float64, spec regression.Deterministic) (*DfResult, error) {
	if !spec.Valid() {
		return nil, fmt.Errorf("invalid specification %v", spec)
	}
	if err := timeseries.Validate(series, 10); err != nil {
		return nil, err
	}

	gamma, se, stat, err := tauStatistic(series, 0, spec)
	if err != nil {
		return nil, err
	}

	effN := len(series) - 1
	cv := dickeyFullerCritical(spec, effN)

	return &DfResult{
		Statistic:      stat,
		Gamma:          gamma,
		StdError:       se,
		N:              len(series),
		EffectiveN:     effN,
		Specification:  spec,
		CriticalValues: cv,
		PValue:         approxLowerTailPValue(stat, cv),
	}, nil
}

// Interpret describes the test outcome at significance level alpha
// (snapped to the nearest of 1%, 5%, 10%).
func (r *DfResult) Interpret(alpha float64) string {
	return interpretUnitRoot("Dickey-Fuller", r.Statistic, r.CriticalValues, alpha)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *DfResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *DfResult) String() string {
	return fmt.Sprintf("Dickey-Fuller test: tau = %.4f, spec = %s, n = %d (effective %d), critical values 1%% %.2f, 5%% %.2f, 10%% %.2f",
		r.Statistic, r.Specification, r.N, r.EffectiveN,
		r.CriticalValues.OnePercent, r.CriticalValues.FivePercent, r.CriticalValues.TenPercent)
}

// interpretUnitRoot phrases a lower-tail unit-root decision.
func interpretUnitRoot(name string, stat float64, cv CriticalValues, alpha float64) string {
	value, level := cv.AtLevel(alpha)
	if stat < value {
		return fmt.Sprintf("%s: tau = %.4f < %.2f: reject the unit-root null at the %.0f%% level; the series looks stationary",
			name, stat, value, level*100)
	}
	return fmt.Sprintf("%s: tau = %.4f >= %.2f: cannot reject the unit-root null at the %.0f%% level",
		name, stat, value, level*100)
}
