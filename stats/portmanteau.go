package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/d-setiawan/tsdiag/timeseries"
)

// PortmanteauResult holds a Ljung-Box joint autocorrelation test.
type PortmanteauResult struct {
	// Statistic is the Ljung-Box Q statistic.
	Statistic float64
	// PValue is the upper-tail chi-square probability.
	PValue float64
	// Lags is the number of autocorrelations tested.
	Lags int
	// FitDF is the number of already-fitted model parameters.
	FitDF int
	// DF is the chi-square degrees of freedom, Lags - FitDF.
	DF int
	// N is the sample size.
	N int
}

// LjungBox computes the Ljung-Box portmanteau statistic
// Q = n(n+2) * sum_{k=1..h} rho_k^2/(n-k) over a residual sequence.
//
// lags <= 0 auto-selects min(10, n/5). fitdf is the number of model
// parameters already estimated from the data (e.g. p+q for an ARMA
// fit) and must be smaller than the lag count.
func LjungBox(residuals []float64, lags, fitdf int) (*PortmanteauResult, error) {
	if err := timeseries.Validate(residuals, 10); err != nil {
		return nil, err
	}
	n := len(residuals)

	if lags <= 0 {
		lags = n / 5
		if lags > 10 {
			lags = 10
		}
		if lags < 1 {
			lags = 1
		}
	}
	if lags >= n {
		return nil, fmt.Errorf("lags must be smaller than the sample size: lags=%d, n=%d", lags, n)
	}
	if fitdf < 0 {
		return nil, fmt.Errorf("fitdf must be non-negative, got %d", fitdf)
	}
	if fitdf >= lags {
		return nil, fmt.Errorf("fitdf must be smaller than lags: fitdf=%d, lags=%d", fitdf, lags)
	}

	acf, err := ACF(residuals, lags)
	if err != nil {
		return nil, err
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n) * float64(n+2)

	df := lags - fitdf
	chi2 := distuv.ChiSquared{K: float64(df)}
	p := chi2.Survival(q)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	return &PortmanteauResult{
		Statistic: q,
		PValue:    p,
		Lags:      lags,
		FitDF:     fitdf,
		DF:        df,
		N:         n,
	}, nil
}

// Interpret describes the test outcome at significance level alpha.
func (r *PortmanteauResult) Interpret(alpha float64) string {
	if r.PValue < alpha {
		return fmt.Sprintf("Q = %.4f (p = %.4f): reject no-autocorrelation at the %.0f%% level; residuals are serially correlated up to lag %d",
			r.Statistic, r.PValue, alpha*100, r.Lags)
	}
	return fmt.Sprintf("Q = %.4f (p = %.4f): no significant autocorrelation up to lag %d at the %.0f%% level",
		r.Statistic, r.PValue, r.Lags, alpha*100)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *PortmanteauResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *PortmanteauResult) String() string {
	return fmt.Sprintf("Ljung-Box test: Q = %.4f, df = %d, p = %.4f, lags = %d, n = %d",
		r.Statistic, r.DF, r.PValue, r.Lags, r.N)
}
