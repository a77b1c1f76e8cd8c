package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/d-setiawan/tsdiag/timeseries"
)

// TurningPointResult holds the turning-point randomness test.
type TurningPointResult struct {
	// TurningPoints is the number of interior strict local extrema.
	TurningPoints int
	// Peaks and Troughs split TurningPoints by direction.
	Peaks   int
	Troughs int
	// PossibleTurningPoints is n - 2.
	PossibleTurningPoints int
	// Expected is 2(n-2)/3 under the i.i.d. null.
	Expected float64
	// Variance is (16n-29)/90 under the i.i.d. null.
	Variance float64
	// Statistic is the standardized count (T - E[T]) / sqrt(Var[T]).
	Statistic float64
	// PValue is the two-sided standard-normal probability.
	PValue float64
	// N is the sample size.
	N int
}

// TurningPoint counts interior points of xs that are strict local
// maxima or minima and compares the count against the i.i.d.
// expectation. Too few turning points signal trend, too many signal
// regular cyclic alternation.
func TurningPoint(xs []float64) (*TurningPointResult, error) {
	if err := timeseries.Validate(xs, 3); err != nil {
		return nil, err
	}
	n := len(xs)

	peaks := 0
	troughs := 0
	for t := 1; t < n-1; t++ {
		switch {
		case xs[t] > xs[t-1] && xs[t] > xs[t+1]:
			peaks++
		case xs[t] < xs[t-1] && xs[t] < xs[t+1]:
			troughs++
		}
	}
	count := peaks + troughs

	nf := float64(n)
	expected := 2 * (nf - 2) / 3
	variance := (16*nf - 29) / 90

	z := (float64(count) - expected) / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}

	return &TurningPointResult{
		TurningPoints:         count,
		Peaks:                 peaks,
		Troughs:               troughs,
		PossibleTurningPoints: n - 2,
		Expected:              expected,
		Variance:              variance,
		Statistic:             z,
		PValue:                p,
		N:                     n,
	}, nil
}

// Interpret describes the test outcome at significance level alpha.
func (r *TurningPointResult) Interpret(alpha float64) string {
	if r.PValue < alpha {
		direction := "fewer turning points than expected (trend-like behavior)"
		if r.Statistic > 0 {
			direction = "more turning points than expected (cyclic alternation)"
		}
		return fmt.Sprintf("z = %.4f (p = %.4f): reject randomness at the %.0f%% level; %s",
			r.Statistic, r.PValue, alpha*100, direction)
	}
	return fmt.Sprintf("z = %.4f (p = %.4f): no evidence against randomness at the %.0f%% level",
		r.Statistic, r.PValue, alpha*100)
}

// Evaluate summarizes the result at the conventional 5% level.
func (r *TurningPointResult) Evaluate() string {
	return r.Interpret(0.05)
}

func (r *TurningPointResult) String() string {
	return fmt.Sprintf("Turning point test: T = %d of %d possible (peaks %d, troughs %d), E[T] = %.4f, z = %.4f, p = %.4f",
		r.TurningPoints, r.PossibleTurningPoints, r.Peaks, r.Troughs, r.Expected, r.Statistic, r.PValue)
}
