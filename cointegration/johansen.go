package cointegration

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// TraceCriticalValues is one row of the Johansen trace table: the 1%,
// 5% and 10% thresholds for a given number of common trends k-r.
type TraceCriticalValues struct {
	OnePercent  float64
	FivePercent float64
	TenPercent  float64
}

// JohansenResult holds a Johansen trace cointegration-rank test over k
// series.
type JohansenResult struct {
	// Eigenvalues are the canonical-correlation eigenvalues, sorted
	// descending, each in [0, 1].
	Eigenvalues []float64
	// TraceStats[r] is the statistic for the null of rank <= r,
	// r = 0..k-1; non-increasing in r.
	TraceStats []float64
	// CriticalValues[r] is the trace row for k-r common trends.
	CriticalValues []TraceCriticalValues
	// Rank is the smallest r whose trace statistic does not reject at
	// the 5% level; k if every null rejects.
	Rank int
	// K is the number of series, Lags the VAR lag order.
	K    int
	Lags int
	// N is the common series length; EffectiveN is N - Lags.
	N          int
	EffectiveN int
	// Specification is the deterministic-term choice used.
	Specification regression.Deterministic
}

// Johansen runs the trace test for cointegration rank on 2 to 5
// equal-length series with VAR lag order lag >= 1. The deterministic
// specification (none, drift, trend) shifts the terms partialled out
// of the reduction regressions and selects the critical-value table.
func Johansen(series [][]float64, lag int, spec regression.Deterministic) (*JohansenResult, error) {
	k := len(series)
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 series, got %d", k)
	}
	if k > 5 {
		return nil, fmt.Errorf("trace critical values are tabulated for at most 5 series, got %d", k)
	}
	if !spec.Valid() {
		return nil, fmt.Errorf("invalid specification %v", spec)
	}
	if lag < 1 {
		return nil, fmt.Errorf("lag order must be at least 1, got %d", lag)
	}

	n := len(series[0])
	for i, s := range series {
		if len(s) != n {
			return nil, fmt.Errorf("series lengths differ: series 0 has %d, series %d has %d", n, i, len(s))
		}
		if err := timeseries.Validate(s, 2); err != nil {
			return nil, fmt.Errorf("series %d: %v", i, err)
		}
	}
	T := n - lag
	if T < 20 {
		return nil, fmt.Errorf("too few effective observations: n - lag = %d, need at least 20", T)
	}

	// First differences, d[i][t] = y_i[t+1] - y_i[t].
	d := make([][]float64, k)
	for i, s := range series {
		d[i] = timeseries.Diff(s)
	}

	// Regressor block partialled out of both sides: lag-1 lagged
	// differences of every series plus the deterministic terms.
	wCols := (lag-1)*k + spec.Columns()
	var w *mat.Dense
	if wCols > 0 {
		w = mat.NewDense(T, wCols, nil)
		for row := 0; row < T; row++ {
			t := row + lag
			col := 0
			if spec == regression.SpecDrift || spec == regression.SpecTrend {
				w.Set(row, col, 1.0)
				col++
			}
			if spec == regression.SpecTrend {
				w.Set(row, col, float64(t+1))
				col++
			}
			for j := 1; j < lag; j++ {
				for i := 0; i < k; i++ {
					w.Set(row, col, d[i][t-j-1])
					col++
				}
			}
		}
	}

	// Residuals of the differenced block (R0) and the lagged-level
	// block (R1) after partialling out w.
	r0 := mat.NewDense(T, k, nil)
	r1 := mat.NewDense(T, k, nil)
	z0 := make([]float64, T)
	z1 := make([]float64, T)
	for i := 0; i < k; i++ {
		for row := 0; row < T; row++ {
			t := row + lag
			z0[row] = d[i][t-1]
			z1[row] = series[i][t-1]
		}
		e0, err := regression.Residuals(w, z0)
		if err != nil {
			return nil, fmt.Errorf("reduction regression failed for differences of series %d: %v", i, err)
		}
		e1, err := regression.Residuals(w, z1)
		if err != nil {
			return nil, fmt.Errorf("reduction regression failed for levels of series %d: %v", i, err)
		}
		r0.SetCol(i, e0)
		r1.SetCol(i, e1)
	}

	// Moment matrices S_ij = R_i' R_j / T.
	s00 := momentMatrix(r0, r0, T)
	s01 := momentMatrix(r0, r1, T)
	s10 := momentMatrix(r1, r0, T)
	s11 := momentMatrix(r1, r1, T)

	var s00Inv, s11Inv mat.Dense
	if err := s00Inv.Inverse(s00); err != nil {
		return nil, fmt.Errorf("S00 moment matrix is singular: %v", err)
	}
	if err := s11Inv.Inverse(s11); err != nil {
		return nil, fmt.Errorf("S11 moment matrix is singular: %v", err)
	}

	// Eigenvalues of S11^-1 S10 S00^-1 S01.
	var a, b, m mat.Dense
	a.Mul(s10, &s00Inv)
	b.Mul(&a, s01)
	m.Mul(&s11Inv, &b)

	var eig mat.Eigen
	if ok := eig.Factorize(&m, mat.EigenNone); !ok {
		return nil, fmt.Errorf("eigen decomposition of the canonical-correlation system failed")
	}
	raw := eig.Values(nil)
	lambda := make([]float64, k)
	for i, v := range raw {
		l := real(v)
		if math.IsNaN(l) {
			return nil, fmt.Errorf("eigen decomposition produced a non-finite eigenvalue")
		}
		// The canonical correlations lie in [0,1]; rounding can push
		// them marginally outside.
		if l < 0 {
			l = 0
		}
		if l > 1-1e-12 {
			l = 1 - 1e-12
		}
		lambda[i] = l
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(lambda)))

	trace := make([]float64, k)
	for r := 0; r < k; r++ {
		sum := 0.0
		for i := r; i < k; i++ {
			sum += math.Log(1 - lambda[i])
		}
		trace[r] = -float64(T) * sum
	}

	table := traceTable(spec)
	cvs := make([]TraceCriticalValues, k)
	rank := k
	for r := 0; r < k; r++ {
		cvs[r] = table[k-r-1]
		if rank == k && trace[r] < cvs[r].FivePercent {
			rank = r
		}
	}

	return &JohansenResult{
		Eigenvalues:    lambda,
		TraceStats:     trace,
		CriticalValues: cvs,
		Rank:           rank,
		K:              k,
		Lags:           lag,
		N:              n,
		EffectiveN:     T,
		Specification:  spec,
	}, nil
}

func momentMatrix(a, b *mat.Dense, t int) *mat.Dense {
	var m mat.Dense
	m.Mul(a.T(), b)
	m.Scale(1/float64(t), &m)
	return &m
}

// Johansen trace critical values (Osterwald-Lenum 1992, as tabulated
// by LeSage), indexed by k-r-1.
var (
	traceNone = []TraceCriticalValues{
		{6.9406, 4.1296, 2.9762},
		{16.3640, 12.3212, 10.4741},
		{29.5147, 24.2761, 21.7781},
		{46.5716, 40.1749, 37.0339},
		{67.6367, 60.0627, 56.2839},
	}
	traceConst = []TraceCriticalValues{
		{6.6349, 3.8415, 2.7055},
		{19.9349, 15.4943, 13.4294},
		{35.4628, 29.7961, 27.0669},
		{54.6815, 47.8545, 44.4929},
		{77.8202, 69.8189, 65.8202},
	}
	traceTrend = []TraceCriticalValues{
		{6.6349, 3.8415, 2.7055},
		{23.1485, 18.3985, 16.1619},
		{41.0815, 35.0116, 32.0645},
		{62.5202, 55.2459, 51.6492},
		{87.7748, 79.3422, 75.1027},
	}
)

func traceTable(spec regression.Deterministic) []TraceCriticalValues {
	switch spec {
	case regression.SpecDrift:
		return traceConst
	case regression.SpecTrend:
		return traceTrend
	}
	return traceNone
}

// Interpret describes the rank decision at significance level alpha
// (snapped to the nearest of 1%, 5%, 10%).
func (r *JohansenResult) Interpret(alpha float64) string {
	rank := r.K
	for i := 0; i < r.K; i++ {
		if r.TraceStats[i] < r.criticalAt(i, alpha) {
			rank = i
			break
		}
	}
	if rank == 0 {
		return fmt.Sprintf("trace test finds no cointegration among the %d series at the %.0f%% level", r.K, snapAlpha(alpha)*100)
	}
	if rank == r.K {
		return fmt.Sprintf("trace test rejects every rank up to %d at the %.0f%% level; the system looks stationary in levels", r.K-1, snapAlpha(alpha)*100)
	}
	return fmt.Sprintf("trace test finds cointegration rank %d among the %d series at the %.0f%% level", rank, r.K, snapAlpha(alpha)*100)
}

func (r *JohansenResult) criticalAt(i int, alpha float64) float64 {
	cv := r.CriticalValues[i]
	switch snapAlpha(alpha) {
	case 0.01:
		return cv.OnePercent
	case 0.10:
		return cv.TenPercent
	}
	return cv.FivePercent
}

func snapAlpha(alpha float64) float64 {
	best := 0.05
	for _, l := range []float64{0.01, 0.05, 0.10} {
		if math.Abs(l-alpha) < math.Abs(best-alpha) {
			best = l
		}
	}
	return best
}

// Evaluate lists each rank hypothesis with its statistic and 5%
// critical value, then the decision.
func (r *JohansenResult) Evaluate() string {
	var b strings.Builder
	for i := 0; i < r.K; i++ {
		verdict := "not rejected"
		if r.TraceStats[i] >= r.CriticalValues[i].FivePercent {
			verdict = "rejected"
		}
		fmt.Fprintf(&b, "rank <= %d: trace = %.4f, 5%% critical = %.4f (%s)\n",
			i, r.TraceStats[i], r.CriticalValues[i].FivePercent, verdict)
	}
	fmt.Fprintf(&b, "estimated cointegration rank: %d", r.Rank)
	return b.String()
}

func (r *JohansenResult) String() string {
	return fmt.Sprintf("Johansen trace test: k = %d, lag = %d, spec = %s, n = %d (effective %d), rank = %d",
		r.K, r.Lags, r.Specification, r.N, r.EffectiveN, r.Rank)
}
