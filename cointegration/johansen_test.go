package cointegration

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-setiawan/tsdiag/regression"
)

func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := 1; i < n; i++ {
		xs[i] = xs[i-1] + rng.NormFloat64()
	}
	return xs
}

// cointegratedPair builds two series sharing one stochastic trend.
func cointegratedPair(n int, seed int64) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	trend := randomWalk(n, seed+1000)
	a := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = trend[i] + 0.3*rng.NormFloat64()
		b[i] = 2*trend[i] + 1 + 0.3*rng.NormFloat64()
	}
	return a, b
}

func TestJohansenCointegratedPair(t *testing.T) {
	a, b := cointegratedPair(300, 31)
	res, err := Johansen([][]float64{a, b}, 2, regression.SpecDrift)
	require.NoError(t, err)

	require.Len(t, res.Eigenvalues, 2)
	require.Len(t, res.TraceStats, 2)
	assert.GreaterOrEqual(t, res.Rank, 1,
		"two series sharing a stochastic trend must show at least one cointegrating relation")
	assert.Equal(t, 300, res.N)
	assert.Equal(t, 298, res.EffectiveN)
}

func TestJohansenEigenvalueInvariants(t *testing.T) {
	series := [][]float64{
		randomWalk(250, 41),
		randomWalk(250, 42),
		randomWalk(250, 43),
	}
	res, err := Johansen(series, 2, regression.SpecDrift)
	require.NoError(t, err)

	for i, l := range res.Eigenvalues {
		assert.GreaterOrEqual(t, l, 0.0, "eigenvalue %d", i)
		assert.LessOrEqual(t, l, 1.0, "eigenvalue %d", i)
		if i > 0 {
			assert.LessOrEqual(t, l, res.Eigenvalues[i-1], "eigenvalues must be sorted descending")
		}
	}
	for r := 1; r < len(res.TraceStats); r++ {
		assert.LessOrEqual(t, res.TraceStats[r], res.TraceStats[r-1],
			"trace statistics must be non-increasing in the tested rank")
	}
	for r, cv := range res.CriticalValues {
		assert.Greater(t, cv.OnePercent, cv.FivePercent, "rank %d", r)
		assert.Greater(t, cv.FivePercent, cv.TenPercent, "rank %d", r)
	}
}

func TestJohansenSpecifications(t *testing.T) {
	a, b := cointegratedPair(200, 51)
	for _, spec := range []regression.Deterministic{regression.SpecNone, regression.SpecDrift, regression.SpecTrend} {
		res, err := Johansen([][]float64{a, b}, 1, spec)
		require.NoError(t, err, "spec %s", spec)
		assert.Equal(t, spec, res.Specification)
		assert.Equal(t, 199, res.EffectiveN)
	}
}

func TestJohansenIdempotent(t *testing.T) {
	a, b := cointegratedPair(150, 61)
	r1, err := Johansen([][]float64{a, b}, 2, regression.SpecDrift)
	require.NoError(t, err)
	r2, err := Johansen([][]float64{a, b}, 2, regression.SpecDrift)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestJohansenValidation(t *testing.T) {
	a, b := cointegratedPair(100, 71)

	_, err := Johansen([][]float64{a}, 1, regression.SpecDrift)
	assert.Error(t, err, "one series is not enough")

	six := make([][]float64, 6)
	for i := range six {
		six[i] = randomWalk(100, int64(80+i))
	}
	_, err = Johansen(six, 1, regression.SpecDrift)
	assert.Error(t, err, "critical values stop at five series")

	_, err = Johansen([][]float64{a, b[:50]}, 1, regression.SpecDrift)
	assert.Error(t, err, "mismatched lengths")

	_, err = Johansen([][]float64{a, b}, 0, regression.SpecDrift)
	assert.Error(t, err, "lag below 1")

	_, err = Johansen([][]float64{a[:25], b[:25]}, 10, regression.SpecDrift)
	assert.Error(t, err, "too few effective observations")

	_, err = Johansen([][]float64{a, make([]float64, 100)}, 1, regression.SpecDrift)
	assert.Error(t, err, "constant series")
}

func TestJohansenText(t *testing.T) {
	a, b := cointegratedPair(200, 91)
	res, err := Johansen([][]float64{a, b}, 2, regression.SpecDrift)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Interpret(0.05))
	assert.NotEmpty(t, res.Evaluate())
	assert.NotEmpty(t, res.String())
}
