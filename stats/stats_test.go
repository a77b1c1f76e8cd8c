package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ar1(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	for i := 1; i < n; i++ {
		xs[i] = phi*xs[i-1] + rng.NormFloat64()
	}
	return xs
}

func TestACF(t *testing.T) {
	xs := ar1(200, 0.8, 1)
	acf, err := ACF(xs, 10)
	require.NoError(t, err)
	require.Len(t, acf, 11)

	assert.InDelta(t, 1.0, acf[0], 1e-12)
	for k, v := range acf {
		assert.GreaterOrEqual(t, v, -1.0, "lag %d", k)
		assert.LessOrEqual(t, v, 1.0, "lag %d", k)
	}
	// Strong positive persistence shows up at lag 1.
	assert.Greater(t, acf[1], 0.5)
}

func TestACFErrors(t *testing.T) {
	_, err := ACF([]float64{1, 2, 3}, -1)
	assert.Error(t, err)
	_, err = ACF([]float64{5, 5, 5, 5}, 2)
	assert.Error(t, err)
	_, err = ACF([]float64{1, 2, 3}, 3)
	assert.Error(t, err, "maxLag must stay below the sample size")
}

func TestDurbinWatsonKnownValue(t *testing.T) {
	// Numerator (2-1)^2 + (3-2)^2 = 2, denominator 1+4+9 = 14.
	res, err := DurbinWatson([]float64{1, 2, 3}, AlternativeTwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/14.0, res.Statistic, 1e-12)
	assert.InDelta(t, 1-res.Statistic/2, res.Rho, 1e-12)
	assert.Equal(t, 3, res.N)
}

func TestDurbinWatsonRange(t *testing.T) {
	res, err := DurbinWatson(ar1(300, 0.0, 2), AlternativeTwoSided)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Statistic, 0.0)
	assert.LessOrEqual(t, res.Statistic, 4.0)

	// Positively autocorrelated residuals push DW below 2.
	pos, err := DurbinWatson(ar1(300, 0.9, 3), AlternativePositive)
	require.NoError(t, err)
	assert.Less(t, pos.Statistic, 1.5)
}

func TestDurbinWatsonValidation(t *testing.T) {
	_, err := DurbinWatson([]float64{1, 2, 3}, "sideways")
	assert.Error(t, err)
	_, err = DurbinWatson([]float64{4, 4, 4}, AlternativeTwoSided)
	assert.Error(t, err)
	_, err = DurbinWatson(nil, AlternativeTwoSided)
	assert.Error(t, err)
}

func TestLjungBoxAutocorrelated(t *testing.T) {
	res, err := LjungBox(ar1(300, 0.8, 4), 10, 0)
	require.NoError(t, err)
	assert.Greater(t, res.Statistic, 0.0)
	assert.Less(t, res.PValue, 0.01, "strong AR(1) must reject white noise")
	assert.Equal(t, 10, res.DF)
}

func TestLjungBoxPValueBounds(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		res, err := LjungBox(ar1(100, 0.0, seed), 0, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.PValue, 0.0)
		assert.LessOrEqual(t, res.PValue, 1.0)
		assert.Equal(t, 10, res.Lags, "auto lag is min(10, n/5)")
	}
}

func TestLjungBoxAutoLagSmallSample(t *testing.T) {
	res, err := LjungBox(ar1(30, 0.2, 6), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Lags)
}

func TestLjungBoxValidation(t *testing.T) {
	xs := ar1(50, 0.3, 7)
	_, err := LjungBox(xs, 5, 5)
	assert.Error(t, err, "fitdf must be below lags")
	_, err = LjungBox(xs, 5, -1)
	assert.Error(t, err)
	_, err = LjungBox(xs, 50, 0)
	assert.Error(t, err, "lags must be below n")
	_, err = LjungBox([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 3, 0)
	assert.Error(t, err, "constant series")
}

func TestTurningPointKnownCounts(t *testing.T) {
	res, err := TurningPoint([]float64{1, 3, 2, 4, 1, 5, 2})
	require.NoError(t, err)
	assert.Equal(t, 5, res.TurningPoints)
	assert.Equal(t, 3, res.Peaks)
	assert.Equal(t, 2, res.Troughs)
	assert.Equal(t, 5, res.PossibleTurningPoints)
}

func TestTurningPointNullMoments(t *testing.T) {
	xs := ar1(100, 0.0, 8)
	res, err := TurningPoint(xs)
	require.NoError(t, err)
	assert.InDelta(t, 2.0*98.0/3.0, res.Expected, 1e-9)
	assert.InDelta(t, (16.0*100.0-29.0)/90.0, res.Variance, 1e-9)
	assert.GreaterOrEqual(t, res.PValue, 0.0)
	assert.LessOrEqual(t, res.PValue, 1.0)
}

func TestTurningPointMonotonic(t *testing.T) {
	xs := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i)
	}
	res, err := TurningPoint(xs)
	require.NoError(t, err)
	assert.Equal(t, 0, res.TurningPoints)
	assert.Less(t, res.Statistic, 0.0)
	assert.Less(t, res.PValue, 0.01)
}

func TestTurningPointAlternating(t *testing.T) {
	xs := make([]float64, 40)
	for i := range xs {
		xs[i] = float64(i % 2)
	}
	res, err := TurningPoint(xs)
	require.NoError(t, err)
	assert.Equal(t, len(xs)-2, res.TurningPoints)
	assert.Greater(t, res.Statistic, 0.0)
	assert.Less(t, res.PValue, 0.01)
}

func TestTurningPointIdempotent(t *testing.T) {
	xs := ar1(80, 0.4, 9)
	a, err := TurningPoint(xs)
	require.NoError(t, err)
	b, err := TurningPoint(xs)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestInterpretText(t *testing.T) {
	res, err := TurningPoint([]float64{1, 3, 2, 4, 1, 5, 2})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Interpret(0.05))
	assert.NotEmpty(t, res.Evaluate())
	assert.NotEmpty(t, res.String())

	dw, err := DurbinWatson([]float64{1, 2, 3}, AlternativeNegative)
	require.NoError(t, err)
	assert.NotEmpty(t, dw.Interpret(0.05))
	assert.False(t, math.IsNaN(dw.Rho))
}
