package regression

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestParseSpecification(t *testing.T) {
	tests := []struct {
		in      string
		want    Deterministic
		wantErr bool
	}{
		{"none", SpecNone, false},
		{"drift", SpecDrift, false},
		{"const", SpecDrift, false},
		{"trend", SpecTrend, false},
		{"quadratic", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseSpecification(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDeterministicColumns(t *testing.T) {
	assert.Equal(t, 0, SpecNone.Columns())
	assert.Equal(t, 1, SpecDrift.Columns())
	assert.Equal(t, 2, SpecTrend.Columns())
	assert.False(t, Deterministic(17).Valid())
}

func TestOLSExactFit(t *testing.T) {
	// y = 1 + 2x with no noise: coefficients exact, RSS zero.
	n := 20
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := float64(i)
		x.Set(i, 0, 1)
		x.Set(i, 1, xi)
		y[i] = 1 + 2*xi
	}
	fit, err := OLS(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fit.Coefficients[0], 1e-8)
	assert.InDelta(t, 2.0, fit.Coefficients[1], 1e-8)
	assert.InDelta(t, 0.0, fit.RSS, 1e-8)
	assert.Equal(t, n-2, fit.DF)
	for _, r := range fit.Residuals {
		assert.InDelta(t, 0.0, r, 1e-8)
	}
}

func TestOLSNoisyFit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 500
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := rng.NormFloat64()
		x.Set(i, 0, 1)
		x.Set(i, 1, xi)
		y[i] = 3 - 1.5*xi + 0.1*rng.NormFloat64()
	}
	fit, err := OLS(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, fit.Coefficients[0], 0.05)
	assert.InDelta(t, -1.5, fit.Coefficients[1], 0.05)
	assert.Greater(t, fit.StdErrors[1], 0.0)
	assert.Greater(t, fit.RSS, 0.0)
}

func TestOLSRankDeficient(t *testing.T) {
	// Duplicate columns make X'X singular.
	n := 15
	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x.Set(i, 0, float64(i))
		x.Set(i, 1, float64(i))
		y[i] = float64(i)
	}
	_, err := OLS(x, y)
	assert.Error(t, err)
}

func TestOLSShapeErrors(t *testing.T) {
	x := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	_, err := OLS(x, []float64{1, 2, 3})
	assert.Error(t, err, "n == k leaves no residual degrees of freedom")

	x2 := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	_, err = OLS(x2, []float64{1, 2})
	assert.Error(t, err, "response length mismatch")
}

func TestResidualsNilDesign(t *testing.T) {
	y := []float64{1, 2, 3}
	r, err := Residuals(nil, y)
	require.NoError(t, err)
	assert.Equal(t, y, r)
	r[0] = 99
	assert.Equal(t, 1.0, y[0], "residuals must be a copy")
}
