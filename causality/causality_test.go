package causality

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drivenPair builds y driven by lagged x, with x autonomous.
func drivenPair(n int, seed int64) ([]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	x := make([]float64, n)
	y := make([]float64, n)
	for t := 1; t < n; t++ {
		x[t] = 0.3*x[t-1] + rng.NormFloat64()
		y[t] = 0.2*y[t-1] + 0.8*x[t-1] + 0.3*rng.NormFloat64()
	}
	return x, y
}

func TestGrangerDetectsCausality(t *testing.T) {
	x, y := drivenPair(300, 101)
	res, err := Granger(x, y, 2)
	require.NoError(t, err)

	assert.Less(t, res.PValue, 0.01, "strongly driven y must reject non-causality")
	assert.Greater(t, res.FStatistic, 0.0)
	assert.Equal(t, 2, res.DF1)
	assert.Equal(t, res.EffectiveN-2*2-1, res.DF2)
	assert.Equal(t, 298, res.EffectiveN)
}

func TestGrangerRSSInvariant(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		x, y := drivenPair(150, seed)
		res, err := Granger(x, y, 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.RSSUnrestricted, res.RSSRestricted,
			"more regressors cannot worsen in-sample fit")
		assert.GreaterOrEqual(t, res.FStatistic, 0.0)
		assert.GreaterOrEqual(t, res.PValue, 0.0)
		assert.LessOrEqual(t, res.PValue, 1.0)

		// The reverse direction still satisfies every invariant.
		rev, err := Granger(y, x, 3)
		require.NoError(t, err)
		assert.LessOrEqual(t, rev.RSSUnrestricted, rev.RSSRestricted)
		assert.GreaterOrEqual(t, rev.FStatistic, 0.0)
	}
}

func TestGrangerAutoLag(t *testing.T) {
	x, y := drivenPair(300, 102)
	res, err := Granger(x, y, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Lag, "auto lag floor(cbrt(299)) = 6")
}

func TestGrangerValidation(t *testing.T) {
	x, y := drivenPair(100, 103)
	_, err := Granger(x[:50], y, 2)
	assert.Error(t, err, "mismatched lengths")
	_, err = Granger(make([]float64, 100), y, 2)
	assert.Error(t, err, "constant series")
	_, err = Granger(x[:12], y[:12], 5)
	assert.Error(t, err, "df2 must stay positive")
}

func TestGrangerIdempotent(t *testing.T) {
	x, y := drivenPair(120, 104)
	a, err := Granger(x, y, 2)
	require.NoError(t, err)
	b, err := Granger(x, y, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGrangerBootstrap(t *testing.T) {
	x, y := drivenPair(200, 105)
	opts := BootstrapOptions{Replications: 199, Seed: 42}
	res, err := GrangerBootstrap(x, y, 2, opts)
	require.NoError(t, err)

	assert.True(t, res.Significant, "strong causality must survive the bootstrap")
	assert.Greater(t, res.BootPValue, 0.0)
	assert.LessOrEqual(t, res.BootPValue, 1.0)
	assert.Equal(t, 199, res.Replications)

	// Fixed seed makes the bootstrap reproducible.
	again, err := GrangerBootstrap(x, y, 2, opts)
	require.NoError(t, err)
	assert.Equal(t, res.BootPValue, again.BootPValue)
}

// coupledLogistic is the standard CCM demonstration system: x drives y
// strongly, y feeds back into x weakly.
func coupledLogistic(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	x[0], y[0] = 0.4, 0.2
	for t := 1; t < n; t++ {
		x[t] = x[t-1] * (3.8 - 3.8*x[t-1] - 0.02*y[t-1])
		y[t] = y[t-1] * (3.5 - 3.5*y[t-1] - 0.1*x[t-1])
	}
	return x, y
}

func TestCcmDetectsCoupling(t *testing.T) {
	x, y := coupledLogistic(400)
	sizes := []int{20, 50, 100, 200, 350}
	res, err := Ccm(x, y, 2, 1, sizes)
	require.NoError(t, err)

	require.Len(t, res.SkillXtoY, len(sizes))
	require.Len(t, res.SkillYtoX, len(sizes))
	for i := range sizes {
		assert.GreaterOrEqual(t, res.SkillXtoY[i], -1.0)
		assert.LessOrEqual(t, res.SkillXtoY[i], 1.0)
		assert.GreaterOrEqual(t, res.SkillYtoX[i], -1.0)
		assert.LessOrEqual(t, res.SkillYtoX[i], 1.0)
	}

	last := len(sizes) - 1
	assert.Greater(t, res.SkillYtoX[last], res.SkillYtoX[0],
		"skill of recovering the driver must grow with library size")
	assert.Greater(t, res.SkillYtoX[last], 0.5,
		"x drives y, so x must be recoverable from y's manifold")
}

func TestCcmDeterministic(t *testing.T) {
	x, y := coupledLogistic(200)
	sizes := []int{30, 80, 150}
	a, err := Ccm(x, y, 3, 1, sizes)
	require.NoError(t, err)
	b, err := Ccm(x, y, 3, 1, sizes)
	require.NoError(t, err)
	assert.Equal(t, a, b, "tie-breaking by index keeps repeated runs bit-identical")
}

func TestCcmValidation(t *testing.T) {
	x, y := coupledLogistic(100)

	_, err := Ccm(x[:50], y, 2, 1, []int{20})
	assert.Error(t, err, "mismatched lengths")
	_, err = Ccm(x, y, 0, 1, []int{20})
	assert.Error(t, err, "embedding dimension below 1")
	_, err = Ccm(x, y, 2, 0, []int{20})
	assert.Error(t, err, "delay below 1")
	_, err = Ccm(x, y, 2, 1, nil)
	assert.Error(t, err, "no library sizes")
	_, err = Ccm(x, y, 2, 1, []int{2})
	assert.Error(t, err, "library smaller than E+1")
	_, err = Ccm(x, y, 2, 1, []int{100})
	assert.Error(t, err, "library beyond the embedding point count")
	_, err = Ccm(make([]float64, 100), y, 2, 1, []int{20})
	assert.Error(t, err, "constant series")
}

func TestCcmText(t *testing.T) {
	x, y := coupledLogistic(250)
	res, err := Ccm(x, y, 2, 1, []int{30, 100, 200})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Interpret(0.05))
	assert.NotEmpty(t, res.Evaluate())
	assert.NotEmpty(t, res.String())
}
