package timeseries

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Source is the contract consumed from the external tabular data
// container: it extracts a named column as a plain numeric sequence.
// The container, not this library, is responsible for type coercion.
type Source interface {
	NumericColumn(name string) ([]float64, error)
}

// Validate checks the numeric-sequence contract shared by all tests:
// the series must be non-nil, contain at least minLen observations,
// hold only finite values, and must not be constant.
func Validate(xs []float64, minLen int) error {
	if xs == nil {
		return fmt.Errorf("series is nil")
	}
	if len(xs) < minLen {
		return fmt.Errorf("series too short: need at least %d observations, got %d", minLen, len(xs))
	}
	for i, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("series contains a non-finite value at index %d", i)
		}
	}
	if IsConstant(xs) {
		return fmt.Errorf("series is constant (zero variance)")
	}
	return nil
}

// IsConstant reports whether every value in xs equals the first.
func IsConstant(xs []float64) bool {
	if len(xs) == 0 {
		return true
	}
	for _, v := range xs[1:] {
		if v != xs[0] {
			return false
		}
	}
	return true
}

// Diff returns the first differences xs[t] - xs[t-1]; the result has
// len(xs)-1 entries.
func Diff(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	d := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		d[i-1] = xs[i] - xs[i-1]
	}
	return d
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// Variance returns the unbiased sample variance of xs.
func Variance(xs []float64) float64 {
	return stat.Variance(xs, nil)
}

// Demean returns a copy of xs with the sample mean removed.
func Demean(xs []float64) []float64 {
	m := Mean(xs)
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = v - m
	}
	return out
}
