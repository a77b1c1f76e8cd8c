// Package regression provides the ordinary-least-squares core and the
// deterministic-term specification shared by the unit-root,
// cointegration and causality tests.
package regression

import "fmt"

// Deterministic selects which deterministic terms enter a test's
// regression design matrix and which critical-value table applies.
type Deterministic int

const (
	// SpecNone includes no deterministic terms.
	SpecNone Deterministic = iota
	// SpecDrift includes an intercept only.
	SpecDrift
	// SpecTrend includes an intercept and a linear trend.
	SpecTrend
)

// ParseSpecification converts the textual specification used at the
// call boundary ("none", "drift"/"const", "trend") into a
// Deterministic. Unrecognized values fail validation.
func ParseSpecification(s string) (Deterministic, error) {
	switch s {
	case "none":
		return SpecNone, nil
	case "drift", "const":
		return SpecDrift, nil
	case "trend":
		return SpecTrend, nil
	}
	return 0, fmt.Errorf("unknown specification %q: want none, drift or trend", s)
}

func (d Deterministic) String() string {
	switch d {
	case SpecNone:
		return "none"
	case SpecDrift:
		return "drift"
	case SpecTrend:
		return "trend"
	}
	return fmt.Sprintf("Deterministic(%d)", int(d))
}

// Valid reports whether d is one of the three defined specifications.
func (d Deterministic) Valid() bool {
	return d == SpecNone || d == SpecDrift || d == SpecTrend
}

// Columns returns the number of deterministic columns d contributes to
// a design matrix.
func (d Deterministic) Columns() int {
	switch d {
	case SpecDrift:
		return 1
	case SpecTrend:
		return 2
	}
	return 0
}
