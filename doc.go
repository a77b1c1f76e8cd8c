// Package tsdiag provides classical time-series diagnostic tests.
//
// The library covers the standard battery an analyst runs before fitting
// or interpreting a time-series model: unit-root tests, serial-correlation
// tests, a randomness test, a cointegration-rank test, and linear and
// nonlinear causality tests. Every test is a stateless function that
// validates its input, computes the statistic, and returns an immutable
// result record with human-readable interpretation methods.
//
// # Packages
//
//   - timeseries: numeric-sequence validation and basic helpers
//   - regression: the shared OLS core and the deterministic-term specification
//   - stats: Durbin-Watson, Ljung-Box portmanteau, Turning Point
//   - unitroot: Dickey-Fuller family (Df, Adf, AdfGls), Kpss, and a
//     consensus aggregator
//   - cointegration: Johansen trace test
//   - causality: Granger F-test (with residual bootstrap) and
//     Convergent Cross Mapping
//
// # Quick start
//
// Test a series for a unit root:
//
//	res, err := unitroot.Adf(values, -1, regression.SpecDrift)
//	if err != nil {
//	    // invalid input: too short, constant, NaN, ...
//	}
//	fmt.Println(res.Interpret(0.05))
//
// Run the full unit-root battery with a consensus verdict:
//
//	agg, _ := unitroot.UnitRoot(values, regression.SpecDrift, 0.05)
//	fmt.Println(agg.Evaluate())
//
// All tests are synchronous pure computations over caller-owned
// slices; inputs are never mutated and results hold no references back
// to them, so concurrent calls with independent inputs are safe
// without locking. The Granger bootstrap fans replications out across
// a worker pool internally but is still deterministic for a fixed
// seed.
package tsdiag
