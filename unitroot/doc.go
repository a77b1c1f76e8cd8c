// Package unitroot provides the Dickey-Fuller family of unit-root
// tests (Df, Adf, AdfGls), the Kpss stationarity test, and a consensus
// aggregator running the whole battery.
//
// All tests share the same contract: a plain []float64 series, a
// deterministic-term specification from the regression package, and an
// optional lag. The unit-root tests hold the null of a unit root
// against the alternative of stationarity; Kpss holds the opposite
// null.
//
//	res, _ := unitroot.Adf(values, -1, regression.SpecDrift)
//	fmt.Println(res.Interpret(0.05))
//
//	agg, _ := unitroot.UnitRoot(values, regression.SpecDrift, 0.05)
//	fmt.Println(agg.Evaluate())
//
// Critical values come from the standard finite-sample tables
// (Fuller for Df/Adf, Elliott-Rothenberg-Stock for AdfGls,
// Kwiatkowski et al. for Kpss), linearly interpolated between
// tabulated sample sizes. Reported p-values are approximations
// interpolated from those same tables; decisions should rest on the
// critical values.
package unitroot
