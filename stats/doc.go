// Package stats provides serial-correlation and randomness diagnostics
// that operate directly on a residual or raw sequence.
//
// # Serial correlation
//
// Test residuals for first-order autocorrelation:
//
//	dw, _ := stats.DurbinWatson(residuals, stats.AlternativeTwoSided)
//	fmt.Println(dw.Interpret(0.05)) // statistic in [0,4], 2 = none
//
// Test jointly across several lags:
//
//	lb, _ := stats.LjungBox(residuals, 10, 0)
//	if lb.PValue < 0.05 {
//	    // significant autocorrelation up to lag 10
//	}
//
// # Randomness
//
// Count local extrema against the i.i.d. expectation:
//
//	tp, _ := stats.TurningPoint(values)
//	fmt.Println(tp.Evaluate())
package stats
