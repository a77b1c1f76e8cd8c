// Package causality provides a linear Granger causality F-test (with
// an optional residual-bootstrap p-value) and nonlinear Convergent
// Cross Mapping.
//
// Granger compares nested autoregressions of y with and without lags
// of x:
//
//	res, _ := causality.Granger(x, y, 4)
//	if res.PValue < 0.05 {
//	    // past x improves the prediction of y
//	}
//
// Ccm embeds each series in delay coordinates and measures how well
// the other series can be reconstructed from nearest neighbors on that
// manifold; skill that rises with library size is evidence of causal
// influence:
//
//	res, _ := causality.Ccm(x, y, 3, 1, []int{20, 50, 100, 200})
//	fmt.Println(res.Evaluate())
package causality
