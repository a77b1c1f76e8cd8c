// Package cointegration provides the Johansen trace test for the
// cointegration rank of a small system of non-stationary series.
//
//	res, _ := cointegration.Johansen([][]float64{a, b}, 2, regression.SpecDrift)
//	fmt.Println(res.Evaluate()) // trace statistics vs critical values per rank
//
// The test reduces the system to the canonical-correlation moment
// matrices S00, S01, S10, S11 of differenced and lagged-level blocks,
// solves the eigenproblem of S11^-1 S10 S00^-1 S01, and compares the
// trace statistics -T sum ln(1-lambda) against the Osterwald-Lenum
// critical values for each candidate rank.
package cointegration
