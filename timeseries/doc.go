// Package timeseries provides the canonical numeric-sequence contract
// shared by every diagnostic test.
//
// A series is a plain []float64, conceptually indexed t=1..n. The
// package validates the contract every test relies on (non-nil, minimum
// length, no NaN/Inf entries, not constant) and offers the small
// helpers (differencing, moments, autocovariance-free utilities) the
// tests share.
//
// The Source interface is the collaborator contract of the external
// tabular data container: anything that can hand out a named column as
// a []float64 can feed this library.
package timeseries
