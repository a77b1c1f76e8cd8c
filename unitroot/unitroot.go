package unitroot

import (
	"fmt"
	"strings"

	"github.com/d-setiawan/tsdiag/regression"
	"github.com/d-setiawan/tsdiag/timeseries"
)

// Verdict is the consensus of the unit-root battery.
type Verdict int

const (
	// Inconclusive means the tests disagree or none is decisive.
	Inconclusive Verdict = iota
	// Stationary means the unit-root tests reject and Kpss does not.
	Stationary
	// NonStationary means Kpss rejects and the unit-root tests do not.
	NonStationary
)

func (v Verdict) String() string {
	switch v {
	case Stationary:
		return "stationary"
	case NonStationary:
		return "unit root"
	}
	return "inconclusive"
}

// UnitRootResult holds the full battery: three unit-root tests (null:
// unit root) and one stationarity test (null: stationary), plus the
// consensus verdict at the requested level.
type UnitRootResult struct {
	Df     *DfResult
	Adf    *AdfResult
	AdfGls *AdfGlsResult
	Kpss   *KpssResult

	// Rejections counts how many of Df/Adf/AdfGls reject their
	// unit-root null at Alpha.
	Rejections int
	// KpssRejects reports whether Kpss rejects its stationarity null
	// at Alpha.
	KpssRejects bool

	Alpha         float64
	Specification regression.Deterministic
	Verdict       Verdict
}

// UnitRoot runs Df, Adf (auto lag), AdfGls (auto lag) and Kpss over
// the same series and specification and forms a consensus: a majority
// of unit-root rejections with a quiet Kpss reads as stationary, at
// most one unit-root rejection with a loud Kpss reads as a unit root,
// and anything mixed is reported as inconclusive rather than forced.
//
// AdfGls and Kpss have no "none" variant; with spec none they run
// demeaned.
func UnitRoot(series []float64, spec regression.Deterministic, alpha float64) (*UnitRootResult, error) {
	if !spec.Valid() {
		return nil, fmt.Errorf("invalid specification %v", spec)
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %v", alpha)
	}
	if err := timeseries.Validate(series, 15); err != nil {
		return nil, err
	}

	df, err := Df(series, spec)
	if err != nil {
		return nil, fmt.Errorf("df: %v", err)
	}
	adf, err := Adf(series, -1, spec)
	if err != nil {
		return nil, fmt.Errorf("adf: %v", err)
	}
	glsSpec := spec
	if glsSpec == regression.SpecNone {
		glsSpec = regression.SpecDrift
	}
	gls, err := AdfGls(series, -1, glsSpec)
	if err != nil {
		return nil, fmt.Errorf("adf-gls: %v", err)
	}
	kpss, err := Kpss(series, 0, spec)
	if err != nil {
		return nil, fmt.Errorf("kpss: %v", err)
	}

	rejections := 0
	if v, _ := df.CriticalValues.AtLevel(alpha); df.Statistic < v {
		rejections++
	}
	if v, _ := adf.CriticalValues.AtLevel(alpha); adf.Statistic < v {
		rejections++
	}
	if v, _ := gls.CriticalValues.AtLevel(alpha); gls.Statistic < v {
		rejections++
	}
	kpssValue, _ := kpss.CriticalValues.AtLevel(alpha)
	kpssRejects := kpss.Statistic > kpssValue

	return &UnitRootResult{
		Df:            df,
		Adf:           adf,
		AdfGls:        gls,
		Kpss:          kpss,
		Rejections:    rejections,
		KpssRejects:   kpssRejects,
		Alpha:         alpha,
		Specification: spec,
		Verdict:       consensus(rejections, kpssRejects),
	}, nil
}

// consensus maps the rejection counts onto a verdict. Two or three
// unit-root rejections against a quiet Kpss read as stationary; zero
// or one against a rejecting Kpss read as a unit root; any other
// combination is mixed evidence.
func consensus(rejections int, kpssRejects bool) Verdict {
	switch {
	case rejections >= 2 && !kpssRejects:
		return Stationary
	case rejections <= 1 && kpssRejects:
		return NonStationary
	}
	return Inconclusive
}

// Interpret describes the consensus; alpha is fixed at construction,
// so the argument is echoed only when it differs.
func (r *UnitRootResult) Interpret(alpha float64) string {
	note := ""
	if alpha != r.Alpha {
		note = fmt.Sprintf(" (battery was run at alpha = %.2f)", r.Alpha)
	}
	switch r.Verdict {
	case Stationary:
		return fmt.Sprintf("consensus: stationary -- %d of 3 unit-root tests reject and KPSS does not%s", r.Rejections, note)
	case NonStationary:
		return fmt.Sprintf("consensus: unit root -- KPSS rejects stationarity and only %d of 3 unit-root tests disagree%s", r.Rejections, note)
	}
	return fmt.Sprintf("consensus: inconclusive -- %d of 3 unit-root tests reject, KPSS rejects: %v%s", r.Rejections, r.KpssRejects, note)
}

// Evaluate summarizes the battery, one line per test plus the verdict.
func (r *UnitRootResult) Evaluate() string {
	var b strings.Builder
	b.WriteString(r.Df.Evaluate())
	b.WriteString("\n")
	b.WriteString(r.Adf.Evaluate())
	b.WriteString("\n")
	b.WriteString(r.AdfGls.Evaluate())
	b.WriteString("\n")
	b.WriteString(r.Kpss.Evaluate())
	b.WriteString("\n")
	b.WriteString(r.Interpret(r.Alpha))
	return b.String()
}

func (r *UnitRootResult) String() string {
	return fmt.Sprintf("Unit-root battery: spec = %s, alpha = %.2f, verdict = %s",
		r.Specification, r.Alpha, r.Verdict)
}
