package unitroot

import "github.com/d-setiawan/tsdiag/regression"

// CriticalValues is one row of a critical-value table: the 1%, 5% and
// 10% thresholds for a statistic. For the lower-tail unit-root tests
// the row is strictly increasing (1% most negative); for the
// upper-tail Kpss test it is strictly decreasing.
type CriticalValues struct {
	OnePercent  float64
	FivePercent float64
	TenPercent  float64
}

// AtLevel returns the critical value for the tabulated significance
// level nearest to alpha, together with the level actually used.
func (cv CriticalValues) AtLevel(alpha float64) (float64, float64) {
	levels := []struct {
		alpha float64
		value float64
	}{
		{0.01, cv.OnePercent},
		{0.05, cv.FivePercent},
		{0.10, cv.TenPercent},
	}
	best := levels[0]
	for _, l := range levels[1:] {
		if abs(l.alpha-alpha) < abs(best.alpha-alpha) {
			best = l
		}
	}
	return best.value, best.alpha
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// cvTable maps finite sample sizes to critical-value rows; rows
// carries one extra final entry, the asymptotic row. Lookups
// interpolate linearly between adjacent finite sizes and snap to the
// asymptotic row above the largest tabulated size.
type cvTable struct {
	sizes []float64
	rows  []CriticalValues
}

func (t cvTable) lookup(n int) CriticalValues {
	nf := float64(n)
	if nf <= t.sizes[0] {
		return t.rows[0]
	}
	last := len(t.sizes) - 1
	if nf > t.sizes[last] {
		return t.rows[len(t.rows)-1]
	}
	for i := 1; i <= last; i++ {
		if nf <= t.sizes[i] {
			w := (nf - t.sizes[i-1]) / (t.sizes[i] - t.sizes[i-1])
			lo, hi := t.rows[i-1], t.rows[i]
			return CriticalValues{
				OnePercent:  lo.OnePercent + w*(hi.OnePercent-lo.OnePercent),
				FivePercent: lo.FivePercent + w*(hi.FivePercent-lo.FivePercent),
				TenPercent:  lo.TenPercent + w*(hi.TenPercent-lo.TenPercent),
			}
		}
	}
	return t.rows[len(t.rows)-1]
}

// Dickey-Fuller tau tables, Fuller (1976). One table per
// specification; the final row is asymptotic.
var (
	dfNoneTable = cvTable{
		sizes: []float64{25, 50, 100, 250, 500},
		rows: []CriticalValues{
			{-2.66, -1.95, -1.60},
			{-2.62, -1.95, -1.61},
			{-2.60, -1.95, -1.61},
			{-2.58, -1.95, -1.62},
			{-2.58, -1.95, -1.62},
			{-2.58, -1.95, -1.62},
		},
	}
	dfDriftTable = cvTable{
		sizes: []float64{25, 50, 100, 250, 500},
		rows: []CriticalValues{
			{-3.75, -3.00, -2.63},
			{-3.58, -2.93, -2.60},
			{-3.51, -2.89, -2.58},
			{-3.46, -2.88, -2.57},
			{-3.44, -2.87, -2.57},
			{-3.43, -2.86, -2.57},
		},
	}
	dfTrendTable = cvTable{
		sizes: []float64{25, 50, 100, 250, 500},
		rows: []CriticalValues{
			{-4.38, -3.60, -3.24},
			{-4.15, -3.50, -3.18},
			{-4.04, -3.45, -3.15},
			{-3.99, -3.43, -3.13},
			{-3.98, -3.42, -3.13},
			{-3.96, -3.41, -3.12},
		},
	}
)

// GLS-detrended tables, Elliott-Rothenberg-Stock (1996). The demeaned
// variant follows the no-constant Dickey-Fuller distribution; the
// detrended variant is ERS Table 1.
var (
	glsDriftTable = cvTable{
		sizes: []float64{50, 100, 200},
		rows: []CriticalValues{
			{-2.62, -1.95, -1.61},
			{-2.60, -1.95, -1.61},
			{-2.58, -1.95, -1.62},
			{-2.58, -1.95, -1.62},
		},
	}
	glsTrendTable = cvTable{
		sizes: []float64{50, 100, 200},
		rows: []CriticalValues{
			{-3.77, -3.19, -2.89},
			{-3.58, -3.03, -2.74},
			{-3.46, -2.93, -2.64},
			{-3.48, -2.89, -2.57},
		},
	}
)

// Kpss critical values (upper tail), Kwiatkowski et al. (1992).
var (
	kpssLevelRow = CriticalValues{OnePercent: 0.739, FivePercent: 0.463, TenPercent: 0.347}
	kpssTrendRow = CriticalValues{OnePercent: 0.216, FivePercent: 0.146, TenPercent: 0.119}
)

func dickeyFullerCritical(spec regression.Deterministic, n int) CriticalValues {
	switch spec {
	case regression.SpecDrift:
		return dfDriftTable.lookup(n)
	case regression.SpecTrend:
		return dfTrendTable.lookup(n)
	}
	return dfNoneTable.lookup(n)
}

func glsCritical(spec regression.Deterministic, n int) CriticalValues {
	if spec == regression.SpecTrend {
		return glsTrendTable.lookup(n)
	}
	return glsDriftTable.lookup(n)
}

// approxLowerTailPValue interpolates an approximate p-value for a
// lower-tail statistic from its critical-value anchors, in the manner
// of MacKinnon response-surface shortcuts. Clamped to [0.001, 0.99].
func approxLowerTailPValue(stat float64, cv CriticalValues) float64 {
	anchors := []struct{ s, p float64 }{
		{cv.OnePercent - 1.0, 0.001},
		{cv.OnePercent, 0.01},
		{cv.FivePercent, 0.05},
		{cv.TenPercent, 0.10},
		{cv.TenPercent + 1.5, 0.50},
		{cv.TenPercent + 3.5, 0.99},
	}
	if stat <= anchors[0].s {
		return 0.001
	}
	for i := 1; i < len(anchors); i++ {
		if stat <= anchors[i].s {
			lo, hi := anchors[i-1], anchors[i]
			w := (stat - lo.s) / (hi.s - lo.s)
			return lo.p + w*(hi.p-lo.p)
		}
	}
	return 0.99
}

// approxUpperTailPValue is the Kpss mirror of approxLowerTailPValue.
func approxUpperTailPValue(stat float64, cv CriticalValues) float64 {
	anchors := []struct{ s, p float64 }{
		{0, 0.99},
		{cv.TenPercent / 2, 0.50},
		{cv.TenPercent, 0.10},
		{cv.FivePercent, 0.05},
		{cv.OnePercent, 0.01},
		{cv.OnePercent * 2, 0.001},
	}
	if stat <= anchors[0].s {
		return 0.99
	}
	for i := 1; i < len(anchors); i++ {
		if stat <= anchors[i].s {
			lo, hi := anchors[i-1], anchors[i]
			w := (stat - lo.s) / (hi.s - lo.s)
			return lo.p + w*(hi.p-lo.p)
		}
	}
	return 0.001
}
