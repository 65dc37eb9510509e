package stats

// Collar is a fit/apply winsorizer for a single numeric column: the
// `do_collar`/`collar_prob` parameters need bounds computed once at fit
// time and reapplied unchanged at transform time, unlike ClipOutliers
// below which recomputes percentiles from whatever slice it's given.
type Collar struct {
	Lower, Upper float64
	fit          bool
}

// NewCollar returns an unfit collar (Apply becomes the identity).
func NewCollar() *Collar { return &Collar{} }

// Fit records the lower/upper percentile bounds from the training column.
// prob is the tail probability on each side (e.g. 0.01 clips at the 1st
// and 99th percentiles).
func (c *Collar) Fit(x []float64, prob float64) {
	c.Lower = Percentile(x, prob*100)
	c.Upper = Percentile(x, 100-prob*100)
	c.fit = true
}

// Apply clips values to the fitted bounds.
func (c *Collar) Apply(x []float64) []float64 {
	out := make([]float64, len(x))
	if !c.fit {
		copy(out, x)
		return out
	}
	for i, v := range x {
		switch {
		case v < c.Lower:
			out[i] = c.Lower
		case v > c.Upper:
			out[i] = c.Upper
		default:
			out[i] = v
		}
	}
	return out
}

// ClipOutliers clips values in each column to the given lower and upper percentiles.
func ClipOutliers(X [][]float64, lower, upper float64) [][]float64 {
	rows, cols := len(X), len(X[0])
	out := make([][]float64, rows)
	lows := make([]float64, cols)
	highs := make([]float64, cols)
	for j := 0; j < cols; j++ {
		col := make([]float64, rows)
		for i := 0; i < rows; i++ {
			col[i] = X[i][j]
		}
		lows[j] = Percentile(col, lower)
		highs[j] = Percentile(col, upper)
	}
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			v := X[i][j]
			if v < lows[j] {
				out[i][j] = lows[j]
			} else if v > highs[j] {
				out[i][j] = highs[j]
			} else {
				out[i][j] = v
			}
		}
	}
	return out
}
