package core

// CrossFrame is the dense backing store for a treatment plan's
// cross-frame: one Matrix column per derived variable, laid out in the
// deterministic (origin_index, kind_priority, level_order) order the
// cross-fit driver computes up front. Every fit unit writes into a
// pre-allocated, disjoint column slice of this matrix, so concurrent
// writers never need a lock as long as they own distinct (col, row)
// ranges.
type CrossFrame struct {
	*Matrix
	Names []string
}

// NewCrossFrame allocates a zero-filled cross-frame with rows rows and one
// column per name, in order.
func NewCrossFrame(rows int, names []string) *CrossFrame {
	return &CrossFrame{Matrix: NewMatrix(rows, len(names)), Names: names}
}

// ColumnIndex returns the position of name in Names, or -1.
func (cf *CrossFrame) ColumnIndex(name string) int {
	for i, n := range cf.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// WriteColumn writes vals into column col at the given rows. vals and rows
// must be the same length; this is the disjoint-slice write every
// cross-fit unit performs.
func (cf *CrossFrame) WriteColumn(col int, rows []int, vals []float64) {
	for i, r := range rows {
		cf.Set(r, col, vals[i])
	}
}

// Column extracts column j as a plain slice (copy).
func (cf *CrossFrame) Column(j int) []float64 {
	out := make([]float64, cf.R)
	for i := 0; i < cf.R; i++ {
		out[i] = cf.At(i, j)
	}
	return out
}

// Row extracts row i as a plain slice (copy).
func (cf *CrossFrame) Row(i int) []float64 {
	out := make([]float64, cf.C)
	copy(out, cf.Data[i*cf.C:(i+1)*cf.C])
	return out
}
