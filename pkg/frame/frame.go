// Package frame implements the rectangular in-memory dataset abstraction
// the treatment-plan core is built on: named columns, either numeric or
// categorical, with an explicit per-cell missing predicate instead of
// string sentinels ("", "NA", "NaN").
//
// This supersedes the ad hoc [][]string / [][]float64 handling
// (pkg/dataprep, pkg/core) with a typed column store so encoders never have
// to re-detect numeric-vs-categorical or re-parse missing sentinels.
package frame

import "math"

// Kind distinguishes the two column shapes a treatment plan recognizes.
type Kind int

const (
	KindNumeric Kind = iota
	KindCategorical
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "categorical"
}

// Column is a single named vector of length n. Exactly one of Nums/Cats is
// populated, selected by Kind. Missing marks, per row, whether the cell is
// the origin column's missing sentinel (NaN/Inf for numeric, the missing
// category for categorical).
type Column struct {
	Name    string
	Kind    Kind
	Nums    []float64
	Cats    []string
	Missing []bool
}

// NewNumericColumn builds a numeric column, computing Missing from
// NaN/Inf values in vals.
func NewNumericColumn(name string, vals []float64) Column {
	missing := make([]bool, len(vals))
	for i, v := range vals {
		missing[i] = IsMissingNumeric(v)
	}
	return Column{Name: name, Kind: KindNumeric, Nums: vals, Missing: missing}
}

// NewCategoricalColumn builds a categorical column. missingSentinel
// identifies which raw values are treated as the missing level (commonly
// "" or "NA"); those cells get Missing[i]=true and Cats[i] is left as-is
// (encoders look at Missing, not Cats, to decide).
func NewCategoricalColumn(name string, vals []string, missingSentinel string) Column {
	missing := make([]bool, len(vals))
	for i, v := range vals {
		missing[i] = v == missingSentinel
	}
	return Column{Name: name, Kind: KindCategorical, Cats: vals, Missing: missing}
}

// IsMissingNumeric is the numeric missing predicate:
// missing, NaN, or infinite.
func IsMissingNumeric(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Len returns the column's row count.
func (c Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Nums)
	}
	return len(c.Cats)
}

// AllMissing reports whether every cell of the column is missing.
func (c Column) AllMissing() bool {
	for _, m := range c.Missing {
		if !m {
			return false
		}
	}
	return true
}

// AnyMissing reports whether at least one cell of the column is missing.
func (c Column) AnyMissing() bool {
	for _, m := range c.Missing {
		if m {
			return true
		}
	}
	return false
}

// Subset returns a copy of the column restricted to rows.
func (c Column) Subset(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	out.Missing = make([]bool, len(rows))
	for i, r := range rows {
		out.Missing[i] = c.Missing[r]
	}
	if c.Kind == KindNumeric {
		out.Nums = make([]float64, len(rows))
		for i, r := range rows {
			out.Nums[i] = c.Nums[r]
		}
	} else {
		out.Cats = make([]string, len(rows))
		for i, r := range rows {
			out.Cats[i] = c.Cats[r]
		}
	}
	return out
}

// Frame is an ordered finite sequence of named columns, all of the same
// row count.
type Frame struct {
	Columns []Column
	n       int
}

// New builds a Frame from columns, validating equal length.
func New(columns ...Column) (*Frame, error) {
	n := 0
	if len(columns) > 0 {
		n = columns[0].Len()
	}
	for _, c := range columns {
		if c.Len() != n {
			return nil, errColumnLengthMismatch
		}
	}
	return &Frame{Columns: columns, n: n}, nil
}

// RowCount returns the number of rows.
func (f *Frame) RowCount() int { return f.n }

// Column returns the named column and whether it exists.
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumn reports whether name is present.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.Column(name)
	return ok
}

// ColumnNames returns the ordered column names.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}

// AllRows returns {0, ..., n-1}.
func (f *Frame) AllRows() []int {
	rows := make([]int, f.n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
