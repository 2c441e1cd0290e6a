// Package table holds the workload x column result table and the
// operations that derive summary rows and columns from it.
package table

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/dreamstats/statserrors"
)

const (
	FileColumn  = "FILE"
	SuiteColumn = "SUITE"
	BestColumn  = "best"

	MeanRow    = "MEAN"
	GeomeanRow = "GEOMEAN"
	// suite geomean rows are named <suite>_GEOMEAN
	suiteGeomeanSuffix = "_" + GeomeanRow
)

// Row is one workload (or one synthetic summary row). A value column with no
// entry in Values is a missing cell.
type Row struct {
	File      string
	Suite     string
	Synthetic bool
	Values    map[string]float64
}

func newRow(file string) *Row {
	return &Row{File: file, Values: make(map[string]float64)}
}

// Get returns the cell in column col.
func (r *Row) Get(col string) (float64, bool) {
	v, ok := r.Values[col]
	return v, ok
}

func (r *Row) clone() *Row {
	c := &Row{File: r.File, Suite: r.Suite, Synthetic: r.Synthetic, Values: make(map[string]float64, len(r.Values))}
	for k, v := range r.Values {
		c.Values[k] = v
	}
	return c
}

// Table is an ordered set of rows over ordered value columns. FILE and SUITE
// are implicit and never appear in Columns.
type Table struct {
	Columns []string
	Rows    []*Row
}

func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// IsSummaryRow reports whether file names a computed row.
func IsSummaryRow(file string) bool {
	return file == MeanRow || file == GeomeanRow || strings.HasSuffix(file, suiteGeomeanSuffix)
}

// SuiteGeomeanRow names the geomean row of suite.
func SuiteGeomeanRow(suite string) string { return suite + suiteGeomeanSuffix }

// Append adds a data row and returns it.
func (t *Table) Append(file string) *Row {
	r := newRow(file)
	t.Rows = append(t.Rows, r)
	return r
}

func (t *Table) Len() int { return len(t.Rows) }

// Find returns the first row named file.
func (t *Table) Find(file string) *Row {
	for _, r := range t.Rows {
		if r.File == file {
			return r
		}
	}
	return nil
}

func (t *Table) HasColumn(col string) bool {
	return t.columnIndex(col) >= 0
}

func (t *Table) columnIndex(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

func (t *Table) requireColumn(col string) error {
	if !t.HasColumn(col) {
		return fmt.Errorf("%q: %w", col, statserrors.ErrTUnknownColumn)
	}
	return nil
}

// Column returns the non-missing values of col over data rows.
func (t *Table) Column(col string) []float64 {
	var out []float64
	for _, r := range t.dataRows() {
		if v, ok := r.Values[col]; ok {
			out = append(out, v)
		}
	}
	return out
}

func (t *Table) dataRows() []*Row {
	out := make([]*Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.Synthetic {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.Columns...)
	c.Rows = make([]*Row, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = r.clone()
	}
	return c
}

func (t *Table) String() string {
	return fmt.Sprintf("table(%d rows x %d columns)", len(t.Rows), len(t.Columns))
}
