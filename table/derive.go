package table

import (
	"fmt"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/reduce"
	"github.com/colorfulnotion/dreamstats/statserrors"
)

const (
	slowdownPlaces = 4
	meanPlaces     = 6
)

// AddBest appends the best column: the row-wise maximum over every other
// value column.
func (t *Table) AddBest() error {
	var cols []string
	for _, c := range t.Columns {
		if c != BestColumn {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return fmt.Errorf("best: %w", statserrors.ErrTNoValueColumns)
	}
	for _, r := range t.Rows {
		delete(r.Values, BestColumn)
		var vals []float64
		for _, c := range cols {
			if v, ok := r.Values[c]; ok {
				vals = append(vals, v)
			}
		}
		if best, err := reduce.Max(vals); err == nil {
			r.Values[BestColumn] = best
		}
	}
	if !t.HasColumn(BestColumn) {
		t.Columns = append(t.Columns, BestColumn)
	}
	return nil
}

// AddSlowdown divides every value column by baseline, rounded to 4 places.
// The baseline column itself becomes 1. A row whose baseline is missing or
// zero loses all of its cells.
func (t *Table) AddSlowdown(baseline string) error {
	if err := t.requireColumn(baseline); err != nil {
		return fmt.Errorf("slowdown baseline: %w", err)
	}
	for _, r := range t.Rows {
		base, ok := r.Values[baseline]
		for _, c := range t.Columns {
			v, present := r.Values[c]
			if !present {
				continue
			}
			if !ok {
				delete(r.Values, c)
				continue
			}
			ratio, err := reduce.Ratio(v, base)
			if err != nil {
				log.Debug(log.TableModule, "slowdown cell undefined", "row", r.File, "column", c, "err", err)
				delete(r.Values, c)
				continue
			}
			r.Values[c] = reduce.Round(ratio, slowdownPlaces)
		}
	}
	return nil
}

// AddMean appends the MEAN row: per column, the arithmetic mean of the data
// rows' present values, rounded to 6 places.
func (t *Table) AddMean() {
	t.appendSummary(MeanRow, "", t.dataRows(), func(s []float64) (float64, error) {
		m, err := reduce.Mean(s)
		return reduce.Round(m, meanPlaces), err
	})
}

// AddGeomean appends the GEOMEAN row over the data rows.
func (t *Table) AddGeomean() {
	t.appendSummary(GeomeanRow, "", t.dataRows(), reduce.Geomean)
}

// AddGeomeanSuite inserts one <suite>_GEOMEAN row right after the rows of
// each suite that has rows, in the given suite order. Rows without a suite,
// earlier summary rows included, follow unchanged.
func (t *Table) AddGeomeanSuite(order []string) {
	bySuite := make(map[string][]*Row)
	var seen []string
	var rest []*Row
	for _, r := range t.Rows {
		if r.Suite == "" {
			rest = append(rest, r)
			continue
		}
		if _, ok := bySuite[r.Suite]; !ok {
			seen = append(seen, r.Suite)
		}
		bySuite[r.Suite] = append(bySuite[r.Suite], r)
	}

	var suiteOrder []string
	listed := make(map[string]bool)
	for _, s := range order {
		if _, ok := bySuite[s]; ok && !listed[s] {
			suiteOrder = append(suiteOrder, s)
			listed[s] = true
		}
	}
	for _, s := range seen {
		if !listed[s] {
			suiteOrder = append(suiteOrder, s)
		}
	}

	out := &Table{Columns: t.Columns}
	for _, s := range suiteOrder {
		rows := bySuite[s]
		out.Rows = append(out.Rows, rows...)
		data, _ := partition(rows)
		out.appendSummary(SuiteGeomeanRow(s), s, data, reduce.Geomean)
	}
	t.Rows = append(out.Rows, rest...)
}

func (t *Table) appendSummary(name, suite string, rows []*Row, fn func([]float64) (float64, error)) {
	summary := newRow(name)
	summary.Suite = suite
	summary.Synthetic = true
	for _, c := range t.Columns {
		var vals []float64
		for _, r := range rows {
			if v, ok := r.Values[c]; ok {
				vals = append(vals, v)
			}
		}
		v, err := fn(vals)
		if err != nil {
			log.Debug(log.TableModule, "summary cell undefined", "row", name, "column", c, "err", err)
			continue
		}
		summary.Values[c] = v
	}
	t.Rows = append(t.Rows, summary)
}
