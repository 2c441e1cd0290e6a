package table

import (
	"fmt"

	"github.com/colorfulnotion/dreamstats/statserrors"
)

func isIndexColumn(col string) bool { return col == FileColumn || col == SuiteColumn }

// DropColumns removes value columns and their cells. FILE and SUITE cannot be
// dropped.
func (t *Table) DropColumns(cols ...string) error {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		if isIndexColumn(c) {
			return fmt.Errorf("%s: %w", c, statserrors.ErrTIndexColumn)
		}
		if err := t.requireColumn(c); err != nil {
			return err
		}
		drop[c] = true
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for c := range drop {
			delete(r.Values, c)
		}
	}
	return nil
}

// SelectColumns keeps only cols, in the given order. FILE and SUITE are
// always kept and may be listed.
func (t *Table) SelectColumns(cols ...string) error {
	var selected []string
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if isIndexColumn(c) || seen[c] {
			continue
		}
		if err := t.requireColumn(c); err != nil {
			return err
		}
		seen[c] = true
		selected = append(selected, c)
	}
	for _, r := range t.Rows {
		for c := range r.Values {
			if !seen[c] {
				delete(r.Values, c)
			}
		}
	}
	t.Columns = selected
	return nil
}

// DropNA removes every row with a missing value cell.
func (t *Table) DropNA() {
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		complete := true
		for _, c := range t.Columns {
			if _, ok := r.Values[c]; !ok {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, r)
		}
	}
	t.Rows = kept
}
