package table

import (
	"fmt"
	"sort"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
)

// JoinSuites fills SUITE on every data row from the suite table and orders
// the rows by the given suite order, then by workload name. Suites missing
// from order follow the listed ones; unclassified rows come last and
// synthetic rows keep their place after all data rows.
func (t *Table) JoinSuites(order []string) {
	for _, r := range t.Rows {
		if r.Synthetic {
			continue
		}
		r.Suite, _ = suites.Of(r.File)
	}
	data, synthetic := partition(t.Rows)
	sortRows(data, order)
	t.Rows = append(data, synthetic...)
}

func partition(rows []*Row) (data, synthetic []*Row) {
	for _, r := range rows {
		if r.Synthetic {
			synthetic = append(synthetic, r)
		} else {
			data = append(data, r)
		}
	}
	return data, synthetic
}

func suiteRank(order []string) func(string) int {
	rank := make(map[string]int, len(order))
	for i, s := range order {
		if _, ok := rank[s]; !ok {
			rank[s] = i
		}
	}
	return func(s string) int {
		if s == "" {
			return len(order) + 1
		}
		if i, ok := rank[s]; ok {
			return i
		}
		return len(order)
	}
}

func sortRows(rows []*Row, order []string) {
	rank := suiteRank(order)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if ra, rb := rank(a.Suite), rank(b.Suite); ra != rb {
			return ra < rb
		}
		if a.Suite != b.Suite {
			return a.Suite < b.Suite
		}
		return suites.Less(a.File, b.File)
	})
}

// FilterSuite keeps the rows of one suite, including its geomean row.
func (t *Table) FilterSuite(suite string) error {
	if !suites.IsSuite(suite) {
		return fmt.Errorf("%q: %w", suite, statserrors.ErrCUnknownSuite)
	}
	kept := t.Rows[:0]
	for _, r := range t.Rows {
		if r.Suite == suite {
			kept = append(kept, r)
		}
	}
	log.Debug(log.TableModule, "suite filter", "suite", suite, "before", len(t.Rows), "after", len(kept))
	t.Rows = kept
	return nil
}
