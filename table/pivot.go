package table

import (
	"fmt"
	"sort"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/statserrors"
)

// Pivot builds one row per workload and one column per configuration, each
// cell holding metric. Duplicate (workload, configuration) values are
// averaged; configurations and workloads with no value are left out.
func Pivot(records []*extract.Record, metric string) (*Table, error) {
	type acc struct {
		sum float64
		n   int
	}
	cells := make(map[string]map[string]*acc)
	configs := make(map[string]struct{})
	for _, rec := range records {
		v, ok := rec.Get(metric)
		if !ok {
			continue
		}
		row, ok := cells[rec.Workload]
		if !ok {
			row = make(map[string]*acc)
			cells[rec.Workload] = row
		}
		a, ok := row[rec.Config]
		if !ok {
			a = &acc{}
			row[rec.Config] = a
		}
		a.sum += v
		a.n++
		configs[rec.Config] = struct{}{}
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("pivot on %q over %d records: %w", metric, len(records), statserrors.ErrTEmptyPivotInput)
	}

	t := New(sortedKeys(configs)...)
	workloads := make([]string, 0, len(cells))
	for w := range cells {
		workloads = append(workloads, w)
	}
	sort.Strings(workloads)
	for _, w := range workloads {
		r := t.Append(w)
		for cfg, a := range cells[w] {
			r.Values[cfg] = a.sum / float64(a.n)
		}
	}
	log.Debug(log.TableModule, "pivot", "metric", metric, "rows", len(t.Rows), "columns", len(t.Columns))
	return t, nil
}

// Cell is one (workload, configuration) value of a pivoted table.
type Cell struct {
	Workload string
	Config   string
	Value    float64
}

// Unpivot is the inverse of Pivot: one Cell per present value of every data
// row, in row then column order.
func (t *Table) Unpivot() []Cell {
	var out []Cell
	for _, r := range t.dataRows() {
		for _, c := range t.Columns {
			if v, ok := r.Values[c]; ok {
				out = append(out, Cell{Workload: r.File, Config: c, Value: v})
			}
		}
	}
	return out
}

// FromRecords selects the records of one configuration; rows are workloads
// and columns the union of their metric names.
func FromRecords(records []*extract.Record, config string) *Table {
	names := make(map[string]struct{})
	var picked []*extract.Record
	for _, rec := range records {
		if rec.Config != config {
			continue
		}
		picked = append(picked, rec)
		for k := range rec.Values {
			names[k] = struct{}{}
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Workload < picked[j].Workload })

	t := New(sortedKeys(names)...)
	for _, rec := range picked {
		r := t.Append(rec.Workload)
		for k, v := range rec.Values {
			r.Values[k] = v
		}
	}
	log.Debug(log.TableModule, "type selection", "config", config, "rows", len(t.Rows), "columns", len(t.Columns))
	return t
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
