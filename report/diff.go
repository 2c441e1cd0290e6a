package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/goccy/go-json"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// CellChange is one cell present in both tables with different values, or
// present in only one of them.
type CellChange struct {
	Row    string   `json:"row"`
	Column string   `json:"column"`
	Old    *float64 `json:"old,omitempty"`
	New    *float64 `json:"new,omitempty"`
}

func (c CellChange) String() string {
	f := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *v)
	}
	return fmt.Sprintf("%s/%s: %s -> %s", c.Row, c.Column, f(c.Old), f(c.New))
}

type Comparison struct {
	AddedRows   []string     `json:"added_rows,omitempty"`
	RemovedRows []string     `json:"removed_rows,omitempty"`
	Changes     []CellChange `json:"changes,omitempty"`
	// Text is the ascii rendering of the structural delta; empty when the
	// tables are identical.
	Text string `json:"-"`
}

// Differs reports whether anything beyond tolerance changed.
func (c *Comparison) Differs() bool {
	return len(c.AddedRows) > 0 || len(c.RemovedRows) > 0 || len(c.Changes) > 0
}

// Compare diffs two result tables. Cell values closer than tolerance are
// treated as equal.
func Compare(left, right *table.Table, tolerance float64, color bool) (*Comparison, error) {
	cmp := &Comparison{}
	lrows, rrows := rowIndex(left), rowIndex(right)
	for name := range rrows {
		if _, ok := lrows[name]; !ok {
			cmp.AddedRows = append(cmp.AddedRows, name)
		}
	}
	for name, lr := range lrows {
		rr, ok := rrows[name]
		if !ok {
			cmp.RemovedRows = append(cmp.RemovedRows, name)
			continue
		}
		cmp.Changes = append(cmp.Changes, cellChanges(name, lr, rr, tolerance)...)
	}
	sort.Strings(cmp.AddedRows)
	sort.Strings(cmp.RemovedRows)
	sort.Slice(cmp.Changes, func(i, j int) bool {
		if cmp.Changes[i].Row != cmp.Changes[j].Row {
			return cmp.Changes[i].Row < cmp.Changes[j].Row
		}
		return cmp.Changes[i].Column < cmp.Changes[j].Column
	})

	text, err := asciiDelta(left.ToJSON(), right.ToJSON(), color)
	if err != nil {
		return nil, err
	}
	cmp.Text = text
	log.Debug(log.ReportModule, "compare", "added", len(cmp.AddedRows), "removed", len(cmp.RemovedRows), "changed", len(cmp.Changes))
	return cmp, nil
}

func rowIndex(t *table.Table) map[string]*table.Row {
	out := make(map[string]*table.Row, len(t.Rows))
	for _, r := range t.Rows {
		if _, dup := out[r.File]; !dup {
			out[r.File] = r
		}
	}
	return out
}

func cellChanges(row string, l, r *table.Row, tolerance float64) []CellChange {
	var out []CellChange
	cols := make(map[string]struct{})
	for c := range l.Values {
		cols[c] = struct{}{}
	}
	for c := range r.Values {
		cols[c] = struct{}{}
	}
	for c := range cols {
		lv, lok := l.Values[c]
		rv, rok := r.Values[c]
		switch {
		case lok && rok:
			if math.Abs(lv-rv) > tolerance {
				out = append(out, CellChange{Row: row, Column: c, Old: &lv, New: &rv})
			}
		case lok:
			out = append(out, CellChange{Row: row, Column: c, Old: &lv})
		default:
			out = append(out, CellChange{Row: row, Column: c, New: &rv})
		}
	}
	return out
}

func asciiDelta(left, right map[string]interface{}, color bool) (string, error) {
	lb, err := json.Marshal(left)
	if err != nil {
		return "", err
	}
	rb, err := json.Marshal(right)
	if err != nil {
		return "", err
	}
	differ := gojsondiff.New()
	delta, err := differ.Compare(lb, rb)
	if err != nil {
		return "", fmt.Errorf("diffing tables: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}
	// unmarshal for the formatter
	var leftObj interface{}
	if err := json.Unmarshal(lb, &leftObj); err != nil {
		return "", err
	}
	cfg := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	}
	return formatter.NewAsciiFormatter(leftObj, cfg).Format(delta)
}
