package plot

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/reduce"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/colorfulnotion/dreamstats/table"
)

// Chart is a figure bound to data: one slot per x position, gap slots
// carrying an empty label.
type Chart struct {
	Figure Figure
	Labels []string
	Bars   []Bars
}

// Bars is one series; Present[i] is false for gaps and missing cells.
type Bars struct {
	Label   string
	Color   string
	Values  []float64
	Present []bool
}

// Slowdown converts a normalized performance ratio to percent overhead.
func Slowdown(speedup float64) (float64, error) {
	inv, err := reduce.Ratio(1, speedup)
	if err != nil {
		return 0, err
	}
	return (inv - 1) * 100, nil
}

// Label rewrites a row name for display.
func Label(file string) string {
	switch {
	case file == table.MeanRow:
		return "Average"
	case file == table.GeomeanRow:
		return "Gmean"
	case strings.HasSuffix(file, "_"+table.GeomeanRow):
		return suites.DisplayName(strings.TrimSuffix(file, "_"+table.GeomeanRow)) + " Gmean"
	}
	return suites.ShortName(file)
}

// Bind lays the rows of t out in the figure's suite order: each suite's
// rows (its geomean row last), then rows outside the order, with an empty
// slot between groups when the figure asks for gaps.
func Bind(f Figure, t *table.Table) (*Chart, error) {
	for _, s := range f.Series {
		if !t.HasColumn(s.Column) {
			return nil, fmt.Errorf("figure %s: %q: %w", f.Name, s.Column, statserrors.ErrTUnknownColumn)
		}
	}
	rows := orderRows(t, f.SuiteOrder)

	c := &Chart{Figure: f, Bars: make([]Bars, len(f.Series))}
	for i, s := range f.Series {
		c.Bars[i] = Bars{Label: s.Label, Color: s.Color}
	}
	for gi, group := range rows {
		if gi > 0 && f.Gaps {
			c.appendGap()
		}
		for _, r := range group {
			c.Labels = append(c.Labels, Label(r.File))
			for i, s := range f.Series {
				v, ok := r.Get(s.Column)
				if ok {
					var err error
					if v, err = s.apply(v); err != nil {
						log.Debug(log.PlotModule, "bar undefined", "figure", f.Name, "row", r.File, "series", s.Label, "err", err)
						ok = false
					}
				}
				c.Bars[i].Values = append(c.Bars[i].Values, v)
				c.Bars[i].Present = append(c.Bars[i].Present, ok)
			}
		}
	}
	if len(c.Labels) == 0 {
		return nil, fmt.Errorf("figure %s: no rows: %w", f.Name, statserrors.ErrFNoSeries)
	}
	return c, nil
}

func (c *Chart) appendGap() {
	c.Labels = append(c.Labels, "")
	for i := range c.Bars {
		c.Bars[i].Values = append(c.Bars[i].Values, 0)
		c.Bars[i].Present = append(c.Bars[i].Present, false)
	}
}

func (s Series) apply(v float64) (float64, error) {
	switch s.Transform {
	case TransformScale:
		return v * s.Factor, nil
	case TransformSlowdown:
		return Slowdown(v)
	}
	return v, nil
}

func orderRows(t *table.Table, order []string) [][]*table.Row {
	bySuite := make(map[string][]*table.Row)
	var rest []*table.Row
	listed := make(map[string]bool, len(order))
	for _, s := range order {
		listed[s] = true
	}
	for _, r := range t.Rows {
		if listed[r.Suite] {
			bySuite[r.Suite] = append(bySuite[r.Suite], r)
		} else {
			rest = append(rest, r)
		}
	}
	var groups [][]*table.Row
	for _, s := range order {
		if rows := bySuite[s]; len(rows) > 0 {
			groups = append(groups, rows)
			delete(bySuite, s)
		}
	}
	if len(rest) > 0 {
		groups = append(groups, rest)
	}
	return groups
}
