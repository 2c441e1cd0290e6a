package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/olekukonko/tablewriter"
)

func formatCell(r *Row, col string) string {
	v, ok := r.Values[col]
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (t *Table) header() []string {
	return append([]string{FileColumn, SuiteColumn}, t.Columns...)
}

func (t *Table) record(r *Row) []string {
	out := make([]string, 0, len(t.Columns)+2)
	out = append(out, r.File, r.Suite)
	for _, c := range t.Columns {
		out = append(out, formatCell(r, c))
	}
	return out
}

// WriteCSV writes FILE, SUITE and the value columns. Missing cells are empty
// fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header()); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(t.record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV. Summary rows are recognized by
// name.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: %w", statserrors.ErrTMalformedCSV)
		}
		return nil, fmt.Errorf("%v: %w", err, statserrors.ErrTMalformedCSV)
	}
	if len(header) < 2 || header[0] != FileColumn || header[1] != SuiteColumn {
		return nil, fmt.Errorf("header %v: %w", header, statserrors.ErrTMalformedCSV)
	}
	t := New(header[2:]...)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, statserrors.ErrTMalformedCSV)
		}
		row := t.Append(rec[0])
		row.Suite = rec[1]
		row.Synthetic = IsSummaryRow(rec[0])
		for i, field := range rec[2:] {
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %q: %w", line, t.Columns[i], field, statserrors.ErrTInvalidNumber)
			}
			row.Values[t.Columns[i]] = v
		}
	}
	return t, nil
}

// Render prints the table for a terminal.
func (t *Table) Render(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.header())
	tw.SetAutoFormatHeaders(false)
	tw.SetBorder(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range t.Rows {
		tw.Append(t.record(r))
	}
	tw.Render()
}

// ToJSON returns the table as nested maps keyed by row then column, for
// structural comparison. Repeated row names get a #n suffix.
func (t *Table) ToJSON() map[string]interface{} {
	rows := make(map[string]interface{}, len(t.Rows))
	seen := make(map[string]int)
	for _, r := range t.Rows {
		key := r.File
		if n := seen[r.File]; n > 0 {
			key = fmt.Sprintf("%s#%d", r.File, n+1)
		}
		seen[r.File]++
		cells := make(map[string]interface{}, len(r.Values)+1)
		if r.Suite != "" {
			cells[SuiteColumn] = r.Suite
		}
		for c, v := range r.Values {
			cells[c] = v
		}
		rows[key] = cells
	}
	cols := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c
	}
	return map[string]interface{}{"columns": cols, "rows": rows}
}
