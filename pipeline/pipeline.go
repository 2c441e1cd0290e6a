// Package pipeline runs one extract-transform-aggregate pass from a
// configuration: walk the inputs, build the table, derive summary rows and
// columns, then write the result.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/report"
	"github.com/colorfulnotion/dreamstats/storage"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/colorfulnotion/dreamstats/timing"
	"github.com/colorfulnotion/dreamstats/walker"
)

type Result struct {
	Table   *table.Table
	Records []*extract.Record
	Summary walker.Summary
	Timings []timing.Row

	timer *timing.Recorder
}

// Collect walks cfg.Dirs and returns the extracted records.
func Collect(cfg *config.Config, timer *timing.Recorder) ([]*extract.Record, walker.Summary, error) {
	var cache *storage.RecordCache
	if cfg.Cache != "" {
		var err error
		cache, err = storage.OpenRecordCache(cfg.Cache)
		if err != nil {
			return nil, walker.Summary{}, err
		}
		defer cache.Close()
	}
	return walker.New(cfg.Extract, cache, timer).Walk(cfg.Dirs)
}

// Run validates cfg, collects the records and builds the table.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timer := timing.New()
	records, sum, err := Collect(cfg, timer)
	if err != nil {
		return nil, err
	}
	done := timer.Start(timing.StageTable)
	t, err := Build(records, cfg)
	done()
	if err != nil {
		return nil, err
	}
	res := &Result{Table: t, Records: records, Summary: sum, Timings: timer.Snapshot(), timer: timer}
	for _, row := range res.Timings {
		log.Info(log.WalkModule, "stage timing", "stage", row.Stage, "count", row.Count, "total", row.Total,
			"mean", row.Mean, "p95", row.P95)
	}
	return res, nil
}

// Build applies the table operations selected in cfg, in order: pivot (or
// configuration selection), suites, column drops and selection, dropna, the
// suite filter, best, mean or geomean, suite geomeans, then slowdown.
func Build(records []*extract.Record, cfg *config.Config) (*table.Table, error) {
	var t *table.Table
	if cfg.Type != "" {
		t = table.FromRecords(records, cfg.Type)
	} else {
		var err error
		if t, err = table.Pivot(records, cfg.Pivot); err != nil {
			return nil, err
		}
	}

	t.JoinSuites(cfg.SuiteOrder)

	if len(cfg.IgnoreCols) > 0 {
		if err := t.DropColumns(cfg.IgnoreCols...); err != nil {
			return nil, fmt.Errorf("ignorecols: %w", err)
		}
	}
	if len(cfg.Cols) > 0 {
		if err := t.SelectColumns(cfg.Cols...); err != nil {
			return nil, fmt.Errorf("cols: %w", err)
		}
	}
	if cfg.DropNA {
		t.DropNA()
	}
	// summary rows cover only the selected suite
	if cfg.Suite != "" {
		if err := t.FilterSuite(cfg.Suite); err != nil {
			return nil, err
		}
	}
	if cfg.Slowdown() && cfg.Baseline == config.DefaultBaseline {
		if err := t.AddBest(); err != nil {
			return nil, err
		}
	}
	switch {
	case cfg.Mean:
		t.AddMean()
	case cfg.Geomean:
		t.AddGeomean()
	}
	if cfg.GeomeanSuite {
		t.AddGeomeanSuite(cfg.SuiteOrder)
	}
	if cfg.Slowdown() {
		if err := t.AddSlowdown(cfg.Baseline); err != nil {
			return nil, err
		}
	}
	log.Debug(log.TableModule, "table built", "rows", t.Len(), "columns", len(t.Columns))
	return t, nil
}

// Write stores the table as CSV in cfg.Out, or renders it to stdout when no
// output path is set, and writes the metadata sidecar when cfg.Meta is set.
func (r *Result) Write(cfg *config.Config, stdout io.Writer) error {
	if r.timer == nil {
		r.timer = timing.New()
	}
	done := r.timer.Start(timing.StageOutput)
	if cfg.Out == "" {
		r.Table.Render(stdout)
	} else if err := writeCSVFile(cfg.Out, r.Table); err != nil {
		return err
	}
	if cfg.Meta != "" {
		m := report.NewMetadata(cfg, r.Summary, r.Table, time.Now())
		if err := report.WriteMetadata(cfg.Meta, m); err != nil {
			return err
		}
	}
	done()
	r.Timings = r.timer.Snapshot()
	log.Info(log.TableModule, "result written", "out", cfg.Out, "rows", r.Table.Len(), "meta", cfg.Meta)
	return nil
}

func writeCSVFile(path string, t *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return t.WriteCSV(f)
}
