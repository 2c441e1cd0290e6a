// Package timing records per-stage wall time of a run. Recording is compiled
// in only with the benchprofile build tag; otherwise every call is a no-op.
package timing

import (
	"time"

	"github.com/colorfulnotion/dreamstats/reduce"
	"github.com/montanaflynn/stats"
)

// Pipeline stages.
const (
	StageWalk    = "walk"
	StageRead    = "read"
	StageExtract = "extract"
	StageCache   = "cache"
	StageTable   = "table"
	StageOutput  = "output"
)

type Row struct {
	Stage    string
	Count    int
	Total    time.Duration
	Mean     time.Duration
	P50, P95 time.Duration
	Max      time.Duration
}

// summarize reduces the durations of one stage; list must not be empty.
func summarize(stage string, list []time.Duration) Row {
	s := stats.Float64Data(reduce.Floats(list))
	var total time.Duration
	for _, d := range list {
		total += d
	}
	p50, _ := s.Percentile(50)
	p95, _ := s.Percentile(95)
	peak, _ := s.Max()
	return Row{
		Stage: stage,
		Count: len(list),
		Total: total,
		Mean:  total / time.Duration(len(list)),
		P50:   time.Duration(p50),
		P95:   time.Duration(p95),
		Max:   time.Duration(peak),
	}
}
