package extract

import (
	"fmt"
	"sort"
	"strings"
)

// Record is the flat metric map extracted from one log file.
type Record struct {
	Path     string             `json:"path"`
	Workload string             `json:"workload"`
	Config   string             `json:"config"`
	Values   map[string]float64 `json:"values"`
	// Undefined maps metrics whose reduction had no value to the reason.
	Undefined map[string]string `json:"undefined,omitempty"`
}

// Get returns the value of a metric.
func (r *Record) Get(metric string) (float64, bool) {
	v, ok := r.Values[metric]
	return v, ok
}

// Metrics returns the metric names in sorted order.
func (r *Record) Metrics() []string {
	out := make([]string, 0, len(r.Values))
	for k := range r.Values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type Status int

const (
	StatusExtracted Status = iota
	StatusFiltered
	StatusUnidentified
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusFiltered:
		return "filtered"
	case StatusUnidentified:
		return "unidentified"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result tells why a file did or did not produce a row.
type Result struct {
	Status Status  `json:"status"`
	Record *Record `json:"record,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

func Extracted(r *Record) Result { return Result{Status: StatusExtracted, Record: r} }

func Filtered(reason string) Result { return Result{Status: StatusFiltered, Reason: reason} }

func Unidentified() Result { return Result{Status: StatusUnidentified} }

// Ok reports whether the result carries a record.
func (r Result) Ok() bool { return r.Status == StatusExtracted && r.Record != nil }

// Empty reports an extracted record with no metrics.
func (r Result) Empty() bool { return r.Ok() && len(r.Record.Values) == 0 }

func (r Result) String() string {
	switch r.Status {
	case StatusExtracted:
		return fmt.Sprintf("extracted %s/%s (%d metrics)", r.Record.Config, r.Record.Workload, len(r.Record.Values))
	case StatusFiltered:
		return "filtered: " + r.Reason
	default:
		return r.Status.String()
	}
}

// Options are the recognized extraction switches.
type Options struct {
	// FilterLowMPKI discards records whose AVG_MPKI is below MPKIThreshold.
	FilterLowMPKI bool    `json:"filter_low_mpki"`
	MPKIThreshold float64 `json:"mpki_threshold"`
	// FilterLowAPKI discards records whose APKI is below APKIThreshold, and any
	// file whose path contains one of Exclude.
	FilterLowAPKI bool     `json:"filter_low_apki"`
	APKIThreshold float64  `json:"apki_threshold"`
	Exclude       []string `json:"exclude"`
	// RowActivations emits the ACTS_PER_ROW_PCT_* distribution.
	RowActivations bool `json:"row_activations"`
}

func DefaultOptions() Options {
	return Options{
		MPKIThreshold: 1,
		APKIThreshold: 1,
		Exclude:       []string{"blender"},
	}
}

// Fingerprint identifies the options that change extraction output.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("mpki=%t:%g|apki=%t:%g|ex=%s|rows=%t",
		o.FilterLowMPKI, o.MPKIThreshold, o.FilterLowAPKI, o.APKIThreshold,
		strings.Join(o.Exclude, ","), o.RowActivations)
}
