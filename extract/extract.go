// Package extract turns the text of one simulator log into a flat metric
// record. It runs a fixed, ordered battery of independent pattern rules and
// then the quality filters selected in Options.
package extract

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/dreamstats/log"
	"github.com/colorfulnotion/dreamstats/suites"
)

// Extract parses one file's text. The path names the configuration and
// workload; a path naming no known workload yields Unidentified.
func Extract(text, path string, opts Options) Result {
	config, workload, ok := suites.Identify(path)
	if !ok {
		log.Trace(log.ExtractModule, "no workload in path", "path", path)
		return Unidentified()
	}

	d := newDocument(path, text)
	b := newBuilder()
	for _, r := range rules {
		r.Apply(d, b, opts)
	}
	for k, reason := range b.undefined {
		log.Debug(log.ExtractModule, "metric undefined", "path", path, "metric", k, "reason", reason)
	}

	rec := &Record{
		Path:     path,
		Workload: workload,
		Config:   config,
		Values:   b.values,
	}
	if len(b.undefined) > 0 {
		rec.Undefined = b.undefined
	}

	if reason, drop := applyFilters(rec, opts); drop {
		log.Debug(log.ExtractModule, "record filtered", "path", path, "reason", reason)
		return Filtered(reason)
	}
	return Extracted(rec)
}

type filter func(rec *Record, opts Options) (reason string, drop bool)

var filters = []filter{lowMPKIFilter, excludedPathFilter, lowAPKIFilter}

func applyFilters(rec *Record, opts Options) (string, bool) {
	for _, f := range filters {
		if reason, drop := f(rec, opts); drop {
			return reason, true
		}
	}
	return "", false
}

func lowMPKIFilter(rec *Record, opts Options) (string, bool) {
	if !opts.FilterLowMPKI {
		return "", false
	}
	mpki, ok := rec.Get("AVG_MPKI")
	if ok && mpki < opts.MPKIThreshold {
		return fmt.Sprintf("AVG_MPKI %.3f below %g", mpki, opts.MPKIThreshold), true
	}
	return "", false
}

func excludedPathFilter(rec *Record, opts Options) (string, bool) {
	if !opts.FilterLowAPKI {
		return "", false
	}
	for _, token := range opts.Exclude {
		if token != "" && strings.Contains(rec.Path, token) {
			return "path excluded by " + token, true
		}
	}
	return "", false
}

func lowAPKIFilter(rec *Record, opts Options) (string, bool) {
	if !opts.FilterLowAPKI {
		return "", false
	}
	apki, ok := rec.Get("APKI")
	if ok && apki < opts.APKIThreshold {
		return fmt.Sprintf("APKI %.3f below %g", apki, opts.APKIThreshold), true
	}
	return "", false
}
