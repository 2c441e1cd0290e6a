// Package suites holds the static benchmark table: which workloads belong to
// which suite, and how a simulator log path names its configuration and
// workload.
//
// The table is fixed at build time and never mutated. Lookups return copies so
// callers cannot alter it.
package suites

import (
	"path/filepath"
	"strconv"
	"strings"
)

const (
	GAP      = "gap6"
	STREAM   = "stream4"
	SPEC2017 = "spec2k17"
	MIX      = "mix"
)

type suite struct {
	name      string
	workloads []string
}

// table order is the identification order: the first workload whose marker
// occurs in a path wins.
var table = []suite{
	{GAP, []string{"cc", "pr", "tc", "bfs", "bc", "sssp"}},
	{STREAM, []string{"add", "triad", "copy", "scale"}},
	{SPEC2017, []string{
		"blender_17", "bwaves_17", "cactuBSSN_17", "cam4_17", "deepsjeng_17", "fotonik3d_17",
		"gcc_17", "imagick_17", "lbm_17", "leela_17", "mcf_17", "nab_17", "namd_17", "omnetpp_17",
		"parest_17", "perlbench_17", "povray_17", "roms_17", "wrf_17", "x264_17", "xalancbmk_17", "xz_17",
	}},
	{MIX, []string{"mix_1", "mix_2", "mix_3", "mix_4", "mix_5", "mix_6", "mix_7", "mix_8", "mix_9", "mix_10"}},
}

var membership = func() map[string]string {
	m := make(map[string]string)
	for _, s := range table {
		for _, w := range s.workloads {
			m[w] = s.name
		}
	}
	return m
}()

var displayNames = map[string]string{
	SPEC2017: "SPEC2017",
	GAP:      "GAP",
	STREAM:   "STREAM",
}

// DefaultOrder is the suite order used when the caller does not give one.
func DefaultOrder() []string {
	out := make([]string, len(table))
	for i, s := range table {
		out[i] = s.name
	}
	return out
}

// Names returns all suite names in table order.
func Names() []string { return DefaultOrder() }

// Workloads returns the workloads of a suite, or nil for an unknown suite.
func Workloads(suite string) []string {
	for _, s := range table {
		if s.name == suite {
			return append([]string(nil), s.workloads...)
		}
	}
	return nil
}

// All returns every known workload in identification order.
func All() []string {
	var out []string
	for _, s := range table {
		out = append(out, s.workloads...)
	}
	return out
}

// IsSuite reports whether name is a suite in the table.
func IsSuite(name string) bool {
	for _, s := range table {
		if s.name == name {
			return true
		}
	}
	return false
}

// Of returns the suite of a workload; ok is false for unclassified workloads.
func Of(workload string) (suite string, ok bool) {
	suite, ok = membership[workload]
	return suite, ok
}

// Identify finds the workload named by a log path using the
// "<config>_<workload>.<suffix>" convention. The configuration is the last path
// segment before the marker.
func Identify(path string) (config, workload string, ok bool) {
	slashed := filepath.ToSlash(path)
	for _, s := range table {
		for _, w := range s.workloads {
			marker := "_" + w + "."
			idx := strings.Index(slashed, marker)
			if idx < 0 {
				continue
			}
			prefix := slashed[:idx]
			if cut := strings.LastIndex(prefix, "/"); cut >= 0 {
				prefix = prefix[cut+1:]
			}
			return prefix, w, true
		}
	}
	return "", "", false
}

// DisplayName maps a suite to the label used in figures.
func DisplayName(suite string) string {
	if d, ok := displayNames[suite]; ok {
		return d
	}
	return suite
}

// ShortName drops the SPEC year suffix from a workload for axis labels.
func ShortName(workload string) string {
	return strings.Replace(workload, "_17", "", 1)
}

// Less orders workload names lexicographically, except that names of the form
// "<prefix>_<n>" sharing a prefix compare by n (mix_2 < mix_10).
func Less(a, b string) bool {
	pa, na, okA := numbered(a)
	pb, nb, okB := numbered(b)
	if okA && okB && pa == pb {
		return na < nb
	}
	return a < b
}

func numbered(name string) (string, int, bool) {
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return "", 0, false
	}
	return name[:i], n, true
}
