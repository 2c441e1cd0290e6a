package suites

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyEveryWorkload(t *testing.T) {
	for _, s := range Names() {
		for _, w := range Workloads(s) {
			path := "/results/run1/mop4_para_" + w + ".stats"
			cfg, got, ok := Identify(path)
			require.True(t, ok, path)
			assert.Equal(t, w, got)
			assert.Equal(t, "mop4_para", cfg)

			suite, ok := Of(got)
			require.True(t, ok)
			assert.Equal(t, s, suite)
		}
	}
}

func TestIdentifyMixDoesNotConfuseTen(t *testing.T) {
	cfg, w, ok := Identify("out/base_mix_10.txt")
	require.True(t, ok)
	assert.Equal(t, "mix_10", w)
	assert.Equal(t, "base", cfg)

	_, w, ok = Identify("out/base_mix_1.txt")
	require.True(t, ok)
	assert.Equal(t, "mix_1", w)
}

func TestIdentifyUnknown(t *testing.T) {
	_, _, ok := Identify("/results/cfg_unknownbench.stats")
	assert.False(t, ok)

	_, ok = Of("unknownbench")
	assert.False(t, ok)
}

func TestWorkloadInAtMostOneSuite(t *testing.T) {
	seen := map[string]string{}
	for _, s := range Names() {
		for _, w := range Workloads(s) {
			prev, dup := seen[w]
			assert.False(t, dup, "%s in %s and %s", w, prev, s)
			seen[w] = s
		}
	}
	assert.Len(t, All(), len(seen))
}

func TestTableIsNotMutable(t *testing.T) {
	ws := Workloads(GAP)
	ws[0] = "changed"
	assert.Equal(t, "cc", Workloads(GAP)[0])
	assert.Nil(t, Workloads("nope"))
}

func TestLessNumbersMixes(t *testing.T) {
	names := []string{"mix_10", "mix_2", "mix_1", "bfs", "bc"}
	sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })
	assert.Equal(t, []string{"bc", "bfs", "mix_1", "mix_2", "mix_10"}, names)
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "SPEC2017", DisplayName(SPEC2017))
	assert.Equal(t, "mix", DisplayName(MIX))
	assert.Equal(t, "lbm", ShortName("lbm_17"))
	assert.True(t, IsSuite("stream4"))
	assert.False(t, IsSuite("stream"))
}
