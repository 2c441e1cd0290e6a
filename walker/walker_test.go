package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/dreamstats/extract"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func fixture(t *testing.T) string {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"cfgA_bfs.sim_out":        "AVG_CORE_CYCLES : 100\nCORE_0_MPKI : 12\n",
		"nested/cfgB_bfs.sim_out": "AVG_CORE_CYCLES : 200\nCORE_0_MPKI : 0.2\n",
		"cfgA_unknown.sim_out":    "AVG_CORE_CYCLES : 1\n",
		"cfgA_cc.log":             "nothing here\n",
	})
	return dir
}

func TestWalk(t *testing.T) {
	dir := fixture(t)
	records, sum, err := New(extract.DefaultOptions(), nil, nil).Walk([]string{dir})
	require.NoError(t, err)

	assert.Len(t, records, 3)
	assert.Equal(t, 4, sum.Files)
	assert.Equal(t, 3, sum.Extracted)
	assert.Equal(t, 1, sum.Empty)
	assert.Equal(t, 1, sum.Unidentified)
	require.Len(t, sum.Skipped, 1)
	assert.Equal(t, "unidentified", sum.Skipped[0].Status)
}

func TestWalkFilters(t *testing.T) {
	opts := extract.DefaultOptions()
	opts.FilterLowMPKI = true
	records, sum, err := New(opts, nil, nil).Walk([]string{fixture(t)})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 1, sum.Filtered)
	for _, r := range records {
		assert.NotEqual(t, "cfgB", r.Config)
	}
}

func TestWalkInvalidDirectory(t *testing.T) {
	w := New(extract.DefaultOptions(), nil, nil)
	_, _, err := w.Walk([]string{filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, statserrors.ErrWInvalidDirectory)

	file := filepath.Join(t.TempDir(), "cfg_bfs.log")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, _, err = w.Walk([]string{file})
	assert.ErrorIs(t, err, statserrors.ErrWInvalidDirectory)

	_, _, err = w.Walk(nil)
	assert.ErrorIs(t, err, statserrors.ErrWNoInput)
}

func TestWalkUsesCache(t *testing.T) {
	dir := fixture(t)
	cache, err := storage.OpenRecordCache("")
	require.NoError(t, err)
	defer cache.Close()

	w := New(extract.DefaultOptions(), cache, nil)
	first, _, err := w.Walk([]string{dir})
	require.NoError(t, err)
	n, err := cache.Len()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	second, sum, err := w.Walk([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, 4, sum.CacheHits)
	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Values, second[i].Values)
	}
}

func TestWalkFollowsFileLinks(t *testing.T) {
	target := t.TempDir()
	writeFiles(t, target, map[string]string{"real.sim_out": "AVG_CORE_CYCLES : 300\n"})

	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(target, "real.sim_out"), filepath.Join(dir, "cfgL_bfs.sim_out")))
	require.NoError(t, os.Symlink(filepath.Join(target, "gone"), filepath.Join(dir, "cfgD_bfs.sim_out")))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "linked")))

	cache, err := storage.OpenRecordCache("")
	require.NoError(t, err)
	defer cache.Close()

	records, sum, err := New(extract.DefaultOptions(), cache, nil).Walk([]string{dir})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, sum.Files)
	assert.Equal(t, "cfgL", records[0].Config)
	v, _ := records[0].Get("AVG_CORE_CYCLES")
	assert.Equal(t, 300.0, v)
}
