package pipeline

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/colorfulnotion/dreamstats/config"
	"github.com/colorfulnotion/dreamstats/report"
	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/colorfulnotion/dreamstats/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestEndToEndCoreCycles(t *testing.T) {
	dir := writeLogs(t, map[string]string{
		"cfgA_bfs.sim_out": "AVG_CORE_CYCLES : 100\n",
		"cfgB_bfs.sim_out": "AVG_CORE_CYCLES : 200\n",
	})
	cfg := config.Defaults()
	cfg.Dirs = []string{dir}
	cfg.Pivot = "AVG_CORE_CYCLES"
	cfg.NoSlowdown = true

	res, err := Run(&cfg)
	require.NoError(t, err)
	require.Equal(t, 1, res.Table.Len())
	row := res.Table.Rows[0]
	assert.Equal(t, "bfs", row.File)
	assert.Equal(t, suites.GAP, row.Suite)
	assert.Equal(t, []string{"cfgA", "cfgB"}, res.Table.Columns)
	assert.Equal(t, 100.0, row.Values["cfgA"])
	assert.Equal(t, 200.0, row.Values["cfgB"])
}

func ipcDir(t *testing.T) string {
	return writeLogs(t, map[string]string{
		"base_bfs.stats":    "CORE_0_IPC : 2.0\n",
		"para_bfs.stats":    "CORE_0_IPC : 1.0\n",
		"base_cc.stats":     "CORE_0_IPC : 4.0\n",
		"para_cc.stats":     "CORE_0_IPC : 3.0\n",
		"base_lbm_17.stats": "CORE_0_IPC : 1.0\n",
		"para_lbm_17.stats": "CORE_0_IPC : 0.5\n",
		"base_weird.stats":  "CORE_0_IPC : 9.0\n",
	})
}

func TestSlowdownAgainstBest(t *testing.T) {
	cfg := config.Defaults()
	cfg.Dirs = []string{ipcDir(t)}
	cfg.Geomean = true
	cfg.GeomeanSuite = true

	res, err := Run(&cfg)
	require.NoError(t, err)
	tbl := res.Table
	assert.Equal(t, []string{"base", "para", table.BestColumn}, tbl.Columns)

	var files []string
	for _, r := range tbl.Rows {
		files = append(files, r.File)
	}
	assert.Equal(t, []string{"bfs", "cc", "gap6_GEOMEAN", "lbm_17", "spec2k17_GEOMEAN", table.GeomeanRow}, files)

	v, _ := tbl.Find("cc").Get("para")
	assert.Equal(t, 0.75, v)
	v, _ = tbl.Find(table.GeomeanRow).Get(table.BestColumn)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 6, res.Summary.Extracted)
	assert.Equal(t, 1, res.Summary.Unidentified)
}

func TestTypeSelectionAndSuiteFilter(t *testing.T) {
	cfg := config.Defaults()
	cfg.Dirs = []string{ipcDir(t)}
	cfg.Type = "para"
	cfg.NoSlowdown = true
	cfg.Suite = suites.GAP

	res, err := Run(&cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"AVG_IPC"}, res.Table.Columns)
	assert.Equal(t, 2, res.Table.Len())
}

func TestSuiteFilterKeepsSummaryRow(t *testing.T) {
	for _, geomean := range []bool{false, true} {
		cfg := config.Defaults()
		cfg.Dirs = []string{ipcDir(t)}
		cfg.NoSlowdown = true
		cfg.Suite = suites.GAP
		cfg.Mean = !geomean
		cfg.Geomean = geomean

		res, err := Run(&cfg)
		require.NoError(t, err)
		summary := table.MeanRow
		if geomean {
			summary = table.GeomeanRow
		}
		var files []string
		for _, r := range res.Table.Rows {
			files = append(files, r.File)
		}
		assert.Equal(t, []string{"bfs", "cc", summary}, files)

		row := res.Table.Find(summary)
		require.NotNil(t, row)
		base, _ := row.Get("base")
		para, _ := row.Get("para")
		if geomean {
			assert.InDelta(t, math.Sqrt(8), base, 1e-12)
			assert.InDelta(t, math.Sqrt(3), para, 1e-12)
		} else {
			assert.Equal(t, 3.0, base, "lbm_17 is outside the suite")
			assert.Equal(t, 2.0, para)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	cfg := config.Defaults()
	cfg.Dirs = []string{ipcDir(t)}
	cfg.Baseline = "mint"
	_, err := Run(&cfg)
	assert.ErrorIs(t, err, statserrors.ErrTUnknownColumn)

	cfg = config.Defaults()
	cfg.Dirs = []string{filepath.Join(t.TempDir(), "nope")}
	_, err = Run(&cfg)
	assert.ErrorIs(t, err, statserrors.ErrWInvalidDirectory)

	cfg = config.Defaults()
	_, err = Run(&cfg)
	assert.ErrorIs(t, err, statserrors.ErrWNoInput)
}

func TestWriteOutputs(t *testing.T) {
	out := t.TempDir()
	cfg := config.Defaults()
	cfg.Dirs = []string{ipcDir(t)}
	cfg.Baseline = "base"
	cfg.Mean = true
	cfg.Out = filepath.Join(out, "ipc.csv")
	cfg.Meta = filepath.Join(out, "ipc.meta.json")
	cfg.Cache = filepath.Join(out, "cache")

	res, err := Run(&cfg)
	require.NoError(t, err)
	require.NoError(t, res.Write(&cfg, nil))

	b, err := os.ReadFile(cfg.Out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Equal(t, "FILE,SUITE,base,para", lines[0])
	assert.Equal(t, "bfs,gap6,1,0.5", lines[1])
	assert.Equal(t, "MEAN,,1,0.6429", lines[len(lines)-1])

	back, err := table.ReadCSV(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, res.Table.Len(), back.Len())

	m, err := report.ReadMetadata(cfg.Meta)
	require.NoError(t, err)
	assert.Equal(t, res.Table.Len(), m.Rows)
	assert.Equal(t, 6, m.Summary.Extracted)

	// second run is served from the cache
	res, err = Run(&cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Summary.CacheHits)

	var buf bytes.Buffer
	cfg.Out, cfg.Meta = "", ""
	require.NoError(t, res.Write(&cfg, &buf))
	assert.Contains(t, buf.String(), "lbm_17")
	if timing.Enabled {
		var stages []string
		for _, row := range res.Timings {
			stages = append(stages, row.Stage)
		}
		assert.Contains(t, stages, timing.StageOutput)
	}
}
