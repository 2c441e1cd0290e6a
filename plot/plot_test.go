package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/colorfulnotion/dreamstats/suites"
	"github.com/colorfulnotion/dreamstats/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const figureYAML = `
figures:
  - name: fig6
    csv: stats/fig6.csv
    ylabel: RLP
    suite_order: [spec2k17, stream4, gap6]
    gaps: true
    ymax: 10
    hlines: [8, 1]
    formats: [png, html]
    series:
      - column: mop4_para_drfmsb_eager
        label: PARA (DRFMsb)
        color: "#5C4033"
        transform: scale
        factor: 8
      - column: mop4_para_drfmsb_lazy
        transform: slowdown
`

func resultTable() *table.Table {
	t := table.New("mop4_para_drfmsb_eager", "mop4_para_drfmsb_lazy")
	add := func(file, suite string, a, b float64) {
		r := t.Append(file)
		r.Suite = suite
		r.Values["mop4_para_drfmsb_eager"] = a
		r.Values["mop4_para_drfmsb_lazy"] = b
	}
	add("bfs", suites.GAP, 0.5, 0.8)
	add("lbm_17", suites.SPEC2017, 0.25, 0.5)
	add("triad", suites.STREAM, 1, 0)
	t.AddMean()
	return t
}

func TestParseFigures(t *testing.T) {
	figs, err := ParseFigures([]byte(figureYAML))
	require.NoError(t, err)
	require.Len(t, figs, 1)
	f := figs[0]
	assert.Equal(t, "RLP", f.YLabel)
	assert.Equal(t, 12.0, f.Width)
	assert.Equal(t, "mop4_para_drfmsb_lazy", f.Series[1].Label)
	require.NotNil(t, f.YMax)
	assert.Equal(t, 10.0, *f.YMax)
	assert.Nil(t, f.YMin)

	_, err = ParseFigures([]byte("figures:\n  - name: x\n"))
	assert.ErrorIs(t, err, statserrors.ErrFNoSeries)
	_, err = ParseFigures([]byte("figures:\n  - name: x\n    series: [{column: a, transform: log}]\n"))
	assert.ErrorIs(t, err, statserrors.ErrFTransform)
	_, err = ParseFigures([]byte("figures:\n  - name: x\n    formats: [gif]\n    series: [{column: a}]\n"))
	assert.ErrorIs(t, err, statserrors.ErrFFormat)
	_, err = ParseFigures([]byte("figures:\n  - name: x\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestLoadFiguresResolvesCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(figureYAML), 0o644))
	figs, err := LoadFigures(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stats", "fig6.csv"), figs[0].CSV)

	_, err = Select(figs, []string{"fig9"})
	assert.ErrorIs(t, err, statserrors.ErrFUnknownFigure)
	sel, err := Select(figs, []string{"fig6"})
	require.NoError(t, err)
	assert.Len(t, sel, 1)
}

func TestSlowdownAndLabels(t *testing.T) {
	v, err := Slowdown(0.8)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, v, 1e-9)
	_, err = Slowdown(0)
	assert.Error(t, err)

	assert.Equal(t, "Average", Label(table.MeanRow))
	assert.Equal(t, "Gmean", Label(table.GeomeanRow))
	assert.Equal(t, "GAP Gmean", Label("gap6_GEOMEAN"))
	assert.Equal(t, "lbm", Label("lbm_17"))
}

func TestBind(t *testing.T) {
	figs, err := ParseFigures([]byte(figureYAML))
	require.NoError(t, err)
	c, err := Bind(figs[0], resultTable())
	require.NoError(t, err)

	assert.Equal(t, []string{"lbm", "", "triad", "", "bfs", "", "Average"}, c.Labels)
	require.Len(t, c.Bars, 2)
	assert.Equal(t, []float64{2, 0, 8, 0, 4, 0, 4.667}, roundAll(c.Bars[0].Values))
	assert.Equal(t, []bool{true, false, true, false, true, false, true}, c.Bars[0].Present)
	assert.False(t, c.Bars[1].Present[2], "slowdown of a zero ratio is undefined")
	assert.InDelta(t, 100.0, c.Bars[1].Values[0], 1e-9)

	figs[0].Series[0].Column = "nope"
	_, err = Bind(figs[0], resultTable())
	assert.ErrorIs(t, err, statserrors.ErrTUnknownColumn)
}

func roundAll(in []float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(int(v*1000+0.5)) / 1000
	}
	return out
}

func TestRenderFormats(t *testing.T) {
	figs, err := ParseFigures([]byte(figureYAML))
	require.NoError(t, err)
	out := t.TempDir()
	written, err := Render(figs[0], resultTable(), out)
	require.NoError(t, err)
	require.Len(t, written, 2)
	for _, p := range written {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}

	c, err := Bind(figs[0], resultTable())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(c, &buf))
	assert.Contains(t, buf.String(), "PARA (DRFMsb)")
	assert.Contains(t, buf.String(), "Average")

	assert.ErrorIs(t, SaveStatic(c, filepath.Join(out, "fig.gif")), statserrors.ErrFFormat)
	require.NoError(t, SaveStatic(c, filepath.Join(out, "fig.svg")))
}
