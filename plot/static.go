package plot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	slotFill   = 0.8
	labelAngle = 48
)

// SaveStatic draws c with gonum/plot; the format follows the extension of
// path (pdf, png or svg).
func SaveStatic(c *Chart, path string) error {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "pdf", "png", "svg":
	default:
		return fmt.Errorf("%s: %w", path, statserrors.ErrFFormat)
	}

	p := plot.New()
	p.Title.Text = c.Figure.Title
	p.Y.Label.Text = c.Figure.YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	width := vg.Length(c.Figure.Width) * vg.Inch
	slot := width / vg.Length(len(c.Labels)+1)
	barWidth := slot * slotFill / vg.Length(len(c.Bars))
	n := len(c.Bars)
	for i, b := range c.Bars {
		vals := make(plotter.Values, len(b.Values))
		for j, v := range b.Values {
			if b.Present[j] {
				vals[j] = v
			}
		}
		bar, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return fmt.Errorf("series %s: %w", b.Label, err)
		}
		bar.LineStyle.Width = vg.Points(0.5)
		bar.Color = parseColor(b.Color, i)
		bar.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		p.Add(bar)
		p.Legend.Add(b.Label, bar)
	}
	p.Legend.Top = true

	for _, y := range c.Figure.HLines {
		y := y
		line := plotter.NewFunction(func(float64) float64 { return y })
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		line.Width = vg.Points(1)
		p.Add(line)
	}

	p.NominalX(c.Labels...)
	p.X.Tick.Label.Rotation = labelAngle * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Min, p.X.Max = -0.5, float64(len(c.Labels))-0.5
	if c.Figure.YMin != nil {
		p.Y.Min = *c.Figure.YMin
	}
	if c.Figure.YMax != nil {
		p.Y.Max = *c.Figure.YMax
	}

	return p.Save(width, vg.Length(c.Figure.Height)*vg.Inch, path)
}

// parseColor reads "#rrggbb"; anything else falls back to the palette.
func parseColor(hex string, i int) color.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 6 {
		if v, err := strconv.ParseUint(h, 16, 32); err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
		}
	}
	return plotutil.Color(i)
}
