package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const pixelsPerInch = 96

// RenderHTML writes c as a self-contained echarts page.
func RenderHTML(c *Chart, w io.Writer) error {
	bar := charts.NewBar()
	yaxis := opts.YAxis{Name: c.Figure.YLabel}
	if c.Figure.YMin != nil {
		yaxis.Min = *c.Figure.YMin
	}
	if c.Figure.YMax != nil {
		yaxis.Max = *c.Figure.YMax
	}
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.Figure.Name,
			Width:     fmt.Sprintf("%dpx", int(c.Figure.Width*pixelsPerInch)),
			Height:    fmt.Sprintf("%dpx", int(c.Figure.Height*pixelsPerInch)),
		}),
		charts.WithTitleOpts(opts.Title{Title: c.Figure.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(yaxis),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: labelAngle, Interval: "0"}}),
	)
	bar.SetXAxis(c.Labels)

	for i, b := range c.Bars {
		data := make([]opts.BarData, len(b.Values))
		for j, v := range b.Values {
			if b.Present[j] {
				data[j] = opts.BarData{Value: v}
			} else {
				data[j] = opts.BarData{Value: "-"}
			}
		}
		var series []charts.SeriesOpts
		if b.Color != "" {
			series = append(series, charts.WithItemStyleOpts(opts.ItemStyle{Color: b.Color}))
		}
		if i == 0 {
			for _, y := range c.Figure.HLines {
				series = append(series, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
					Name:  fmt.Sprintf("%g", y),
					YAxis: y,
				}))
			}
		}
		bar.AddSeries(b.Label, data, series...)
	}

	page := components.NewPage()
	page.AddCharts(bar)
	return page.Render(w)
}
