package charts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const contentTypeJSON = "application/json"

var defaultPalette = opts.Colors{"#4e79a7", "#f28e2b", "#59a145", "#e15759"}

// EChartsRenderer builds report charts as ECharts option documents. The
// artifact payload is the JSON option set a client-side echarts instance
// feeds into setOption; the engine only depends on the Renderer interface.
type EChartsRenderer struct{}

func NewEChartsRenderer() *EChartsRenderer {
	return &EChartsRenderer{}
}

// PlaceholderChart is the artifact substituted when a chart render fails: a
// title-only option document marked unavailable.
func PlaceholderChart(title string) []byte {
	line := echarts.NewLine()
	line.SetGlobalOptions(echarts.WithTitleOpts(opts.Title{
		Title:    title,
		Subtitle: "Gráfico indisponível",
	}))
	data, _ := json.Marshal(line.JSON())
	return data
}

func (r *EChartsRenderer) RenderLineChart(_ context.Context, title string, series []Point, color string) ([]byte, error) {
	if len(series) == 0 {
		return nil, errors.New("empty series")
	}
	colors := defaultPalette
	if color != "" {
		colors = opts.Colors{color}
	}

	labels := make([]string, 0, len(series))
	items := make([]opts.LineData, 0, len(series))
	for _, p := range series {
		labels = append(labels, p.Label)
		items = append(items, opts.LineData{Value: p.Value})
	}

	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithColorsOpts(colors),
		echarts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		echarts.WithYAxisOpts(opts.YAxis{Type: "value", Scale: opts.Bool(true)}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(labels).
		AddSeries(title, items).
		SetSeriesOptions(echarts.WithLineStyleOpts(opts.LineStyle{Width: 2}))

	return marshalOptions(line.JSON())
}

func (r *EChartsRenderer) RenderDoughnut(_ context.Context, title string, labels []string, values []float64) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(values) {
		return nil, errors.New("labels and values must be non-empty and equal length")
	}
	total := 0.0
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("negative segment value %.2f", v)
		}
		total += v
	}
	if total == 0 {
		return nil, errors.New("all segment values are zero")
	}

	items := make([]opts.PieData, 0, len(labels))
	for i, label := range labels {
		items = append(items, opts.PieData{Name: label, Value: values[i]})
	}

	pie := echarts.NewPie()
	pie.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithColorsOpts(defaultPalette),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries(title, items).SetSeriesOptions(
		echarts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}),
		echarts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)

	return marshalOptions(pie.JSON())
}

func (r *EChartsRenderer) RenderBarComparison(_ context.Context, title string, labels []string, current, previous []float64) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(current) || len(labels) != len(previous) {
		return nil, errors.New("labels, current and previous must be non-empty and equal length")
	}

	prevItems := make([]opts.BarData, 0, len(labels))
	currItems := make([]opts.BarData, 0, len(labels))
	for i := range labels {
		prevItems = append(prevItems, opts.BarData{Value: previous[i]})
		currItems = append(currItems, opts.BarData{Value: current[i]})
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithColorsOpts(opts.Colors{defaultPalette[1], defaultPalette[0]}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("Anterior", prevItems).
		AddSeries("Atual", currItems)

	return marshalOptions(bar.JSON())
}

func marshalOptions(options map[string]interface{}) ([]byte, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart options: %w", err)
	}
	return data, nil
}
