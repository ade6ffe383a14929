package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/torque_analyzer/domain/models"
)

type reportBucket struct {
	name   string
	charts models.BucketCharts
	normal bool
}

// RenderHTMLReport writes an interactive HTML page with the histograms,
// normal curves, control charts and boxplots of an analysis.
func RenderHTMLReport(w io.Writer, result models.AnalysisResult) error {
	buckets := []reportBucket{
		{name: "Torque (OK)", charts: result.Charts.OKTorque, normal: true},
		{name: "Angle (OK)", charts: result.Charts.OKAngle, normal: true},
		{name: "Torque (NOK)", charts: result.Charts.NOKTorque},
		{name: "Angle (NOK)", charts: result.Charts.NOKAngle},
	}

	page := components.NewPage()
	for _, b := range buckets {
		if len(b.charts.ControlChart.Data) == 0 {
			continue
		}
		page.AddCharts(controlChartHTML(b), histogramHTML(b))
		if b.normal && len(b.charts.NormalCurve.Data) > 0 {
			page.AddCharts(normalCurveHTML(b))
		}
	}
	page.AddCharts(boxPlotHTML(buckets))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func histogramHTML(b reportBucket) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Histogram " + b.name}))
	items := make([]opts.BarData, len(b.charts.Histogram.Counts))
	for i, c := range b.charts.Histogram.Counts {
		items[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(b.charts.Histogram.Labels).AddSeries("count", items)
	return bar
}

func normalCurveHTML(b reportBucket) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Normal curve " + b.name}))
	line.SetXAxis(b.charts.NormalCurve.Labels).AddSeries("density", lineData(b.charts.NormalCurve.Data))
	return line
}

func controlChartHTML(b reportBucket) *charts.Line {
	c := b.charts.ControlChart
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Control chart " + b.name}))
	line.SetXAxis(c.Labels).AddSeries(b.name, lineData(c.Data))
	for _, ref := range []struct {
		name   string
		values []*float64
	}{{"mean", c.Center}, {"UCL (+3σ)", c.Upper}, {"LCL (-3σ)", c.Lower}} {
		if len(ref.values) == 0 || ref.values[0] == nil {
			continue
		}
		data := make([]float64, len(ref.values))
		for i, v := range ref.values {
			data[i] = *v
		}
		line.AddSeries(ref.name, lineData(data))
	}
	return line
}

func boxPlotHTML(buckets []reportBucket) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Boxplots"}))
	names := make([]string, 0, len(buckets))
	items := make([]opts.BoxPlotData, 0, len(buckets))
	for _, b := range buckets {
		bp := b.charts.BoxPlot
		if bp.Count == 0 {
			continue
		}
		names = append(names, b.name)
		items = append(items, opts.BoxPlotData{
			Name:  b.name,
			Value: []float64{bp.LowerWhisker, bp.Q1, bp.Median, bp.Q3, bp.UpperWhisker},
		})
	}
	box.SetXAxis(names).AddSeries("boxplot", items)
	return box
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}
	return items
}
