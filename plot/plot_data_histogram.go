package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/torque_analyzer/domain/models"
)

type histogramGraph struct {
	labels    []string
	counts    []float64
	nameYAxis string
	nameGraph string
	fill      drawing.Color
}

func newHistogramGraph(h models.HistogramData, opts RenderOptions) histogramGraph {
	counts := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		counts[i] = float64(c)
	}
	return histogramGraph{
		labels:    h.Labels,
		counts:    counts,
		nameYAxis: "Count",
		nameGraph: opts.Title,
		fill:      opts.SeriesColor.WithAlpha(150),
	}
}

func (d histogramGraph) GetNameGraph() string {
	return d.nameGraph
}

func (d histogramGraph) getNameYAxis() string {
	return d.nameYAxis
}

func (d histogramGraph) getYValues() []float64 {
	return d.counts
}

func (d histogramGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.counts) == 0 || minBarWidth <= 0 {
		return 0, 0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(len(d.labels)) + paddingY
	width = int(totalWidth) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d histogramGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.labels))
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.counts[i],
			Label: label,
			Style: chart.Style{
				FillColor:   d.fill,
				StrokeColor: d.fill,
			},
		})
	}
	return bars
}
