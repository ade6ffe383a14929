package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/torque_analyzer/domain/models"
)

var ErrNotEnoughPoints = errors.New("not enough points to draw a chart")

// RenderOptions configures a single rendered image. Every render gets its
// own options; nothing is set globally.
type RenderOptions struct {
	Title       string
	Width       int
	Height      int
	TextColor   drawing.Color
	SeriesColor drawing.Color
	LimitColor  drawing.Color
}

func DefaultRenderOptions(title string) RenderOptions {
	return RenderOptions{
		Title:       title,
		Width:       1600,
		Height:      900,
		TextColor:   drawing.ColorBlack,
		SeriesColor: drawing.ColorFromHex("36a2eb"),
		LimitColor:  drawing.ColorFromHex("ff6384"),
	}
}

// DrawHistogram renders histogram counts as a PNG bar chart.
func DrawHistogram(h models.HistogramData, opts RenderOptions) ([]byte, error) {
	if len(h.Counts) == 0 {
		return nil, ErrNotEnoughPoints
	}
	return DrawPlotBar(newHistogramGraph(h, opts), opts)
}

func DrawPlotBar(data dataForGraph, opts RenderOptions) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(60)
	maxY := findMaxValue(data.getYValues())
	if maxY <= 0 {
		return nil, ErrNotEnoughPoints
	}

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.TitleStyle = chart.Style{FontColor: opts.TextColor}
	bar.Background = chart.Style{
		StrokeColor: opts.TextColor,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 40
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: maxY,
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: opts.TextColor,
			FontColor:   opts.TextColor,
			FontSize:    12,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     opts.TextColor,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         opts.TextColor,
		FontColor:           opts.TextColor,
		TextRotationDegrees: 88,
		FontSize:            12,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// DrawNormalCurve renders a normal density curve as a filled line chart.
func DrawNormalCurve(curve models.Series, opts RenderOptions) ([]byte, error) {
	if len(curve.X) < 2 || len(curve.X) != len(curve.Data) {
		return nil, ErrNotEnoughPoints
	}

	series := &chart.ContinuousSeries{
		Name:    "density",
		XValues: curve.X,
		YValues: curve.Data,
		Style: chart.Style{
			StrokeColor: opts.SeriesColor,
			FillColor:   opts.SeriesColor.WithAlpha(50),
			StrokeWidth: 2,
		},
	}

	graph := chart.Chart{
		Title:      opts.Title,
		TitleStyle: chart.Style{FontColor: opts.TextColor},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 40},
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{
			Name:           "Value",
			Style:          chart.Style{FontColor: opts.TextColor},
			ValueFormatter: decimalFormatter("%.2f"),
		},
		YAxis: chart.YAxis{
			Name:           "Probability density",
			Style:          chart.Style{FontColor: opts.TextColor},
			ValueFormatter: decimalFormatter("%.4f"),
		},
		Series: []chart.Series{series},
	}
	return renderChart(graph)
}

// DrawControlChart renders the point series with its center line and, when
// present, the ±3σ limits.
func DrawControlChart(c models.ControlChart, opts RenderOptions) ([]byte, error) {
	if len(c.Data) < 2 {
		return nil, ErrNotEnoughPoints
	}
	x := make([]float64, len(c.Data))
	for i := range x {
		x[i] = float64(i + 1)
	}

	minY, maxY := c.Data[0], c.Data[0]
	for _, v := range c.Data {
		minY, maxY = math.Min(minY, v), math.Max(maxY, v)
	}

	series := []chart.Series{
		&chart.ContinuousSeries{
			Name:    "measurement",
			XValues: x,
			YValues: c.Data,
			Style: chart.Style{
				StrokeColor: opts.SeriesColor,
				StrokeWidth: 1,
				DotColor:    opts.SeriesColor,
				DotWidth:    2,
			},
		},
	}
	lines := []struct {
		name   string
		values []*float64
		style  chart.Style
	}{
		{"mean", c.Center, chart.Style{StrokeColor: drawing.ColorFromHex("4bc0c0"), StrokeWidth: 2}},
		{"UCL (+3σ)", c.Upper, chart.Style{StrokeColor: opts.LimitColor, StrokeWidth: 2, StrokeDashArray: []float64{5, 5}}},
		{"LCL (-3σ)", c.Lower, chart.Style{StrokeColor: opts.LimitColor, StrokeWidth: 2, StrokeDashArray: []float64{5, 5}}},
	}
	for _, line := range lines {
		if len(line.values) == 0 || line.values[0] == nil {
			continue
		}
		v := *line.values[0]
		minY, maxY = math.Min(minY, v), math.Max(maxY, v)
		series = append(series, &chart.ContinuousSeries{
			Name:    line.name,
			XValues: []float64{x[0], x[len(x)-1]},
			YValues: []float64{v, v},
			Style:   line.style,
		})
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}

	graph := chart.Chart{
		Title:      opts.Title,
		TitleStyle: chart.Style{FontColor: opts.TextColor},
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 40},
			FillColor: drawing.ColorWhite,
		},
		XAxis: chart.XAxis{
			Name:           "Sample",
			Style:          chart.Style{FontColor: opts.TextColor},
			ValueFormatter: decimalFormatter("%.0f"),
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontColor: opts.TextColor},
			Range:          &chart.ContinuousRange{Min: minY, Max: maxY},
			ValueFormatter: decimalFormatter("%.2f"),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderChart(graph)
}

func renderChart(graph chart.Chart) ([]byte, error) {
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func decimalFormatter(format string) chart.ValueFormatter {
	return func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf(format, vf)
		}
		return ""
	}
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
