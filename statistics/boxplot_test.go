package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxPlot(t *testing.T) {
	b := BoxPlot([]float64{100, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	assert.Equal(t, 10, b.Count)
	assert.Equal(t, 1.0, b.Min)
	assert.Equal(t, 100.0, b.Max)
	assert.InDelta(t, 3.25, b.Q1, 1e-12)
	assert.InDelta(t, 5.5, b.Median, 1e-12)
	assert.InDelta(t, 7.75, b.Q3, 1e-12)
	assert.InDelta(t, 4.5, b.IQR, 1e-12)
	assert.Equal(t, 1.0, b.LowerWhisker)
	assert.Equal(t, 9.0, b.UpperWhisker)
	assert.Equal(t, []float64{100}, b.Outliers)
}

func TestBoxPlotSingleValue(t *testing.T) {
	b := BoxPlot([]float64{7})
	assert.Equal(t, 1, b.Count)
	assert.Equal(t, 7.0, b.Median)
	assert.Equal(t, 7.0, b.LowerWhisker)
	assert.Equal(t, 7.0, b.UpperWhisker)
	assert.Empty(t, b.Outliers)
}

func TestBoxPlotEmpty(t *testing.T) {
	b := BoxPlot(nil)
	assert.Equal(t, 0, b.Count)
	assert.NotNil(t, b.Outliers)
}

func TestCalculateQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, calculateQuantile(sorted, 0))
	assert.Equal(t, 4.0, calculateQuantile(sorted, 1))
	assert.InDelta(t, 2.5, calculateQuantile(sorted, 0.5), 1e-12)
	assert.Equal(t, 0.0, calculateQuantile(nil, 0.5))
}
