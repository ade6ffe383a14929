package plot

import (
	"strconv"

	"github.com/pivolan/torque_analyzer/domain/models"
)

// IndexSeries pairs each sample value with its 1-based position.
func IndexSeries(sample []float64) models.Series {
	x := make([]float64, len(sample))
	labels := make([]string, len(sample))
	for i := range sample {
		x[i] = float64(i + 1)
		labels[i] = strconv.Itoa(i + 1)
	}
	data := make([]float64, len(sample))
	copy(data, sample)
	return models.Series{X: x, Labels: labels, Data: data}
}

// ControlChart builds the point series of sample with a constant center line
// at the mean. With bands set it also adds mean±3σ limit lines; a limit is
// nil wherever mean or stddev is unavailable.
func ControlChart(sample []float64, s models.Stats, bands bool) models.ControlChart {
	series := IndexSeries(sample)
	chart := models.ControlChart{
		Labels: series.Labels,
		Data:   series.Data,
		Center: constant(len(sample), s.Mean),
	}
	if !bands {
		return chart
	}

	var upper, lower *float64
	if s.Mean != nil && s.StdDev != nil {
		u := *s.Mean + 3**s.StdDev
		l := *s.Mean - 3**s.StdDev
		upper, lower = &u, &l
	}
	chart.Upper = constant(len(sample), upper)
	chart.Lower = constant(len(sample), lower)
	return chart
}

func constant(n int, v *float64) []*float64 {
	line := make([]*float64, n)
	for i := range line {
		line[i] = v
	}
	return line
}
