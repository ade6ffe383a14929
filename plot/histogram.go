// Package plot derives chart-ready series from measurement samples and
// renders them as PNG images or an HTML report.
package plot

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/pivolan/torque_analyzer/domain/models"
)

const DefaultBins = 15

// Histogram counts sample values into binCount equal-width bins spanning
// [floor(min), ceil(max)]. The maximum value falls into the last bin.
func Histogram(sample []float64, binCount int) models.HistogramData {
	if len(sample) == 0 || binCount <= 0 {
		return models.HistogramData{Labels: []string{}, Counts: []int{}}
	}

	dataMin, _ := stats.Min(sample)
	dataMax, _ := stats.Max(sample)
	niceMin := math.Floor(dataMin)
	niceMax := math.Ceil(dataMax)
	binSize := (niceMax - niceMin) / float64(binCount)

	labels := make([]string, binCount)
	for i := 0; i < binCount; i++ {
		binStart := niceMin + float64(i)*binSize
		binEnd := binStart + binSize
		labels[i] = fmt.Sprintf("%.2f - %.2f", binStart, binEnd)
	}

	counts := make([]int, binCount)
	for _, value := range sample {
		binIndex := 0
		// binSize is zero when every value is the same integer
		if binSize > 0 {
			binIndex = int(math.Floor((value - niceMin) / binSize))
		}
		if binIndex >= binCount {
			binIndex = binCount - 1
		}
		if binIndex < 0 {
			binIndex = 0
		}
		counts[binIndex]++
	}

	return models.HistogramData{Labels: labels, Counts: counts}
}
