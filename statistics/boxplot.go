package statistics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/pivolan/torque_analyzer/domain/models"
)

// BoxPlot summarizes sample for a box-and-whisker chart. Whiskers reach the
// most extreme values within 1.5 IQR of the quartiles; values beyond them are
// outliers, reported in input order.
func BoxPlot(sample []float64) models.BoxPlot {
	if len(sample) == 0 {
		return models.BoxPlot{Outliers: []float64{}}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	minVal, _ := stats.Min(sorted)
	maxVal, _ := stats.Max(sorted)
	q1 := calculateQuantile(sorted, 0.25)
	q3 := calculateQuantile(sorted, 0.75)
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	lowerWhisker, upperWhisker := maxVal, minVal
	for _, v := range sorted {
		if v >= lowerBound && v < lowerWhisker {
			lowerWhisker = v
		}
		if v <= upperBound && v > upperWhisker {
			upperWhisker = v
		}
	}

	return models.BoxPlot{
		Count:        len(sample),
		Min:          minVal,
		Q1:           q1,
		Median:       calculateQuantile(sorted, 0.5),
		Q3:           q3,
		Max:          maxVal,
		IQR:          iqr,
		LowerWhisker: lowerWhisker,
		UpperWhisker: upperWhisker,
		Outliers:     findOutliers(sample, lowerBound, upperBound),
	}
}

// calculateQuantile interpolates linearly between the two closest ranks.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}

func findOutliers(numbers []float64, lowerBound, upperBound float64) []float64 {
	outliers := make([]float64, 0)
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}
