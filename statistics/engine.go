// Package statistics computes descriptive statistics of measurement samples.
//
// Every result field that cannot be computed for the given sample size is
// left nil instead of being reported as zero.
package statistics

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/pivolan/torque_analyzer/domain/models"
)

// Compute returns count, mean, median, sample standard deviation, adjusted
// Fisher-Pearson skewness and excess kurtosis of sample.
//
// Mean and median need one value, stddev two, skewness three and kurtosis
// four; skewness and kurtosis are also unavailable when stddev is zero.
func Compute(sample []float64) models.Stats {
	n := len(sample)
	result := models.Stats{Count: n}
	if n == 0 {
		return result
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return result
	}
	median, err := stats.Median(sample)
	if err != nil {
		return result
	}
	result.Mean = Float(mean)
	result.Median = Float(median)
	if n < 2 {
		return result
	}

	stddev, err := stats.StandardDeviationSample(sample)
	if err != nil {
		return result
	}
	result.StdDev = Float(stddev)
	if stddev == 0 {
		return result
	}

	if n >= 3 {
		result.Skewness = Float(skewness(sample, mean, stddev))
	}
	if n >= 4 {
		result.Kurtosis = Float(kurtosis(sample, mean, stddev))
	}
	return result
}

func skewness(values []float64, mean, stddev float64) float64 {
	n := float64(len(values))
	sumOfCubes := 0.0
	for _, v := range values {
		sumOfCubes += math.Pow(v-mean, 3)
	}
	return (n / ((n - 1) * (n - 2))) * (sumOfCubes / math.Pow(stddev, 3))
}

func kurtosis(values []float64, mean, stddev float64) float64 {
	n := float64(len(values))
	sumOfFourth := 0.0
	for _, v := range values {
		sumOfFourth += math.Pow(v-mean, 4)
	}
	term1 := (n * (n + 1)) / ((n - 1) * (n - 2) * (n - 3))
	term2 := sumOfFourth / math.Pow(stddev, 4)
	term3 := (3 * math.Pow(n-1, 2)) / ((n - 2) * (n - 3))
	return term1*term2 - term3
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
