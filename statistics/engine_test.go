package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	assert.Equal(t, 0, s.Count)
	assert.Nil(t, s.Mean)
	assert.Nil(t, s.Median)
	assert.Nil(t, s.StdDev)
	assert.Nil(t, s.Skewness)
	assert.Nil(t, s.Kurtosis)
}

func TestComputeSingleValue(t *testing.T) {
	s := Compute([]float64{5})
	assert.Equal(t, 1, s.Count)
	require.NotNil(t, s.Mean)
	require.NotNil(t, s.Median)
	assert.Equal(t, 5.0, *s.Mean)
	assert.Equal(t, 5.0, *s.Median)
	assert.Nil(t, s.StdDev)
	assert.Nil(t, s.Skewness)
	assert.Nil(t, s.Kurtosis)
}

func TestComputeThresholds(t *testing.T) {
	two := Compute([]float64{1, 3})
	require.NotNil(t, two.StdDev)
	assert.InDelta(t, math.Sqrt2, *two.StdDev, 1e-12)
	assert.Equal(t, 2.0, *two.Median)
	assert.Nil(t, two.Skewness)

	three := Compute([]float64{1, 2, 6})
	assert.NotNil(t, three.Skewness)
	assert.Nil(t, three.Kurtosis)
}

func TestComputeZeroVariance(t *testing.T) {
	s := Compute([]float64{4, 4, 4, 4, 4})
	require.NotNil(t, s.StdDev)
	assert.Equal(t, 0.0, *s.StdDev)
	assert.Nil(t, s.Skewness)
	assert.Nil(t, s.Kurtosis)
}

func TestComputeSymmetricSample(t *testing.T) {
	s := Compute([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 3.0, *s.Mean)
	assert.Equal(t, 3.0, *s.Median)
	assert.InDelta(t, math.Sqrt(2.5), *s.StdDev, 1e-12)
	assert.InDelta(t, 0, *s.Skewness, 1e-12)
	assert.InDelta(t, -1.2, *s.Kurtosis, 1e-9)
}

func TestComputeSkewedSample(t *testing.T) {
	// reference values of the adjusted Fisher-Pearson skewness and excess kurtosis
	s := Compute([]float64{2, 8, 0, 4, 1, 9, 9, 0})
	assert.InDelta(t, 4.125, *s.Mean, 1e-12)
	assert.InDelta(t, 3.0, *s.Median, 1e-12)
	assert.InDelta(t, 3.9799, *s.StdDev, 1e-4)
	assert.InDelta(t, 0.3305, *s.Skewness, 1e-4)
	assert.InDelta(t, -2.0986, *s.Kurtosis, 1e-4)
}

func TestComputeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Compute(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestComputeIdempotent(t *testing.T) {
	in := []float64{10.1, 9.7, 10.4, 10.0, 9.9, 10.3}
	assert.Equal(t, Compute(in), Compute(in))
}
