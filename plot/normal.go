package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pivolan/torque_analyzer/domain/models"
)

const DefaultPoints = 100

// NormalCurve samples the normal density with the given mean and stddev at
// points evenly spaced x values covering both the data range and mean±4σ.
//
// A degenerate distribution (stddev zero or unavailable) yields a single
// spike of height 1 at the mean, or nothing when the mean is unavailable.
func NormalCurve(mean, stddev *float64, dataMin, dataMax float64, points int) models.Series {
	if mean == nil || math.IsNaN(*mean) {
		return models.Series{Labels: []string{}, Data: []float64{}}
	}
	if stddev == nil || *stddev == 0 || math.IsNaN(*stddev) {
		return models.Series{X: []float64{*mean}, Labels: []string{fmt.Sprintf("%.2f", *mean)}, Data: []float64{1}}
	}
	if points < 2 {
		points = DefaultPoints
	}

	mu, sigma := *mean, *stddev
	minX := math.Min(dataMin, mu-4*sigma)
	maxX := math.Max(dataMax, mu+4*sigma)
	step := (maxX - minX) / float64(points-1)
	dist := distuv.Normal{Mu: mu, Sigma: sigma}

	curve := models.Series{X: make([]float64, points), Labels: make([]string, points), Data: make([]float64, points)}
	for i := 0; i < points; i++ {
		x := minX + float64(i)*step
		curve.X[i] = x
		curve.Labels[i] = fmt.Sprintf("%.2f", x)
		curve.Data[i] = dist.Prob(x)
	}
	return curve
}
