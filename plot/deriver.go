package plot

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"
	"sync"

	"github.com/montanaflynn/stats"

	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/statistics"
)

const defaultMemoEntries = 256

// Deriver produces the chart series of a bucket and memoizes histograms and
// normal curves by sample content, so unchanged samples are not re-derived.
// It is safe for concurrent use.
type Deriver struct {
	bins   int
	points int

	mu         sync.Mutex
	maxEntries int
	histograms map[uint64]models.HistogramData
	curves     map[uint64]models.Series
}

func NewDeriver(bins, points int) *Deriver {
	if bins <= 0 {
		bins = DefaultBins
	}
	if points < 2 {
		points = DefaultPoints
	}
	return &Deriver{
		bins:       bins,
		points:     points,
		maxEntries: defaultMemoEntries,
		histograms: make(map[uint64]models.HistogramData),
		curves:     make(map[uint64]models.Series),
	}
}

// sampleKey hashes the exact bits of every value together with extra parameters.
func sampleKey(sample []float64, extra ...float64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(sample)))
	h.Write(buf[:])
	for _, values := range [][]float64{extra, sample} {
		for _, v := range values {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

func (d *Deriver) Histogram(sample []float64) models.HistogramData {
	key := sampleKey(sample, float64(d.bins))
	d.mu.Lock()
	h, ok := d.histograms[key]
	d.mu.Unlock()
	if !ok {
		h = Histogram(sample, d.bins)
		d.mu.Lock()
		if len(d.histograms) >= d.maxEntries {
			clear(d.histograms)
		}
		d.histograms[key] = h
		d.mu.Unlock()
	}
	return models.HistogramData{Labels: slices.Clone(h.Labels), Counts: slices.Clone(h.Counts)}
}

// NormalCurve derives the normal curve of sample from its statistics s.
func (d *Deriver) NormalCurve(sample []float64, s models.Stats) models.Series {
	if len(sample) == 0 {
		return NormalCurve(nil, nil, 0, 0, d.points)
	}
	extra := []float64{float64(d.points), math.NaN(), math.NaN()}
	if s.Mean != nil {
		extra[1] = *s.Mean
	}
	if s.StdDev != nil {
		extra[2] = *s.StdDev
	}
	key := sampleKey(sample, extra...)

	d.mu.Lock()
	c, ok := d.curves[key]
	d.mu.Unlock()
	if !ok {
		dataMin, _ := stats.Min(sample)
		dataMax, _ := stats.Max(sample)
		c = NormalCurve(s.Mean, s.StdDev, dataMin, dataMax, d.points)
		d.mu.Lock()
		if len(d.curves) >= d.maxEntries {
			clear(d.curves)
		}
		d.curves[key] = c
		d.mu.Unlock()
	}
	return models.Series{X: slices.Clone(c.X), Labels: slices.Clone(c.Labels), Data: slices.Clone(c.Data)}
}

// Bucket derives every chart of one bucket. OK buckets get ±3σ control
// limits, NOK buckets only the center line.
func (d *Deriver) Bucket(sample []float64, s models.Stats, ok bool) models.BucketCharts {
	return models.BucketCharts{
		Histogram:    d.Histogram(sample),
		NormalCurve:  d.NormalCurve(sample, s),
		ControlChart: ControlChart(sample, s, ok),
		BoxPlot:      statistics.BoxPlot(sample),
	}
}
