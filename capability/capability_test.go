package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/statistics"
)

func stats(mean, stddev float64) models.Stats {
	return models.Stats{Count: 10, Mean: statistics.Float(mean), StdDev: statistics.Float(stddev)}
}

func TestCapabilityCentered(t *testing.T) {
	r := Capability(stats(10, 1), &models.Limits{LIE: 7, LSE: 13})
	require.NotNil(t, r.Cp)
	require.NotNil(t, r.Cpk)
	assert.InDelta(t, 1.0, *r.Cp, 1e-12)
	assert.InDelta(t, 1.0, *r.Cpk, 1e-12)
}

func TestCapabilityOffCenter(t *testing.T) {
	r := Capability(stats(12, 0.5), &models.Limits{LIE: 7, LSE: 13})
	assert.InDelta(t, 2.0, *r.Cp, 1e-12)
	assert.InDelta(t, 1.0/1.5, *r.Cpk, 1e-12)
}

func TestPerformanceMirrorsCapability(t *testing.T) {
	limits := &models.Limits{LIE: 7, LSE: 13}
	c := Capability(stats(9, 2), limits)
	p := Performance(stats(9, 2), limits)
	assert.Equal(t, *c.Cp, *p.Pp)
	assert.Equal(t, *c.Cpk, *p.Ppk)
}

func TestIndicesNotAvailable(t *testing.T) {
	limits := &models.Limits{LIE: 7, LSE: 13}
	tests := []struct {
		name   string
		stats  models.Stats
		limits *models.Limits
	}{
		{name: "no limits", stats: stats(10, 1), limits: nil},
		{name: "no mean", stats: models.Stats{StdDev: statistics.Float(1)}, limits: limits},
		{name: "no stddev", stats: models.Stats{Count: 1, Mean: statistics.Float(10)}, limits: limits},
		{name: "zero stddev", stats: stats(10, 0), limits: limits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Capability(tt.stats, tt.limits)
			assert.Nil(t, c.Cp)
			assert.Nil(t, c.Cpk)
			p := Performance(tt.stats, tt.limits)
			assert.Nil(t, p.Pp)
			assert.Nil(t, p.Ppk)
		})
	}
}

func TestParseLimits(t *testing.T) {
	l := ParseLimits(models.LimitsText{LIE: "7,5", LSE: " 13 "})
	require.NotNil(t, l)
	assert.Equal(t, models.Limits{LIE: 7.5, LSE: 13}, *l)

	assert.Nil(t, ParseLimits(models.LimitsText{LIE: "", LSE: "13"}))
	assert.Nil(t, ParseLimits(models.LimitsText{LIE: "7", LSE: "abc"}))
}

func TestEvaluate(t *testing.T) {
	var req models.CapabilityRequest
	req.Stats.OK.Torque = stats(10, 1)
	req.Stats.All.Torque = stats(10, 2)
	req.Stats.OK.Angle = stats(40, 5)
	req.Stats.All.Angle = stats(40, 5)
	req.Limits.Torque = models.LimitsText{LIE: "7", LSE: "13"}
	req.Limits.Angle = models.LimitsText{LIE: "", LSE: "60"}

	resp := Evaluate(req)
	assert.InDelta(t, 1.0, *resp.Capability.Torque.Cp, 1e-12)
	assert.InDelta(t, 0.5, *resp.Performance.Torque.Pp, 1e-12)
	assert.InDelta(t, 0.5, *resp.Performance.Torque.Ppk, 1e-12)
	assert.Nil(t, resp.Capability.Angle.Cp)
	assert.Nil(t, resp.Performance.Angle.Ppk)

	assert.Equal(t, resp, Evaluate(req))
}
