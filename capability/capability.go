// Package capability computes process capability (Cp/Cpk) and performance
// (Pp/Ppk) indices against user supplied specification limits.
package capability

import (
	"math"

	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/sample"
)

// ParseLimits parses limits typed by a user. It returns nil when either
// limit is not a number.
func ParseLimits(text models.LimitsText) *models.Limits {
	lie, ok := sample.ParseDecimal(text.LIE)
	if !ok {
		return nil
	}
	lse, ok := sample.ParseDecimal(text.LSE)
	if !ok {
		return nil
	}
	return &models.Limits{LIE: lie, LSE: lse}
}

// Capability computes Cp and Cpk from short-term (OK only) statistics.
func Capability(shortTerm models.Stats, limits *models.Limits) models.CapabilityResult {
	cp, cpk := indices(shortTerm, limits)
	return models.CapabilityResult{Cp: cp, Cpk: cpk}
}

// Performance computes Pp and Ppk from long-term (OK and NOK) statistics.
func Performance(longTerm models.Stats, limits *models.Limits) models.PerformanceResult {
	pp, ppk := indices(longTerm, limits)
	return models.PerformanceResult{Pp: pp, Ppk: ppk}
}

// indices returns nil for both values unless limits, mean and a positive
// standard deviation are all available.
func indices(s models.Stats, limits *models.Limits) (*float64, *float64) {
	if limits == nil || s.Mean == nil || s.StdDev == nil || !(*s.StdDev > 0) {
		return nil, nil
	}
	mean, sigma := *s.Mean, *s.StdDev
	p := (limits.LSE - limits.LIE) / (6 * sigma)
	pk := math.Min((limits.LSE-mean)/(3*sigma), (mean-limits.LIE)/(3*sigma))
	return &p, &pk
}

// Evaluate recomputes every index of a capability request. It never reads
// measurement data, only the statistics already returned by an analysis.
func Evaluate(req models.CapabilityRequest) models.CapabilityResponse {
	torque := ParseLimits(req.Limits.Torque)
	angle := ParseLimits(req.Limits.Angle)

	var resp models.CapabilityResponse
	resp.Capability.Torque = Capability(req.Stats.OK.Torque, torque)
	resp.Capability.Angle = Capability(req.Stats.OK.Angle, angle)
	resp.Performance.Torque = Performance(req.Stats.All.Torque, torque)
	resp.Performance.Angle = Performance(req.Stats.All.Angle, angle)
	return resp
}
