package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/statistics"
)

func TestStatsTable(t *testing.T) {
	var groups models.StatsGroups
	groups.OK.Torque = statistics.Compute([]float64{10.5, 11})
	groups.NOK.Torque = statistics.Compute([]float64{9.9})
	groups.All.Torque = statistics.Compute([]float64{10.5, 11, 9.9})

	out := StatsTable(groups, StyleDefault)
	assert.Contains(t, out, "Torque OK")
	assert.Contains(t, out, "10.750")
	assert.Contains(t, out, NotAvailable)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// border, header, border, six rows, border
	assert.Len(t, lines, 10)
}

func TestStatsTableMarkdown(t *testing.T) {
	out := StatsTable(models.StatsGroups{}, StyleMarkdown)
	assert.True(t, strings.HasPrefix(strings.ToLower(out), "| bucket |"))
	assert.Contains(t, out, "| Angle all |")
}

func TestCapabilityTable(t *testing.T) {
	one := 1.0
	var resp models.CapabilityResponse
	resp.Capability.Torque = models.CapabilityResult{Cp: &one, Cpk: &one}

	out := CapabilityTable(resp, StyleDefault)
	assert.Contains(t, out, "1.000")
	assert.Contains(t, out, "Angle")
	assert.Equal(t, 6, strings.Count(out, NotAvailable))
}

func TestBoxPlotTable(t *testing.T) {
	var charts models.Charts
	charts.OKTorque.BoxPlot = statistics.BoxPlot([]float64{100, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	out := BoxPlotTable(charts, StyleDefault)
	assert.Contains(t, out, "3.250")
	assert.Contains(t, out, "7.750")
	assert.Contains(t, out, "Angle NOK")
}

func TestSampleTable(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := SampleTable(statistics.Compute(values), statistics.BoxPlot(values), StyleDefault)
	assert.Contains(t, out, "Kurtosis")
	assert.Contains(t, out, "-1.200")
	assert.Contains(t, out, "Outliers")

	out = SampleTable(statistics.Compute(nil), statistics.BoxPlot(nil), StyleDefault)
	assert.NotContains(t, out, "Outliers")
	assert.Equal(t, 5, strings.Count(out, NotAvailable))
}
