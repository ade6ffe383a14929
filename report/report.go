// Package report formats analysis results as plain text tables.
package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pivolan/torque_analyzer/domain/models"
)

const NotAvailable = "n/a"

// Style selects the table rendering.
type Style int

const (
	StyleDefault Style = iota
	StyleMarkdown
)

type statsRow struct {
	name  string
	stats models.Stats
}

// StatsTable renders count, mean, median, stddev, skewness and kurtosis for
// every bucket.
func StatsTable(groups models.StatsGroups, style Style) string {
	rows := []statsRow{
		{"Torque OK", groups.OK.Torque},
		{"Torque NOK", groups.NOK.Torque},
		{"Torque all", groups.All.Torque},
		{"Angle OK", groups.OK.Angle},
		{"Angle NOK", groups.NOK.Angle},
		{"Angle all", groups.All.Angle},
	}

	t := newWriter()
	t.AppendHeader(table.Row{"Bucket", "Count", "Mean", "Median", "StdDev", "Skewness", "Kurtosis"})
	for _, r := range rows {
		s := r.stats
		t.AppendRow(table.Row{r.name, s.Count, formatValue(s.Mean), formatValue(s.Median),
			formatValue(s.StdDev), formatValue(s.Skewness), formatValue(s.Kurtosis)})
	}
	return render(t, style)
}

// CapabilityTable renders Cp, Cpk, Pp and Ppk of torque and angle.
func CapabilityTable(resp models.CapabilityResponse, style Style) string {
	t := newWriter()
	t.AppendHeader(table.Row{"Measurement", "Cp", "Cpk", "Pp", "Ppk"})
	t.AppendRow(table.Row{"Torque",
		formatValue(resp.Capability.Torque.Cp), formatValue(resp.Capability.Torque.Cpk),
		formatValue(resp.Performance.Torque.Pp), formatValue(resp.Performance.Torque.Ppk)})
	t.AppendRow(table.Row{"Angle",
		formatValue(resp.Capability.Angle.Cp), formatValue(resp.Capability.Angle.Cpk),
		formatValue(resp.Performance.Angle.Pp), formatValue(resp.Performance.Angle.Ppk)})
	return render(t, style)
}

// BoxPlotTable renders the five number summary and outlier count of every bucket.
func BoxPlotTable(charts models.Charts, style Style) string {
	t := newWriter()
	t.AppendHeader(table.Row{"Bucket", "Min", "Q1", "Median", "Q3", "Max", "IQR", "Outliers"})
	for _, r := range []struct {
		name string
		box  models.BoxPlot
	}{
		{"Torque OK", charts.OKTorque.BoxPlot},
		{"Torque NOK", charts.NOKTorque.BoxPlot},
		{"Angle OK", charts.OKAngle.BoxPlot},
		{"Angle NOK", charts.NOKAngle.BoxPlot},
	} {
		b := r.box
		if b.Count == 0 {
			t.AppendRow(table.Row{r.name, NotAvailable, NotAvailable, NotAvailable, NotAvailable, NotAvailable, NotAvailable, 0})
			continue
		}
		t.AppendRow(table.Row{r.name, formatFloat(b.Min), formatFloat(b.Q1), formatFloat(b.Median),
			formatFloat(b.Q3), formatFloat(b.Max), formatFloat(b.IQR), len(b.Outliers)})
	}
	return render(t, style)
}

// SampleTable renders the statistics of a single ad hoc sample as
// name/value rows.
func SampleTable(s models.Stats, b models.BoxPlot, style Style) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRows([]table.Row{
		{"Count", s.Count},
		{"Mean", formatValue(s.Mean)},
		{"Median", formatValue(s.Median)},
		{"StdDev", formatValue(s.StdDev)},
		{"Skewness", formatValue(s.Skewness)},
		{"Kurtosis", formatValue(s.Kurtosis)},
	})
	if b.Count > 0 {
		t.AppendRows([]table.Row{
			{"Min", formatFloat(b.Min)},
			{"Q1", formatFloat(b.Q1)},
			{"Q3", formatFloat(b.Q3)},
			{"Max", formatFloat(b.Max)},
			{"IQR", formatFloat(b.IQR)},
			{"Outliers", len(b.Outliers)},
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.SetStyle(table.StyleDefault)
	return render(t, style)
}

func newWriter() table.Writer {
	t := table.NewWriter()
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})
	t.SetStyle(table.StyleDefault)
	return t
}

func render(t table.Writer, style Style) string {
	if style == StyleMarkdown {
		return t.RenderMarkdown()
	}
	return t.Render()
}

func formatValue(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
