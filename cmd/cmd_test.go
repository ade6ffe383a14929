package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/torque_analyzer/domain/models"
)

const fasteningCSV = "Torque Status,Torque,Angle Status,Angle\n" +
	"OK,10.5,OK,30\n" +
	"OK,11,OK,31\n" +
	"NOK,\"9,9\",NOK,28\n"

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(fasteningCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestHeadersCmd(t *testing.T) {
	out, err := run(t, "headers", writeCSV(t))
	require.NoError(t, err)
	assert.Equal(t, "Torque Status\nTorque\nAngle Status\nAngle\n", out)
}

func TestAnalyzeCmd(t *testing.T) {
	out, err := run(t, "analyze", writeCSV(t),
		"--torque-status", "Torque Status", "--torque", "Torque",
		"--angle-status", "Angle Status", "--angle", "Angle",
		"--torque-lie", "9", "--torque-lse", "12,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Torque OK")
	assert.Contains(t, out, "10.750")
	assert.Contains(t, out, "Cpk")
}

func TestAnalyzeCmdJSON(t *testing.T) {
	out, err := run(t, "analyze", writeCSV(t), "--torque", "Torque", "--angle", "Angle", "--json")
	require.NoError(t, err)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	// without status columns every value is OK
	assert.Equal(t, []float64{10.5, 11, 9.9}, result.RawData.OKTorque)
	assert.Empty(t, result.RawData.NOKTorque)
}

func TestAnalyzeCmdRequiresMapping(t *testing.T) {
	_, err := run(t, "analyze", writeCSV(t), "--torque", "Torque")
	assert.Error(t, err)
}

func TestReportCmd(t *testing.T) {
	target := filepath.Join(t.TempDir(), "report.html")
	out, err := run(t, "report", writeCSV(t), "--torque", "Torque", "--angle", "Angle", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	html, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Histogram Torque (OK)")
}
