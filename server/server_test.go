package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/torque_analyzer/analysis"
	"github.com/pivolan/torque_analyzer/domain/models"
)

const fasteningCSV = "Torque Status,Torque,Angle Status,Angle\n" +
	"OK,10.5,OK,30\n" +
	"OK,11,OK,31\n" +
	"NOK,\"9,9\",NOK,28\n"

func newTestServer(maxBytes int64) http.Handler {
	return New(analysis.NewService(nil, nil), nil, maxBytes).Routes()
}

func multipartRequest(t *testing.T, path string, file string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if file != "" {
		fw, err := mw.CreateFormFile(FormFile, "data.csv")
		require.NoError(t, err)
		_, err = io.WriteString(fw, file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, multipartRequest(t, "/api/get-headers", fasteningCSV, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Headers []string `json:"headers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Torque Status", "Torque", "Angle Status", "Angle"}, body.Headers)
}

func TestAnalyze(t *testing.T) {
	fields := map[string]string{
		"torqueStatusColumn": "Torque Status",
		"torqueValueColumn":  "Torque",
		"angleStatusColumn":  "Angle Status",
		"angleValueColumn":   "Angle",
	}
	rec := httptest.NewRecorder()
	newTestServer(0).ServeHTTP(rec, multipartRequest(t, "/api/analyze", fasteningCSV, fields))

	require.Equal(t, http.StatusOK, rec.Code)
	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "data.csv", result.FileName)
	assert.Equal(t, []float64{10.5, 11}, result.RawData.OKTorque)
	assert.Equal(t, []float64{9.9}, result.RawData.NOKTorque)
	assert.Equal(t, 3, result.Stats.All.Torque.Count)
	assert.InDelta(t, 10.75, *result.Stats.OK.Torque.Mean, 1e-12)
	assert.Nil(t, result.Stats.NOK.Torque.StdDev)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"analysisId", "stats", "rawData", "all_torque", "all_angle", "controlChartData", "charts"} {
		assert.Contains(t, raw, key)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	complete := map[string]string{"torqueValueColumn": "Torque", "angleValueColumn": "Angle"}
	tests := []struct {
		name    string
		file    string
		fields  map[string]string
		status  int
		message string
	}{
		{"no file", "", complete, http.StatusBadRequest, "no file submitted"},
		{"incomplete mapping", fasteningCSV, map[string]string{"torqueValueColumn": "Torque"}, http.StatusBadRequest, "incomplete column mapping"},
		{"unknown column", fasteningCSV, map[string]string{"torqueValueColumn": "Force", "angleValueColumn": "Angle"}, http.StatusBadRequest, "unknown column"},
		{"malformed csv", "Torque,Angle\n\"1,2\n", complete, http.StatusUnprocessableEntity, "error processing CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(0).ServeHTTP(rec, multipartRequest(t, "/api/analyze", tt.file, tt.fields))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, decodeError(t, rec), tt.message)
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(64).ServeHTTP(rec, multipartRequest(t, "/api/get-headers", fasteningCSV, nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCapability(t *testing.T) {
	body := `{
		"stats": {"ok": {"torque": {"count": 30, "mean": 10, "stddev": 1}}, "all": {"torque": {"count": 30, "mean": 10, "stddev": 1}}},
		"limits": {"torque": {"lie": "7", "lse": "13"}, "angle": {"lie": "", "lse": ""}}
	}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/capability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestServer(0).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.CapabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Capability.Torque.Cp)
	assert.InDelta(t, 1.0, *resp.Capability.Torque.Cp, 1e-12)
	assert.InDelta(t, 1.0, *resp.Capability.Torque.Cpk, 1e-12)
	assert.Nil(t, resp.Capability.Angle.Cp)
	assert.Contains(t, rec.Body.String(), `"cp":null`)
}

func TestCapabilityInvalidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/capability", strings.NewReader("{"))
	newTestServer(0).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "invalid capability request")
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, multipartRequest(t, "/api/get-headers", fasteningCSV, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `torque_analyzer_requests_total{endpoint="get-headers",outcome="ok"} 1`)
}
