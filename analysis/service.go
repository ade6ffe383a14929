// Package analysis ties parsing, classification, statistics and chart
// derivation together into the request level operations.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/torque_analyzer/capability"
	"github.com/pivolan/torque_analyzer/csvreader"
	"github.com/pivolan/torque_analyzer/domain/models"
	"github.com/pivolan/torque_analyzer/plot"
	"github.com/pivolan/torque_analyzer/sample"
	"github.com/pivolan/torque_analyzer/statistics"
)

type Service struct {
	deriver  *plot.Deriver
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(deriver *plot.Deriver, logger *slog.Logger) *Service {
	if deriver == nil {
		deriver = plot.NewDeriver(plot.DefaultBins, plot.DefaultPoints)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{deriver: deriver, validate: validator.New(), logger: logger}
}

// decode unpacks an upload. A nil payload means no file was sent at all.
func decode(name string, data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrNoFile
	}
	text, err := csvreader.Decode(name, data)
	if errors.Is(err, csvreader.ErrDecodedTooLarge) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	return text, nil
}

// ListHeaders returns the column names of the uploaded CSV.
func (s *Service) ListHeaders(name string, data []byte) ([]string, error) {
	text, err := decode(name, data)
	if err != nil {
		return nil, err
	}
	headers, err := csvreader.ReadHeaders(text)
	if err != nil {
		return nil, fmt.Errorf("read headers of %s: %w", name, err)
	}
	s.logger.Debug("headers read", slog.String("file", name), slog.Int("columns", len(headers)))
	return headers, nil
}

// Analyze classifies every record of the upload and computes statistics and
// chart data for each bucket.
func (s *Service) Analyze(name string, data []byte, mapping models.ColumnMapping) (models.AnalysisResult, error) {
	if data == nil {
		return models.AnalysisResult{}, ErrNoFile
	}
	mapping = models.ColumnMapping{
		TorqueStatus: strings.TrimSpace(mapping.TorqueStatus),
		TorqueValue:  strings.TrimSpace(mapping.TorqueValue),
		AngleStatus:  strings.TrimSpace(mapping.AngleStatus),
		AngleValue:   strings.TrimSpace(mapping.AngleValue),
	}
	if err := s.validate.Struct(mapping); err != nil {
		s.logger.Debug("column mapping rejected", slog.String("reason", err.Error()))
		return models.AnalysisResult{}, ErrIncompleteMapping
	}

	text, err := decode(name, data)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	records, err := csvreader.NewRecordReader(text)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("open %s: %w", name, err)
	}
	buckets, err := sample.Classify(records, mapping)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("classify %s: %w", name, err)
	}

	result := s.build(buckets)
	result.AnalysisID = uuid.NewV4().String()
	result.FileName = name
	s.logger.Info("analysis complete",
		slog.String("analysis_id", result.AnalysisID),
		slog.String("file", name),
		slog.Int("torque_ok", len(buckets.OKTorque)),
		slog.Int("torque_nok", len(buckets.NOKTorque)),
		slog.Int("angle_ok", len(buckets.OKAngle)),
		slog.Int("angle_nok", len(buckets.NOKAngle)),
	)
	return result, nil
}

func (s *Service) build(b sample.Buckets) models.AnalysisResult {
	okTorque, nokTorque := orEmpty(b.OKTorque), orEmpty(b.NOKTorque)
	okAngle, nokAngle := orEmpty(b.OKAngle), orEmpty(b.NOKAngle)
	allTorque, allAngle := orEmpty(b.AllTorque()), orEmpty(b.AllAngle())

	var result models.AnalysisResult
	result.Stats.OK = models.MeasurementStats{Torque: statistics.Compute(okTorque), Angle: statistics.Compute(okAngle)}
	result.Stats.NOK = models.MeasurementStats{Torque: statistics.Compute(nokTorque), Angle: statistics.Compute(nokAngle)}
	result.Stats.All = models.MeasurementStats{Torque: statistics.Compute(allTorque), Angle: statistics.Compute(allAngle)}

	result.RawData = models.RawData{OKTorque: okTorque, OKAngle: okAngle, NOKTorque: nokTorque, NOKAngle: nokAngle}
	result.AllTorque = allTorque
	result.AllAngle = allAngle
	result.ControlChartData = models.ControlChartData{
		Torque: plot.IndexSeries(okTorque),
		Angle:  plot.IndexSeries(okAngle),
	}
	result.Charts = models.Charts{
		OKTorque:  s.deriver.Bucket(okTorque, result.Stats.OK.Torque, true),
		OKAngle:   s.deriver.Bucket(okAngle, result.Stats.OK.Angle, true),
		NOKTorque: s.deriver.Bucket(nokTorque, result.Stats.NOK.Torque, false),
		NOKAngle:  s.deriver.Bucket(nokAngle, result.Stats.NOK.Angle, false),
	}
	return result
}

// Capability recomputes capability and performance indices from previously
// returned statistics and user limits.
func (s *Service) Capability(req models.CapabilityRequest) models.CapabilityResponse {
	return capability.Evaluate(req)
}

func orEmpty(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return values
}
