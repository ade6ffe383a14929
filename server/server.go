// Package server exposes the analysis service over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/pivolan/torque_analyzer/analysis"
	"github.com/pivolan/torque_analyzer/domain/models"
)

const (
	FormFile        = "csvfile"
	DefaultMaxBytes = 5 << 20
)

var (
	errTooLarge       = errors.New("file too large")
	errInvalidRequest = errors.New("invalid capability request")
)

type Server struct {
	service  *analysis.Service
	logger   *slog.Logger
	metrics  *Metrics
	maxBytes int64
}

func New(service *analysis.Service, logger *slog.Logger, maxBytes int64) *Server {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		service:  service,
		logger:   logger.With(slog.String("component", "http")),
		metrics:  NewMetrics(),
		maxBytes: maxBytes,
	}
}

// Routes builds the router with the API, health and metrics endpoints.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(StructuredLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Post("/get-headers", s.getHeaders)
		r.Post("/analyze", s.analyze)
		r.Post("/capability", s.capability)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) getHeaders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name, data, err := s.readUpload(w, r)
	var headers []string
	if err == nil {
		headers, err = s.service.ListHeaders(name, data)
	}
	s.metrics.observe("get-headers", outcome(err), time.Since(start).Seconds())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string][]string{"headers": headers})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name, data, err := s.readUpload(w, r)
	var result models.AnalysisResult
	if err == nil {
		mapping := models.ColumnMapping{
			TorqueStatus: r.FormValue("torqueStatusColumn"),
			TorqueValue:  r.FormValue("torqueValueColumn"),
			AngleStatus:  r.FormValue("angleStatusColumn"),
			AngleValue:   r.FormValue("angleValueColumn"),
		}
		result, err = s.service.Analyze(name, data, mapping)
	}
	s.metrics.observe("analyze", outcome(err), time.Since(start).Seconds())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.countValues(result.RawData)
	render.JSON(w, r, result)
}

func (s *Server) capability(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req models.CapabilityRequest
	if err := render.DecodeJSON(http.MaxBytesReader(w, r.Body, s.maxBytes), &req); err != nil {
		s.metrics.observe("capability", "input_error", time.Since(start).Seconds())
		s.writeError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	resp := s.service.Capability(req)
	s.metrics.observe("capability", "ok", time.Since(start).Seconds())
	render.JSON(w, r, resp)
}

// readUpload returns the name and content of the csvfile form field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	if r.ContentLength > s.maxBytes {
		return "", nil, errTooLarge
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, errTooLarge
		}
		return "", nil, analysis.ErrNoFile
	}
	file, header, err := r.FormFile(FormFile)
	if err != nil {
		return "", nil, analysis.ErrNoFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	return header.Filename, data, nil
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, errTooLarge) {
		return "input_error"
	}
	return analysis.KindOf(err).String() + "_error"
}

// writeError maps err onto the JSON error response of its kind.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "server error: "+err.Error()
	switch {
	case errors.Is(err, errTooLarge):
		status, message = http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, errInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	default:
		switch analysis.KindOf(err) {
		case analysis.KindInput:
			status, message = http.StatusBadRequest, err.Error()
		case analysis.KindParse:
			status, message = http.StatusUnprocessableEntity, "error processing CSV: "+err.Error()
		}
	}
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}
