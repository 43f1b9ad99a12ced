// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, core orchestration, output serialization.
// The API NEVER performs calculation logic.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"payoff/core/determinism"
	"payoff/core/explanation"
	"payoff/core/form"
	"payoff/core/locale"
	"payoff/core/output"
	"payoff/core/types"
	"payoff/internal/config"
	"payoff/internal/errors"
	"payoff/internal/logging"
	"payoff/internal/metrics"
)

// RequestIDHeader carries the request ID on every response
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	cfg     *config.Config
	logger  *zap.Logger

	// metrics is nil when disabled in config
	metrics *metrics.Metrics
}

// NewServer creates a new API server from cfg
func NewServer(version string, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Logger
	}

	var m *metrics.Metrics
	if cfg.Server.MetricsEnabled {
		m = metrics.New()
	}

	s := &Server{
		handler: NewHandler(opts, cfg.Locale(), cfg.Currency(), cfg.Server.MaxBatchItems, m),
		mux:     http.NewServeMux(),
		version: version,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}

	s.registerRoutes()
	return s, nil
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.handle("POST /calculate", s.handleCalculate)
	s.handle("POST /batch", s.handleBatch)
	s.handle("GET /health", s.handleHealth)

	// Supporting endpoints
	s.handle("GET /version", s.handleVersion)
	s.handle("GET /options", s.handleOptions)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
}

// handle wraps h with request IDs, a scoped logger and latency metrics
func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		logger := s.logger.With(zap.String("request_id", requestID), zap.String("route", pattern))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r.WithContext(logging.WithContext(r.Context(), logger)))

		logger.Debug("request served",
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
		if s.metrics != nil {
			s.metrics.ObserveRequest(pattern, rec.status, time.Since(start))
		}
	})
}

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req CalculateRequest
	if !s.decode(w, r, &req) {
		return
	}

	inputHash, err := determinism.InputHash(&req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Execute core (NO CALCULATION LOGIC HERE)
	item, settings, err := s.handler.calculate(ctx, &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meta := settings.metadata()
	meta.InputHash = inputHash
	meta.EngineVersion = s.version
	meta.DurationMs = time.Since(start).Milliseconds()

	resp := &CalculateResponse{
		RequestID: w.Header().Get(RequestIDHeader),
		Timestamp: time.Now().UTC(),
		Status:    "success",
		Result:    output.NewResultDTO(item, settings.currency, settings.locale),
		Metadata:  meta,
	}
	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain {
		resp.Explanation = explanation.Explain(item)
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleBatch handles POST /batch
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req BatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	inputHash, err := determinism.InputHash(&req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results, summary, settings, err := s.handler.batch(ctx, &req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	meta := settings.metadata()
	meta.InputHash = inputHash
	meta.EngineVersion = s.version
	meta.DurationMs = time.Since(start).Milliseconds()

	s.writeJSON(w, &BatchResponse{
		RequestID: w.Header().Get(RequestIDHeader),
		Timestamp: time.Now().UTC(),
		Status:    "success",
		Results:   results,
		Summary:   summary,
		Metadata:  meta,
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "payoff",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleOptions handles GET /options
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	resp := OptionsResponse{
		Formats: output.Builtin(true).Formats(),
		Defaults: Defaults{
			Mode:          s.handler.defaults.Mode.String(),
			Banding:       s.handler.defaults.Banding.String(),
			Locale:        string(s.handler.locale),
			Currency:      s.handler.currency.String(),
			PeriodUnit:    form.DefaultPeriodUnit.String(),
			FrequencyUnit: form.DefaultFrequencyUnit.String(),
		},
	}
	for _, u := range types.PeriodUnits {
		resp.PeriodUnits = append(resp.PeriodUnits, u.String())
	}
	for _, u := range types.FrequencyUnits {
		resp.FrequencyUnits = append(resp.FrequencyUnits, u.String())
	}
	for _, m := range types.Modes {
		resp.Modes = append(resp.Modes, m.String())
	}
	for _, b := range types.Bandings {
		resp.Bandings = append(resp.Bandings, b.String())
	}
	for _, l := range locale.Locales {
		resp.Locales = append(resp.Locales, string(l))
	}
	for _, c := range types.Currencies {
		resp.Currencies = append(resp.Currencies, c.String())
	}
	s.writeJSON(w, resp, http.StatusOK)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Parsing("invalid JSON body", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError maps a domain error to a status code and error body
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	typ := errors.TypeOf(err)
	switch typ {
	case errors.TypeInput, errors.TypeParsing, errors.TypeNotSupported:
		status = http.StatusBadRequest
	case errors.TypeDegenerate:
		status = http.StatusUnprocessableEntity
	}

	detail := ErrorDetail{Code: string(typ), Message: err.Error()}
	if fields := fieldErrors(err); len(fields) > 0 {
		detail.Fields = fields
	}

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("code", detail.Code), zap.Error(err))
	}

	s.writeJSON(w, &ErrorResponse{
		RequestID: w.Header().Get(RequestIDHeader),
		Status:    "error",
		Error:     detail,
	}, status)
}

// fieldErrors collects per-field messages from validation errors. Batch
// items are prefixed with their index.
func fieldErrors(err error) map[string]string {
	if verr, ok := err.(*form.ValidationError); ok {
		return verr.Fields()
	}

	var derr *errors.Error
	if !errors.As(err, &derr) || derr.Cause == nil {
		return nil
	}
	out := make(map[string]string)
	for _, e := range multierr.Errors(derr.Cause) {
		ie, ok := e.(*itemError)
		if !ok {
			continue
		}
		var verr *form.ValidationError
		if !errors.As(ie.err, &verr) {
			continue
		}
		for field, msg := range verr.Fields() {
			out[fmt.Sprintf("items[%d].%s", ie.index, field)] = msg
		}
	}
	return out
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Metrics returns the server's collectors, or nil when disabled
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s,
		ReadHeaderTimeout: time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("version", s.version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Internal("server failed", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Debug("received shutdown signal, initiating graceful shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Internal("server shutdown failed", err)
	}
	s.logger.Info("server shutdown completed")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
