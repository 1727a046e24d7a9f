// Package api exposes the scanner over HTTP: catalogue lookup, scan
// control, an SSE stream of results, report downloads and metrics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/khanhnv2901/seca-host/internal/api/middleware"
	"github.com/khanhnv2901/seca-host/internal/application/scan"
	"github.com/khanhnv2901/seca-host/internal/domain/check"
	"github.com/khanhnv2901/seca-host/internal/report"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const checksPrefix = "/api/v1/checks/"

// ScanService is the part of scan.Scanner the API drives
type ScanService interface {
	Run(ctx context.Context, observer scan.Observer) (*check.Report, error)
	Cancel() bool
	Progress() scan.Progress
	Last() *check.Report
	Running() bool
	Checks() []check.Definition
}

type Config struct {
	Scanner ScanService
	// Gatherer backs /metrics; nil disables the endpoint
	Gatherer    prometheus.Gatherer
	AuthToken   string
	Logger      *zap.Logger
	CORSOrigins []string // Allowed CORS origins (empty = allow all)
	RateLimit   int      // Requests per second per IP (0 = disabled)
	RateBurst   int      // Burst size for rate limiter
	// BaseContext parents scans started over the API; defaults to Background
	BaseContext context.Context
}

type Server struct {
	cfg      Config
	logger   *zap.Logger
	mux      *http.ServeMux
	handler  http.Handler
	limiters *rateLimiterMap
	events   *Broker

	scanning atomic.Bool
	scans    sync.WaitGroup
}

func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseContext == nil {
		cfg.BaseContext = context.Background()
	}
	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		mux:      http.NewServeMux(),
		limiters: newRateLimiterMap(),
		events:   NewBroker(logger, len(cfg.Scanner.Checks())),
	}
	srv.routes()
	// RequestID -> Logging -> RateLimit -> CORS -> Auth -> Handler
	srv.handler = middleware.RequestID(srv.withLogging(srv.withRateLimit(srv.withCORS(srv.mux))))
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Events exposes the broker so other observers can be chained to it
func (s *Server) Events() *Broker {
	return s.events
}

// Wait blocks until every scan started over the API has returned
func (s *Server) Wait() {
	s.scans.Wait()
}

// Close stops background housekeeping and waits for running scans
func (s *Server) Close() {
	s.limiters.stop()
	s.scans.Wait()
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.Handle("/api/v1/checks", s.withAuth(http.HandlerFunc(s.handleChecks)))
	s.mux.Handle(checksPrefix, s.withAuth(http.HandlerFunc(s.handleCheckByID)))
	s.mux.Handle("/api/v1/scans", s.withAuth(http.HandlerFunc(s.handleScans)))
	s.mux.Handle("/api/v1/scans/current", s.withAuth(http.HandlerFunc(s.handleCurrentScan)))
	s.mux.Handle("/api/v1/scan-stream", s.withAuth(http.HandlerFunc(s.handleScanStream)))
	s.mux.Handle("/api/v1/report", s.withAuth(http.HandlerFunc(s.handleReport)))
	if s.cfg.Gatherer != nil {
		s.mux.Handle("/metrics", s.withAuth(promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"scanning": s.cfg.Scanner.Running(),
		"checks":   len(s.cfg.Scanner.Checks()),
	})
}

func (s *Server) handleChecks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	defs := s.cfg.Scanner.Checks()
	if q := r.URL.Query().Get("category"); q != "" {
		category, err := check.ParseCategory(q)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		filtered := make([]check.Definition, 0, len(defs))
		for _, def := range defs {
			if def.Category == category {
				filtered = append(filtered, def)
			}
		}
		defs = filtered
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) handleCheckByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, checksPrefix)
	if id == "" {
		s.writeError(w, r, http.StatusNotFound, errors.New("check ID required"))
		return
	}
	for _, def := range s.cfg.Scanner.Checks() {
		if def.ID == id {
			writeJSON(w, http.StatusOK, def)
			return
		}
	}
	s.writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %s", sharedErrors.ErrCheckNotFound, id))
}

func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r)
		return
	}
	if !s.scanning.CompareAndSwap(false, true) {
		s.writeError(w, r, http.StatusConflict, sharedErrors.ErrScanInProgress)
		return
	}
	if s.cfg.Scanner.Running() {
		s.scanning.Store(false)
		s.writeError(w, r, http.StatusConflict, sharedErrors.ErrScanInProgress)
		return
	}

	logger := s.requestLogger(r)
	s.scans.Add(1)
	go func() {
		defer s.scans.Done()
		defer s.scanning.Store(false)
		if _, err := s.cfg.Scanner.Run(s.cfg.BaseContext, s.events); err != nil {
			logger.Warn("scan finished with error", zap.Error(err))
		}
	}()

	writeJSON(w, http.StatusAccepted, scan.Progress{
		State:     scan.StateRunning.String(),
		Total:     len(s.cfg.Scanner.Checks()),
		StartedAt: time.Now().UTC(),
	})
}

func (s *Server) handleCurrentScan(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.cfg.Scanner.Progress())
	case http.MethodDelete:
		if !s.cfg.Scanner.Cancel() {
			s.writeError(w, r, http.StatusConflict, errors.New("no scan running"))
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "cancelling"})
	default:
		s.methodNotAllowed(w, r)
	}
}

func (s *Server) handleScanStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, http.StatusInternalServerError, errors.New("streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates, unsubscribe := s.events.Subscribe()
	defer unsubscribe()
	ctx := r.Context()
	for {
		select {
		case evt, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				s.logger.Error("failed to marshal scan event", zap.Error(err))
				continue
			}
			if !s.writeStreamChunk(w, []byte("event: "+evt.Type+"\n")) {
				return
			}
			if !s.writeStreamChunk(w, []byte("data: ")) {
				return
			}
			if !s.writeStreamChunk(w, payload) {
				return
			}
			if !s.writeStreamChunk(w, []byte("\n\n")) {
				return
			}
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r)
		return
	}
	format := report.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := report.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		format = parsed
	}
	last := s.cfg.Scanner.Last()
	if last == nil {
		s.writeError(w, r, http.StatusNotFound, sharedErrors.ErrNoReport)
		return
	}
	data, err := report.Render(last, format)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if format == report.FormatPDF {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(last, format)))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write response", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()

	// 5xx details stay in the server log
	if status >= 500 {
		s.requestLogger(r).Error("internal_server_error",
			zap.Error(err),
			zap.Int("status", status),
		)
		msg = "internal server error"
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLogger creates a logger with request context (request ID, method, path)
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return s.logger.With(
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func (s *Server) writeStreamChunk(w http.ResponseWriter, data []byte) bool {
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write stream chunk", zap.Error(err))
		return false
	}
	return true
}
