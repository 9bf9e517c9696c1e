// Package http serves the command menu, invocations, health checks and metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"copytext/internal/core"
	"copytext/pkg/spuri"
)

const (
	// shutdownTimeout bounds graceful shutdown
	shutdownTimeout = 10 * time.Second
	// maxBodyBytes limits invocation request bodies
	maxBodyBytes = 64 << 10
	serviceName  = "copytext"
)

// Invoker is the dispatcher surface the server exposes.
type Invoker interface {
	Menu(selection []string) []core.MenuEntry
	Invoke(ctx context.Context, commandID string, selection []string) core.Result
}

type Server struct {
	config  *core.ServerConfig
	logger  *zap.Logger
	server  *http.Server
	metrics *Metrics
}

type Metrics struct {
	registry *prometheus.Registry

	InvocationsTotal *prometheus.CounterVec
	LookupsTotal     *prometheus.CounterVec
	LookupDuration   *prometheus.HistogramVec
	RequestsTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		InvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copytext_invocations_total",
				Help: "Total number of command invocations",
			},
			[]string{"command", "status"},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copytext_lookups_total",
				Help: "Total number of metadata lookups",
			},
			[]string{"kind", "status"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "copytext_lookup_duration_seconds",
				Help:    "Time spent in metadata lookups",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copytext_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"endpoint", "code"},
		),
	}

	metrics.registry.MustRegister(
		metrics.InvocationsTotal,
		metrics.LookupsTotal,
		metrics.LookupDuration,
		metrics.RequestsTotal,
	)

	return metrics
}

// RecordInvocation implements core.Recorder.
func (m *Metrics) RecordInvocation(command, status string) {
	m.InvocationsTotal.WithLabelValues(command, status).Inc()
}

// RecordLookup implements core.Recorder.
func (m *Metrics) RecordLookup(kind, status string, duration time.Duration) {
	m.LookupsTotal.WithLabelValues(kind, status).Inc()
	m.LookupDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *Metrics) recordRequest(endpoint string, code int) {
	m.RequestsTotal.WithLabelValues(endpoint, fmt.Sprint(code)).Inc()
}

func NewServer(config *core.ServerConfig, invoker Invoker, metrics *Metrics, logger *zap.Logger) *Server {
	mux := setupRoutes(invoker, metrics, logger)

	return &Server{
		config:  config,
		logger:  logger,
		server:  createHTTPServer(config, mux),
		metrics: metrics,
	}
}

func createHTTPServer(config *core.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
}

func setupRoutes(invoker Invoker, metrics *Metrics, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", statusHandler(`{"status":"ok","service":"`+serviceName+`"}`, logger))
	mux.HandleFunc("GET /readyz", statusHandler(`{"status":"ready","service":"`+serviceName+`"}`, logger))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /menu", menuHandler(invoker, metrics, logger))
	mux.HandleFunc("POST /invoke", invokeHandler(invoker, metrics, logger))
	mux.HandleFunc("GET /{$}", homeHandler(logger))

	return mux
}

func statusHandler(body string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(body)); err != nil {
			logger.Debug("Failed to write status response", zap.Error(err))
		}
	}
}

type menuResponse struct {
	URIs     []string         `json:"uris"`
	Commands []core.MenuEntry `json:"commands"`
}

func menuHandler(invoker Invoker, metrics *Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uris := spuri.NormalizeAll(r.URL.Query()["uri"])
		commands := invoker.Menu(uris)
		if commands == nil {
			commands = []core.MenuEntry{}
		}

		writeJSON(w, http.StatusOK, menuResponse{URIs: uris, Commands: commands}, logger)
		metrics.recordRequest("menu", http.StatusOK)
	}
}

type invokeRequest struct {
	Command string   `json:"command"`
	URIs    []string `json:"uris"`
}

type invokeResponse struct {
	InvocationID string `json:"invocation_id"`
	Command      string `json:"command"`
	Status       string `json:"status"`
	Text         string `json:"text,omitempty"`
	Notice       string `json:"notice,omitempty"`
	Error        string `json:"error,omitempty"`
}

func invokeHandler(invoker Invoker, metrics *Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req invokeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, invokeResponse{Status: core.StatusError, Error: "invalid request body"}, logger)
			metrics.recordRequest("invoke", http.StatusBadRequest)
			return
		}

		result := invoker.Invoke(r.Context(), req.Command, spuri.NormalizeAll(req.URIs))
		resp := invokeResponse{
			InvocationID: result.InvocationID,
			Command:      result.Command,
			Status:       result.Status,
			Text:         result.Text,
			Notice:       result.Notice,
		}

		code := http.StatusOK
		if result.Err != nil {
			resp.Error = result.Err.Error()
			code = http.StatusUnprocessableEntity
			if errors.Is(result.Err, core.ErrUnknownCommand) {
				code = http.StatusNotFound
			}
		}

		writeJSON(w, code, resp, logger)
		metrics.recordRequest("invoke", code)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("Failed to write response", zap.Error(err))
	}
}

func homeHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>copytext</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { color: #333; }
        .endpoint { margin: 10px 0; }
        .endpoint a { text-decoration: none; color: #0066cc; }
        .endpoint a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <h1 class="header">copytext</h1>
    <p>Copy Spotify names, song and artist lines and image links to the clipboard</p>

    <h2>Endpoints</h2>
    <div class="endpoint"><code>GET /menu?uri=spotify:track:...</code> - Applicable commands</div>
    <div class="endpoint"><code>POST /invoke</code> - Run a command</div>
    <div class="endpoint"><a href="/metrics">Metrics</a> - Prometheus metrics</div>
    <div class="endpoint"><a href="/healthz">Health</a> - Health check</div>
    <div class="endpoint"><a href="/readyz">Ready</a> - Readiness check</div>
</body>
</html>`)); err != nil {
			logger.Debug("Failed to write home page", zap.Error(err))
		}
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("addr", s.server.Addr))

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
		}
	}()

	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	return nil
}

func (s *Server) GetMetrics() *Metrics {
	return s.metrics
}
