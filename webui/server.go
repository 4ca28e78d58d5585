// Package webui provides the HTTP surface of the relay.
// This file contains the WebUIServer that wires the pieces together.
package webui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aiphoto_backend/imagegen"
	"aiphoto_backend/logging"

	"go.uber.org/zap"
)

// WebUIServer is the HTTP server for the relay. It wires together:
//   - GenerateAPI for POST /api/generate
//   - StaticAssetHandler for the embedded client page
//   - LoggingMiddleware for request logging
type WebUIServer struct {
	httpServer    *http.Server
	mux           *http.ServeMux
	config        ServerConfig
	logger        *logging.Logger
	loggingMw     *LoggingMiddleware
	generateAPI   *GenerateAPI
	staticHandler *StaticAssetHandler
}

// ServerConfig configures the WebUIServer.
type ServerConfig struct {
	// Port to listen on (default: 5173)
	Port int

	// Host to bind to; empty binds all interfaces
	Host string

	// ReadTimeout for HTTP requests (default: 30s)
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses. Image generation is slow, so this
	// must comfortably exceed the upstream timeout (default: 120s).
	WriteTimeout time.Duration

	// IdleTimeout for keep-alive connections (default: 120s)
	IdleTimeout time.Duration

	// ShutdownTimeout for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration

	// LogSkipPaths are paths excluded from request logging
	LogSkipPaths []string
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:            5173,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    120 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		LogSkipPaths:    []string{"/health"},
	}
}

// NewServer creates a WebUIServer over the given image provider.
// The logger may be nil.
func NewServer(config ServerConfig, provider imagegen.Provider, logger *logging.Logger) *WebUIServer {
	if logger == nil {
		logger = logging.NewNop()
	}

	mux := http.NewServeMux()

	server := &WebUIServer{
		mux:           mux,
		config:        config,
		logger:        logger,
		loggingMw:     NewLoggingMiddleware(logger.Named("http"), config.LogSkipPaths),
		generateAPI:   NewGenerateAPI(provider, logger.Named("generate")),
		staticHandler: NewStaticAssetHandler("/static"),
	}

	server.setupRoutes()

	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server.httpServer = &http.Server{
		Addr:         addr,
		Handler:      server.rootHandler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	logger.Info("server created", zap.String("addr", addr))

	return server
}

// setupRoutes configures all HTTP routes.
func (s *WebUIServer) setupRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.generateAPI.RegisterRoutes(s.mux)
	s.staticHandler.RegisterRoutes(s.mux)
	s.mux.HandleFunc("/", s.handleRoot)
}

// rootHandler wraps the mux with middleware.
func (s *WebUIServer) rootHandler() http.Handler {
	return s.loggingMw.Handler(s.mux)
}

// handleRoot serves the client page at the exact root path.
func (s *WebUIServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.staticHandler.ServeIndex()(w, r)
}

// handleHealth handles health check requests.
func (s *WebUIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *WebUIServer) Start() error {
	s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *WebUIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown error: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Addr returns the server's configured address.
func (s *WebUIServer) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wired root handler. Tests use this with httptest.
func (s *WebUIServer) Handler() http.Handler {
	return s.httpServer.Handler
}
