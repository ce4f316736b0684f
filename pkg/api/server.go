package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourusername/sbgengine/pkg/engine"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host            string        // Host to bind to (default "localhost")
	Port            int           // Port to listen on (default 8080)
	ReadTimeout     time.Duration // Read timeout (default 30s)
	WriteTimeout    time.Duration // Write timeout (default 30s); SSE streams are bounded by it
	IdleTimeout     time.Duration // Idle timeout (default 60s)
	ShutdownTimeout time.Duration // Grace period on SIGINT/SIGTERM (default 10s)
	MaxFastWorkers  int           // Max concurrent fast operations (default 100)
	MaxSlowWorkers  int           // Max concurrent slow operations (default 4)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Host:            "localhost",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxFastWorkers:  100,
		MaxSlowWorkers:  4,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	engine   *engine.Engine
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	version  string
}

// NewServer creates a new API server.
func NewServer(e *engine.Engine, config ServerConfig, version string) *Server {
	pool := NewWorkerPool(PoolConfig{
		MaxFastWorkers: config.MaxFastWorkers,
		MaxSlowWorkers: config.MaxSlowWorkers,
	})
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	return &Server{
		config:   config,
		engine:   e,
		handlers: NewHandlersWithPool(e, version, pool),
		pool:     pool,
		version:  version,
	}
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs all requests.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handlers.Health)
	mux.HandleFunc("GET /api/newgame", s.handlers.NewGame)
	mux.HandleFunc("POST /api/plays", s.handlers.Plays)
	mux.HandleFunc("POST /api/apply", s.handlers.Apply)
	mux.HandleFunc("POST /api/selfplay", s.handlers.SelfPlay)
	mux.HandleFunc("GET /api/selfplay/stream", s.handlers.SelfPlaySSE)
	mux.HandleFunc("/api/ws", s.handlers.WebSocket)

	return corsMiddleware(loggingMiddleware(mux))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting sbgengine API server v%s on %s", s.version, addr)
	log.Printf("Endpoints:")
	log.Printf("  GET  /api/health          - Health check")
	log.Printf("  GET  /api/newgame         - Starting position")
	log.Printf("  POST /api/plays           - Legal plays for a roll")
	log.Printf("  POST /api/apply           - Apply a play")
	log.Printf("  POST /api/selfplay        - Random self-play run")
	log.Printf("  GET  /api/selfplay/stream - Self-play as Server-Sent Events")
	log.Printf("  WS   /api/ws              - WebSocket for interactive play")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
