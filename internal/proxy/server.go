// Package proxy assembles the HTTP server: health endpoints, the MCP
// transports, the REST facade, and the metrics endpoint.
package proxy

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/proxy/handler"
)

// Server holds dependencies for the HTTP server.
type Server struct {
	Router   chi.Router
	Handlers *handler.Handlers

	mcpStreamHandler http.Handler
	mcpSSEHandler    http.Handler
	restHandler      http.Handler
	metricsHandler   http.Handler
}

// ServerConfig holds configuration for creating a new Server. Handler
// fields left nil leave their routes unregistered.
type ServerConfig struct {
	Handlers         *handler.Handlers
	MCPStreamHandler http.Handler
	MCPSSEHandler    http.Handler
	RESTHandler      http.Handler
	MetricsHandler   http.Handler
}

// NewServer creates a chi router with all routes configured.
func NewServer(cfg ServerConfig) *Server {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger)

	s := &Server{
		Router:           r,
		Handlers:         cfg.Handlers,
		mcpStreamHandler: cfg.MCPStreamHandler,
		mcpSSEHandler:    cfg.MCPSSEHandler,
		restHandler:      cfg.RESTHandler,
		metricsHandler:   cfg.MetricsHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.Router

	// Health endpoints (no credential required)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", s.Handlers.HealthCheck)
		r.Get("/readiness", s.Handlers.HealthReadiness)
		r.Get("/liveness", s.Handlers.HealthLiveness)
	})

	// MCP protocol transports. The credential middleware only copies the
	// X-Api-Key header into the request context; a missing key is not an
	// HTTP-level error here, it surfaces per tool call.
	if s.mcpSSEHandler != nil {
		r.Route("/sse", func(r chi.Router) {
			r.Use(credential.Middleware)
			r.Mount("/", s.mcpSSEHandler)
		})
	}
	if s.mcpStreamHandler != nil {
		r.Route("/mcp", func(r chi.Router) {
			r.Use(credential.Middleware)
			r.Mount("/", s.mcpStreamHandler)
		})
	}

	// Plain REST facade for clients that do not speak MCP
	if s.restHandler != nil {
		r.Route("/v1", func(r chi.Router) {
			r.Use(credential.Middleware)
			r.Mount("/", s.restHandler)
		})
	}

	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler)
	}
}

// requestLogger logs one line per request: id, method, path, status,
// duration. Header values are never included.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Printf("http %s: %s %s -> %d in %s",
			chiMiddleware.GetReqID(r.Context()), r.Method, r.URL.Path,
			ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
