package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/api/types"
)

// formOverhead is added to the upload limit to leave room for multipart framing and text fields
const formOverhead = 1 << 20

// Server represents the HTTP server
type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	rateLimiters *sync.Map
	cleanupOnce  sync.Once
	cleanupStop  chan struct{}
	stopLimiters sync.Once
	dependencies *types.Dependencies
}

// Option tunes the underlying http.Server
type Option func(*http.Server)

// WithTimeouts sets the read, write and idle timeouts
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *http.Server) {
		if read > 0 {
			s.ReadTimeout = read
		}
		if write > 0 {
			s.WriteTimeout = write
		}
		if idle > 0 {
			s.IdleTimeout = idle
		}
	}
}

// WithMaxHeaderBytes bounds request header size
func WithMaxHeaderBytes(n int) Option {
	return func(s *http.Server) {
		if n > 0 {
			s.MaxHeaderBytes = n
		}
	}
}

// NewServer creates a new HTTP server
func NewServer(address string, deps *types.Dependencies, opts ...Option) *Server {
	engine := gin.New()

	if deps == nil {
		deps = &types.Dependencies{}
	}

	server := &Server{
		engine:       engine,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		dependencies: deps,
		httpServer: &http.Server{
			Addr:    address,
			Handler: engine,
			// transcription waits on the provider and the note LLM in sequence
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   300 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
	}
	for _, opt := range opts {
		opt(server.httpServer)
	}

	return server
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupOnce)
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(RequestID())
	s.engine.Use(RequestLogger())
	s.engine.Use(Recovery())
	s.engine.Use(CORS())
	s.engine.Use(RequestSizeLimitWithSize(s.dependencies.UploadLimit() + formOverhead))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopLimiters.Do(func() { close(s.cleanupStop) })
	return s.httpServer.Shutdown(ctx)
}
