package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/logbook/internal/model"
)

// LogService is the narrow service contract required by the HTTP API.
type LogService interface {
	List(ctx context.Context, p model.ListParams) (model.Page, error)
	Create(ctx context.Context, content model.Document) (model.LogEntry, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options tune the server beyond the log routes.
type Options struct {
	// CORSOrigins lists browser origins allowed to call the API. "*" allows any.
	CORSOrigins []string

	// CORSAllowCredentials sends Access-Control-Allow-Credentials for listed origins.
	CORSAllowCredentials bool

	// Health is consulted by /api/health. Nil reports healthy.
	Health Pinger

	// Driver is reported by /api/health.
	Driver string
}

// Server provides the HTTP API over the log service.
type Server struct {
	addr      string
	svc       LogService
	opts      Options
	metrics   *metrics
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server.
func NewServer(addr string, svc LogService, opts Options) *Server {
	if addr == "" {
		addr = "127.0.0.1:4000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		svc:       svc,
		opts:      opts,
		metrics:   newMetrics(),
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(s.opts.CORSOrigins, s.opts.CORSAllowCredentials))
	r.Use(s.metrics.middleware())

	r.GET("/", s.handleRoot)
	r.GET("/logs", s.handleListLogs)
	r.POST("/logs", s.handleCreateLog)
	r.GET("/api/health", s.handleHealth)
	r.GET("/api-docs/openapi.json", s.handleOpenAPI)
	r.GET("/metrics", gin.WrapH(s.metrics.handler()))
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the listen address. After Start it is the bound address.
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
