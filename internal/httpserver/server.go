// Package httpserver exposes the engine over HTTP.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/report"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8080"

// Config configures a Server.
type Config struct {
	// Addr is the listen address
	Addr string
	// Options configure the engine of every request
	Options []engine.Option
	// MaxBodySize bounds request documents (0 for the engine default)
	MaxBodySize int64
	// Logger receives request logs
	Logger engine.Logger
}

// Server serves validation requests. Each request runs under its own context
// on an engine shared read-only between requests.
type Server struct {
	addr    string
	engines map[report.Mode]*engine.Engine
	router  *gin.Engine
	logger  engine.Logger
}

// New creates a Server. The engine options are checked once here.
func New(cfg Config) (*Server, error) {
	s := &Server{
		addr:    cfg.Addr,
		engines: make(map[report.Mode]*engine.Engine),
		logger:  engine.OrNop(cfg.Logger),
	}
	if s.addr == "" {
		s.addr = DefaultAddr
	}

	for _, m := range []report.Mode{report.ModeFull, report.ModeSchemaOnly, report.ModeLintOnly} {
		opts := append([]engine.Option{}, cfg.Options...)
		opts = append(opts, engine.WithMode(m), engine.WithLogger(s.logger))
		if cfg.MaxBodySize > 0 {
			opts = append(opts, engine.WithMaxInputSize(cfg.MaxBodySize))
		}
		e, err := engine.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("httpserver: %w", err)
		}
		s.engines[m] = e
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.GET("/rules", s.handleRules)
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpserver: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("httpserver: shutdown: %w", err)
		}
		return nil
	}
}

// requestLogger logs one line per request and tags the response with a
// request id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Header("X-Request-ID", id)

		c.Next()

		s.logger.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
