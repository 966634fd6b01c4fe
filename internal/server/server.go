// Package server exposes diagram sessions over HTTP.
//
// Each diagram lives in a [diagram.Registry] session; every request that
// touches a diagram runs inside [diagram.Session.Do], so concurrent clients
// never interleave on one diagram.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/forcegraph/pkg/config"
	"github.com/matzehuels/forcegraph/pkg/diagram"
	"github.com/matzehuels/forcegraph/pkg/observability"
)

// Options configures a Server.
type Options struct {
	// Defaults is used for diagrams created without options of their own.
	Defaults config.Options

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	// MaxPayloadBytes caps the body of a diagram upload. Element and event
	// bodies are capped at maxRequestBytes.
	MaxPayloadBytes int64
}

const (
	defaultShutdownTimeout = 5 * time.Second
	defaultMaxPayloadBytes = 8 << 20
	maxRequestBytes        = 1 << 20
)

// Server routes HTTP requests to diagram sessions.
type Server struct {
	reg    *diagram.Registry
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server over reg.
func New(reg *diagram.Registry, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.MaxPayloadBytes <= 0 {
		opts.MaxPayloadBytes = defaultMaxPayloadBytes
	}
	opts.Defaults.SetDefaults()
	s := &Server{reg: reg, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(chimiddleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", s.health)

	router.Route("/api/diagrams", func(r chi.Router) {
		r.Get("/", s.listDiagrams)
		r.Post("/", s.createDiagram)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getFrame)
			r.Delete("/", s.deleteDiagram)
			r.Post("/frame", s.postFrame)
			r.Get("/layout", s.getLayout)
			r.Get("/gradients", s.getGradients)
			r.Get("/dot", s.getDOT)
			r.Get("/export", s.exportPayload)
			r.Post("/nodes", s.createNode)
			r.Delete("/nodes/{nodeID}", s.removeNode)
			r.Post("/edges", s.createEdge)
			r.Delete("/edges", s.removeEdge)
			r.Post("/events", s.applyEvent)
			r.Post("/clusters", s.updateClusters)
		})
	})

	return router
}

// requestLogger logs every request and reports it to the HTTP hooks.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			hooks := observability.HTTP()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			hooks.OnRequest(ctx, r.Method, r.URL.Path)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			hooks.OnResponse(ctx, r.Method, route, status, elapsed)

			logger.Debug("http request",
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"request_id", chimiddleware.GetReqID(ctx),
			)
		})
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
