package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/blastengine/internal/config"
	"github.com/dmitrymomot/blastengine/internal/tools"
	"github.com/dmitrymomot/blastengine/pkg/health"
	"github.com/dmitrymomot/blastengine/pkg/logger"
)

// Server hosts the tool endpoints and health probes.
type Server struct {
	toolset  *tools.Toolset
	manifest *config.Manifest
	checks   health.Checks
	log      *slog.Logger

	addr            string
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithManifest exposes the plugin manifest at GET /v1/manifest.
func WithManifest(m *config.Manifest) Option {
	return func(s *Server) {
		s.manifest = m
	}
}

// WithChecks registers readiness checks.
func WithChecks(checks health.Checks) Option {
	return func(s *Server) {
		s.checks = checks
	}
}

// WithShutdownTimeout bounds graceful drain after a termination signal.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Server listening on addr.
func New(addr string, toolset *tools.Toolset, opts ...Option) *Server {
	s := &Server{
		toolset:         toolset,
		addr:            addr,
		shutdownTimeout: 10 * time.Second,
		log:             logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routing tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recover(s.log))
	// A bulk campaign is three sequential API calls, each with its own
	// retry budget; the request deadline must outlast the worst case.
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Route("/v1", func(r chi.Router) {
		if s.manifest != nil {
			r.Get("/manifest", func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, s.manifest)
			})
		}
		r.Route("/tools", func(r chi.Router) {
			r.Post("/send-transactional", s.handleSendTransactional)
			r.Post("/send-bulk", s.handleSendBulk)
		})
	})

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(s.checks, health.WithLogger(s.log)))

	return r
}

// Run starts the HTTP server and blocks until the context is cancelled or
// a termination signal arrives, then drains in-flight requests within the
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Listen first so the logged address reflects reality (matters for :0).
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
