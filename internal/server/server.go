package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/logging"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// maxEventBytes bounds the body of an event request.
const maxEventBytes = 64 << 10

// Options configures a Server. Zero values take the defaults.
type Options struct {
	// Addr is the listen address used by Run.
	Addr string

	// MaxSessions bounds the session registry (default 1024).
	MaxSessions int

	// IDs generates session ids (default dashboard.UUIDv7Generator).
	IDs dashboard.IDGenerator

	Logger *slog.Logger
}

// Server serves one dashboard.
type Server struct {
	dash     *dashboard.Dashboard
	sessions *dashboard.Sessions
	addr     string
	logger   *slog.Logger
	mux      *http.ServeMux
}

// New creates a server for dash.
func New(dash *dashboard.Dashboard, opts Options) *Server {
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1024
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("server")
	}

	s := &Server{
		dash:     dash,
		sessions: dashboard.NewSessions(dash, opts.IDs, opts.MaxSessions),
		addr:     opts.Addr,
		logger:   opts.Logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.Handle("GET /", http.FileServer(PageFS()))
	s.mux.HandleFunc("GET /api/layout", s.handleLayout)
	s.mux.HandleFunc("GET /api/bounds", s.handleBounds)
	s.mux.HandleFunc("GET /api/charts/outcome", s.handleOutcome)
	s.mux.HandleFunc("GET /api/charts/scatter", s.handleScatter)
	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/events", s.handleEvent)
}

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		s.mux.ServeHTTP(rec, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Sessions returns the session registry.
func (s *Server) Sessions() *dashboard.Sessions {
	return s.sessions
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// A nil return means a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("dashboard listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		s.logger.Info("dashboard stopped")
		return nil
	})

	return g.Wait()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
