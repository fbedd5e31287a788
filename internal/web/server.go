// Package web provides the HTTP server and handlers for the sentiboard web UI.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/sentiboard/internal/analysis"
	"github.com/evcraddock/sentiboard/internal/auth"
	"github.com/evcraddock/sentiboard/internal/clock"
	"github.com/evcraddock/sentiboard/internal/history"
	"github.com/evcraddock/sentiboard/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server is the web UI HTTP server.
type Server struct {
	cfg        Config
	clock      clock.Clock
	analyzer   analysis.Analyzer
	sessions   *auth.SessionStore
	history    *history.Repository
	workspaces *workspaces
	templates  *template.Template
	upgrader   websocket.Upgrader
	mux        *http.ServeMux
	handler    http.Handler

	shutdownOnce sync.Once
	shutdown     chan struct{} // closed when the server starts shutting down
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithAnalyzer replaces the HTTP analysis client.
func WithAnalyzer(a analysis.Analyzer) Option {
	return func(s *Server) { s.analyzer = a }
}

// NewServer creates a web server with the given database.
func NewServer(db *sql.DB, cfg Config, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:      cfg,
		clock:    clock.Real(),
		mux:      http.NewServeMux(),
		shutdown: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.analyzer == nil {
		s.analyzer = analysis.New(cfg.BackendURL, cfg.UploadTimeout)
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	s.templates = tmpl

	s.sessions = auth.NewSessionStore(db, s.clock, cfg.SessionTTL, cfg.SecureCookies)
	s.history = history.NewRepository(db, s.clock)
	s.workspaces = newWorkspaces(s.analyzer)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/upload", s.handleUpload)
	s.mux.HandleFunc("/comments", s.handleComments)
	s.mux.HandleFunc("/comments/", s.handleCommentRoute)
	s.mux.HandleFunc("/export.csv", s.handleExport)
	s.mux.HandleFunc("/api/", s.handleAPI)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/login/guest", s.handleLoginGuest)
	s.mux.HandleFunc("/logout", s.handleLogout)
	s.mux.HandleFunc("/ws/chat", s.handleChatSocket)
	s.mux.HandleFunc("/ws/background", s.handleBackgroundSocket)

	s.handler = logging.RequestLogger(auth.WithSession(s.sessions, s.compress(s.mux)))

	return s, nil
}

// compress gzips responses except websocket upgrades, which need the raw
// connection.
func (s *Server) compress(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/ws/") {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run serves on port until ctx is cancelled, then shuts down gracefully.
// The expired-session janitor runs alongside the listener.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.closeSockets)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting web UI", "addr", "http://localhost"+srv.Addr, "backend", s.cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.runJanitor(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down web UI")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// closeSockets tells websocket handlers to hang up. Hijacked connections
// are not tracked by http.Server.Shutdown.
func (s *Server) closeSockets() {
	s.shutdownOnce.Do(func() { close(s.shutdown) })
}

func (s *Server) runJanitor(ctx context.Context) {
	ticker := s.clock.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepSessions()
		}
	}
}

// sweepSessions drops expired sessions together with their workspaces
// and history.
func (s *Server) sweepSessions() {
	ids, err := s.sessions.Cleanup()
	if err != nil {
		slog.Error("cleaning up sessions", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	s.workspaces.remove(ids...)
	for _, id := range ids {
		if _, err := s.history.DeleteSession(id); err != nil {
			slog.Warn("deleting session history", "session", id, "error", err)
		}
	}
	slog.Info("expired sessions removed", "count", len(ids))
}
