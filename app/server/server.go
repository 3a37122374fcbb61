// Package server provides the HTTP server for the theme web UI and API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/duskmode/duskmode/app/server/api"
	"github.com/duskmode/duskmode/app/server/internal"
	"github.com/duskmode/duskmode/app/server/web"
	"github.com/duskmode/duskmode/app/store"
)

// Server represents the HTTP server.
type Server struct {
	cfg        Config
	pages      *internal.Pages
	apiHandler *api.Handler
	webHandler *web.Handler
	staticFS   fs.FS // embedded static files
}

// PrefStore defines the preference storage the server needs.
// Defined here (consumer side) to allow different store implementations.
type PrefStore interface {
	Get(ctx context.Context, profile, key string) (string, error)
	Set(ctx context.Context, profile, key, value string) error
	Delete(ctx context.Context, profile, key string) error
	List(ctx context.Context, profile string) ([]store.Entry, error)
}

// Config holds server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Version         string
	BaseURL         string        // base URL path for reverse proxy (e.g., /dusk)
	PageTTL         time.Duration // how long an idle page stays live
	MaxPages        int           // max number of live pages

	// limits
	BodySizeLimit  int64 // max request body size in bytes
	RequestsPerSec int64 // max requests per second
}

// New creates a new Server instance.
func New(st PrefStore, cfg Config) (*Server, error) {
	staticContent, err := web.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("failed to load static files: %w", err)
	}

	pages, err := internal.NewPages(st, cfg.pageTTL(), cfg.maxPages())
	if err != nil {
		return nil, fmt.Errorf("failed to create page registry: %w", err)
	}

	webHandler, err := web.New(pages, web.Config{BaseURL: cfg.BaseURL, Version: cfg.Version})
	if err != nil {
		_ = pages.Close()
		return nil, fmt.Errorf("failed to create web handler: %w", err)
	}

	return &Server{
		cfg:        cfg,
		pages:      pages,
		webHandler: webHandler,
		apiHandler: api.New(pages, st, cfg.cookiePath()),
		staticFS:   staticContent,
	}, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.handler(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}
	defer s.pages.Close()

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.shutdownTimeout())
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	log.Printf("[DEBUG] started server on %s", s.cfg.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler returns the HTTP handler, wrapping routes with base URL support if configured.
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.cfg.BaseURL == "" {
		return routes
	}
	mux := http.NewServeMux()
	// redirect /base to /base/
	mux.HandleFunc(s.cfg.BaseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.cfg.BaseURL+"/", http.StatusMovedPermanently)
	})
	// strip prefix for all routes under base URL
	mux.Handle(s.cfg.BaseURL+"/", http.StripPrefix(s.cfg.BaseURL, routes))
	return mux
}

// routes configures and returns the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // must be before Throttle to rate-limit by real client IP
		rest.Throttle(s.cfg.requestsPerSec()),
		rest.Trace,
		rest.SizeLimit(s.cfg.bodySizeLimit()),
		rest.AppInfo("duskmode", "duskmode", s.cfg.Version),
		rest.Ping,
	)

	router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(s.staticFS))))

	router.Group().Route(s.webHandler.Register)

	router.Mount("/api/v1").Route(s.apiHandler.Register)

	return router
}

// bodySizeLimit returns the configured body size limit, or default 64KB if not set.
func (c Config) bodySizeLimit() int64 {
	if c.BodySizeLimit > 0 {
		return c.BodySizeLimit
	}
	return 64 * 1024
}

// requestsPerSec returns the configured requests per second limit, or default 1000 if not set.
func (c Config) requestsPerSec() int64 {
	if c.RequestsPerSec > 0 {
		return c.RequestsPerSec
	}
	return 1000
}

func (c Config) pageTTL() time.Duration {
	if c.PageTTL > 0 {
		return c.PageTTL
	}
	return 30 * time.Minute
}

func (c Config) maxPages() int {
	if c.MaxPages > 0 {
		return c.MaxPages
	}
	return 10000
}

func (c Config) shutdownTimeout() time.Duration {
	if c.ShutdownTimeout > 0 {
		return c.ShutdownTimeout
	}
	return 10 * time.Second
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (c Config) cookiePath() string {
	if c.BaseURL == "" {
		return "/"
	}
	return c.BaseURL + "/"
}
