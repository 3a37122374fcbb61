// Package web provides HTTP handlers for the web UI.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/duskmode/duskmode/app/theme"
)

//go:generate moq -out mocks/pages.go -pkg mocks -skip-ensure -fmt goimports . Pages

//go:embed static
var staticFS embed.FS

//go:embed templates
var templatesFS embed.FS

// StaticFS returns the embedded static filesystem for external use.
func StaticFS() (fs.FS, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to get static sub-filesystem: %w", err)
	}
	return sub, nil
}

// Pages gives access to the live page of a profile.
type Pages interface {
	Open(ctx context.Context, profile string) (*theme.Session, error)
	Get(ctx context.Context, profile string) (*theme.Session, error)
}

// Config holds web handler configuration.
type Config struct {
	BaseURL string
	Version string
}

// Handler handles web UI requests.
type Handler struct {
	pages   Pages
	tmpl    *template.Template
	baseURL string
	version string
}

// New creates a new web handler.
func New(pages Pages, cfg Config) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Handler{
		pages:   pages,
		tmpl:    tmpl,
		baseURL: cfg.BaseURL,
		version: cfg.Version,
	}, nil
}

// Register registers web UI routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /{$}", h.handleIndex)
	r.HandleFunc("POST /web/theme", h.handleThemeToggle)
}

// parseTemplates parses all templates from embedded filesystem.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// templateData holds data passed to templates.
type templateData struct {
	RootAttr     template.HTMLAttr // root theme attribute of the <html> tag
	ControlStyle template.CSS      // inline style of the toggle button
	Theme        string
	Persisted    bool // theme comes from an explicit choice
	BaseURL      string
	Version      string
}

// url returns a URL path with the base URL prefix.
func (h *Handler) url(path string) string {
	return h.baseURL + path
}

// cookiePath returns the path for cookies (base URL with trailing slash or "/").
func (h *Handler) cookiePath() string {
	if h.baseURL == "" {
		return "/"
	}
	return h.baseURL + "/"
}
