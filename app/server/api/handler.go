// Package api provides JSON handlers for the theme API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/duskmode/duskmode/app/server/internal"
	"github.com/duskmode/duskmode/app/store"
	"github.com/duskmode/duskmode/app/theme"
)

//go:generate moq -out mocks/pages.go -pkg mocks -skip-ensure -fmt goimports . Pages
//go:generate moq -out mocks/prefstore.go -pkg mocks -skip-ensure -fmt goimports . PrefStore

// Pages gives access to the live page of a profile.
type Pages interface {
	Get(ctx context.Context, profile string) (*theme.Session, error)
}

// PrefStore is the preference storage the API manages directly.
type PrefStore interface {
	Delete(ctx context.Context, profile, key string) error
	List(ctx context.Context, profile string) ([]store.Entry, error)
}

// Handler handles API requests for /api/v1/* endpoints.
type Handler struct {
	pages      Pages
	store      PrefStore
	cookiePath string
}

// New creates a new API handler.
func New(pages Pages, st PrefStore, cookiePath string) *Handler {
	if cookiePath == "" {
		cookiePath = "/"
	}
	return &Handler{pages: pages, store: st, cookiePath: cookiePath}
}

// Register registers API routes on the given router.
func (h *Handler) Register(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", h.handleGet)
	r.HandleFunc("POST /theme/toggle", h.handleToggle)
	r.HandleFunc("POST /theme/system", h.handleSystem)
	r.HandleFunc("DELETE /theme", h.handleClear)
	r.HandleFunc("GET /prefs", h.handleList)
}

// systemRequest is a color-scheme change reported by the client.
type systemRequest struct {
	Dark *bool `json:"dark"`
}

// systemResponse is the page state after a color-scheme change.
type systemResponse struct {
	theme.State
	Applied bool `json:"applied"`
}

// handleGet returns the state of the caller's live page.
// GET /api/v1/theme
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	state, err := sess.Snapshot(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read theme")
		return
	}
	rest.RenderJSON(w, state)
}

// handleToggle flips the theme of the caller's live page and persists it.
// POST /api/v1/theme/toggle
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	next, err := sess.Toggle(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to toggle theme")
		return
	}
	log.Printf("[INFO] theme set to %s via api", next)

	state, err := sess.Snapshot(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read theme")
		return
	}
	rest.RenderJSON(w, state)
}

// handleSystem applies a prefers-color-scheme change unless the caller saved an explicit choice.
// POST /api/v1/theme/system {"dark": true}
func (h *Handler) handleSystem(w http.ResponseWriter, r *http.Request) {
	var req systemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return
	}
	if req.Dark == nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, nil, "dark is required")
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	applied, err := sess.SystemChanged(r.Context(), *req.Dark)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to apply system theme")
		return
	}
	state, err := sess.Snapshot(r.Context())
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to read theme")
		return
	}
	rest.RenderJSON(w, systemResponse{State: state, Applied: applied})
}

// handleClear removes the caller's saved theme. The live page keeps its theme until reloaded.
// DELETE /api/v1/theme
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	profile := internal.Profile(r)
	if profile == "" {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, nil, "no saved theme")
		return
	}

	err := h.store.Delete(r.Context(), profile, theme.PrefKey)
	if errors.Is(err, store.ErrNotFound) {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "no saved theme")
		return
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to clear theme")
		return
	}

	log.Printf("[INFO] saved theme cleared for %s", profile)
	w.WriteHeader(http.StatusNoContent)
}

// handleList returns all preferences saved for the caller.
// GET /api/v1/prefs
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	profile := internal.Profile(r)
	if profile == "" {
		rest.RenderJSON(w, []store.Entry{})
		return
	}
	entries, err := h.store.List(r.Context(), profile)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to list preferences")
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	rest.RenderJSON(w, entries)
}

// session returns the caller's live page, assigning a profile if needed.
// On failure the error response is already written.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*theme.Session, bool) {
	profile := internal.EnsureProfile(w, r, h.cookiePath)
	sess, err := h.pages.Get(r.Context(), profile)
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to load page")
		return nil, false
	}
	return sess, true
}
