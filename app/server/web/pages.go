package web

import (
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/duskmode/duskmode/app/server/internal"
	"github.com/duskmode/duskmode/app/theme"
)

// handleIndex loads a new page for the profile and renders it with the theme applied.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	profile := internal.EnsureProfile(w, r, h.cookiePath())

	sess, err := h.pages.Open(r.Context(), profile)
	if err != nil {
		log.Printf("[ERROR] failed to open page for %s: %v", profile, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	state, err := sess.Snapshot(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to read page state for %s: %v", profile, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := templateData{
		Theme:     state.Theme.String(),
		Persisted: state.Persisted,
		BaseURL:   h.baseURL,
		Version:   h.version,
	}
	if page, ok := sess.Document().(*theme.Page); ok {
		data.RootAttr = page.RootAttr()
		data.ControlStyle = page.ControlStyle()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to execute template: %v", err)
	}
}

// handleThemeToggle toggles the theme between light and dark.
// htmx requests get a refresh header, plain form posts are redirected back to the page.
func (h *Handler) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	profile := internal.EnsureProfile(w, r, h.cookiePath())

	sess, err := h.pages.Get(r.Context(), profile)
	if err != nil {
		log.Printf("[ERROR] failed to get page for %s: %v", profile, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	next, err := sess.Toggle(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to toggle theme for %s: %v", profile, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] theme of %s set to %s", profile, next)

	if r.Header.Get("HX-Request") != "" {
		// trigger full page refresh
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, h.url("/"), http.StatusSeeOther)
}
