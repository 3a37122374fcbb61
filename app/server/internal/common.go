// Package internal provides shared utilities for server subpackages.
package internal

import (
	"net/http"

	"github.com/google/uuid"
)

// ProfileCookie holds the anonymous profile id preferences are stored under.
const ProfileCookie = "duskmode-profile"

const profileMaxAge = 365 * 24 * 60 * 60 // 1 year

// Profile returns the profile id of the request, empty if it has none.
func Profile(r *http.Request) string {
	cookie, err := r.Cookie(ProfileCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

// EnsureProfile returns the profile id of the request, assigning a new one with a cookie if missing.
func EnsureProfile(w http.ResponseWriter, r *http.Request, cookiePath string) string {
	if id := Profile(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ProfileCookie,
		Value:    id,
		Path:     cookiePath,
		MaxAge:   profileMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
