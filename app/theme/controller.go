// Package theme switches a document between dark and light themes and keeps the user's choice.
//
// Controller holds no page state. Every operation gets the Document it works on, and the
// persisted choice lives behind Preferences, so the same controller serves many pages.
package theme

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/duskmode/duskmode/app/enum"
)

// PrefKey is the preference key holding the user's theme.
const PrefKey = "theme"

// DefaultTheme is applied when nothing else decides the theme.
var DefaultTheme = enum.ThemeDark

//go:generate moq -out mocks/preferences.go -pkg mocks -skip-ensure -fmt goimports . Preferences

// Preferences is a get/set capability for a single string key in durable storage.
// Get reports ok=false for an absent key, errors are reserved for backend failures.
type Preferences interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Controller implements theme toggling, initialization and system preference tracking.
type Controller struct {
	prefs Preferences
}

// New makes a controller persisting choices to prefs.
func New(prefs Preferences) *Controller {
	return &Controller{prefs: prefs}
}

// Toggle flips the document theme and persists the new one.
// If persisting fails the document is restored, so the root attribute never disagrees with the store.
func (c *Controller) Toggle(ctx context.Context, doc Document) (enum.Theme, error) {
	current := currentTheme(doc)
	next := current.Toggle()

	setIndicator(doc, next)
	doc.SetTheme(next)

	if err := c.prefs.Set(ctx, PrefKey, next.String()); err != nil {
		setIndicator(doc, current)
		doc.SetTheme(current)
		return current, fmt.Errorf("failed to persist theme %s: %w", next, err)
	}
	log.Printf("[DEBUG] theme toggled %s -> %s", current, next)
	return next, nil
}

// Initialize applies the persisted theme, or the default one, to the document.
// Repeated calls with unchanged preferences leave the document as is.
func (c *Controller) Initialize(ctx context.Context, doc Document) (enum.Theme, error) {
	saved, ok, err := c.saved(ctx)
	if err != nil {
		return enum.Theme{}, err
	}
	current := DefaultTheme
	if ok {
		current = saved
	}

	doc.SetTheme(current)
	setIndicator(doc, current)
	return current, nil
}

// OnSystemPreferenceChange follows the host's color scheme unless the user made an explicit choice.
// It returns true if the document was updated. Unlike Toggle and Initialize it leaves the toggle
// control alone and never writes to preferences.
func (c *Controller) OnSystemPreferenceChange(ctx context.Context, doc Document, matchesDark bool) (bool, error) {
	_, ok, err := c.saved(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		log.Printf("[DEBUG] system preference change ignored, explicit choice persisted")
		return false, nil
	}
	doc.SetTheme(enum.FromDark(matchesDark))
	return true, nil
}

// saved returns the persisted theme. An unparsable value counts as absent.
func (c *Controller) saved(ctx context.Context) (enum.Theme, bool, error) {
	val, ok, err := c.prefs.Get(ctx, PrefKey)
	if err != nil {
		return enum.Theme{}, false, fmt.Errorf("failed to read theme preference: %w", err)
	}
	if !ok {
		return enum.Theme{}, false, nil
	}
	t, err := enum.ParseTheme(val)
	if err != nil {
		log.Printf("[WARN] ignoring persisted theme %q: %v", val, err)
		return enum.Theme{}, false, nil
	}
	return t, true, nil
}

// currentTheme returns the document theme, dark if unset.
func currentTheme(doc Document) enum.Theme {
	if t, ok := doc.Theme(); ok {
		return t
	}
	return DefaultTheme
}

// setIndicator moves the toggle control, if the document has one.
func setIndicator(doc Document, t enum.Theme) {
	if ctl, ok := doc.ToggleControl(); ok {
		ctl.SetBackgroundPosition(t.IndicatorPosition())
	}
}
