package theme

import (
	"context"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/duskmode/duskmode/app/enum"
)

//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// Notifier delivers host color-scheme changes. Subscribe registers fn and returns once the
// subscription is active; deliveries stop when ctx is done.
type Notifier interface {
	Subscribe(ctx context.Context, fn func(matchesDark bool)) error
}

// State is a snapshot of a document.
type State struct {
	Theme     enum.Theme `json:"theme"`
	Indicator string     `json:"indicator,omitempty"`
	Persisted bool       `json:"persisted"`
}

// Session binds a controller to one document and runs its operations one at a time,
// the way a page's event loop would.
type Session struct {
	ctrl *Controller
	doc  Document
	mu   sync.Mutex
}

// NewSession makes a session for doc, persisting choices to prefs.
func NewSession(prefs Preferences, doc Document) *Session {
	return &Session{ctrl: New(prefs), doc: doc}
}

// Boot runs the page start-up sequence: Initialize right away, Initialize again once ready is
// closed (nil means the document is ready already), and a subscription to n if the host has one.
// The first Initialize error is returned; the ready-time call and notifications only log failures.
func (s *Session) Boot(ctx context.Context, ready <-chan struct{}, n Notifier) error {
	if _, err := s.Initialize(ctx); err != nil {
		return fmt.Errorf("initial theme: %w", err)
	}

	if n != nil {
		err := n.Subscribe(ctx, func(matchesDark bool) {
			if _, err := s.SystemChanged(ctx, matchesDark); err != nil {
				log.Printf("[WARN] system theme change not applied: %v", err)
			}
		})
		if err != nil {
			log.Printf("[WARN] system theme notifications unavailable: %v", err)
		}
	}

	if ready == nil {
		if _, err := s.Initialize(ctx); err != nil {
			return fmt.Errorf("ready theme: %w", err)
		}
		return nil
	}

	go func() {
		select {
		case <-ready:
			if _, err := s.Initialize(ctx); err != nil {
				log.Printf("[WARN] ready theme not applied: %v", err)
			}
		case <-ctx.Done():
		}
	}()
	return nil
}

// Toggle flips the theme, see Controller.Toggle.
func (s *Session) Toggle(ctx context.Context) (enum.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Toggle(ctx, s.doc)
}

// Initialize applies the persisted or default theme, see Controller.Initialize.
func (s *Session) Initialize(ctx context.Context) (enum.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Initialize(ctx, s.doc)
}

// SystemChanged handles a host color-scheme change, see Controller.OnSystemPreferenceChange.
func (s *Session) SystemChanged(ctx context.Context, matchesDark bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.OnSystemPreferenceChange(ctx, s.doc, matchesDark)
}

// Snapshot returns the document state and whether a preference is persisted.
func (s *Session) Snapshot(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := State{Theme: currentTheme(s.doc)}
	if ctl, ok := s.doc.ToggleControl(); ok {
		if b, ok := ctl.(interface{ BackgroundPosition() string }); ok {
			res.Indicator = b.BackgroundPosition()
		}
	}
	_, persisted, err := s.ctrl.saved(ctx)
	if err != nil {
		return State{}, err
	}
	res.Persisted = persisted
	return res, nil
}

// Document returns the session's document.
func (s *Session) Document() Document { return s.doc }
