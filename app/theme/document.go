package theme

import (
	"fmt"
	"html/template"
	"sync"

	"github.com/duskmode/duskmode/app/enum"
)

// Attribute and selector names shared with stylesheets and the client script.
const (
	RootAttribute   = "data-theme"
	ControlSelector = ".btn-dark"
)

// Document is the page a controller works on: the root theme attribute and an optional toggle control.
type Document interface {
	Theme() (enum.Theme, bool)
	SetTheme(t enum.Theme)
	ToggleControl() (Control, bool)
}

// Control is the toggle button. Only its background-position is managed.
type Control interface {
	SetBackgroundPosition(pos string)
}

// Page is an in-memory Document, safe for concurrent use.
type Page struct {
	mu       sync.RWMutex
	theme    enum.Theme
	hasTheme bool
	control  *Button
	onChange func(prev, next enum.Theme)
}

// PageOption customizes a Page.
type PageOption func(p *Page)

// WithToggleControl adds a toggle button to the page.
func WithToggleControl() PageOption {
	return func(p *Page) { p.control = &Button{} }
}

// WithChangeHook sets a function called after every root theme change.
// The hook runs without page locks held.
func WithChangeHook(fn func(prev, next enum.Theme)) PageOption {
	return func(p *Page) { p.onChange = fn }
}

// NewPage makes an empty page, without the root attribute set.
func NewPage(opts ...PageOption) *Page {
	p := &Page{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Theme returns the root attribute value and whether it is set.
func (p *Page) Theme() (enum.Theme, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme, p.hasTheme
}

// SetTheme sets the root attribute.
func (p *Page) SetTheme(t enum.Theme) {
	p.mu.Lock()
	prev, had := p.theme, p.hasTheme
	p.theme, p.hasTheme = t, true
	hook := p.onChange
	p.mu.Unlock()

	if hook != nil && (!had || prev != t) {
		hook(prev, t)
	}
}

// ToggleControl returns the page's toggle button if it has one.
func (p *Page) ToggleControl() (Control, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.control == nil {
		return nil, false
	}
	return p.control, true
}

// Indicator returns the toggle button position, empty if the page has no button or it was never set.
func (p *Page) Indicator() string {
	p.mu.RLock()
	ctl := p.control
	p.mu.RUnlock()
	if ctl == nil {
		return ""
	}
	return ctl.BackgroundPosition()
}

// RootAttr renders the root attribute for an <html> tag, empty if unset.
func (p *Page) RootAttr() template.HTMLAttr {
	t, ok := p.Theme()
	if !ok {
		return ""
	}
	return template.HTMLAttr(fmt.Sprintf("%s=%q", RootAttribute, t.String())) //nolint:gosec // enum value
}

// ControlStyle renders the inline style of the toggle button, empty if there is nothing to render.
func (p *Page) ControlStyle() template.CSS {
	pos := p.Indicator()
	if pos == "" {
		return ""
	}
	return template.CSS("background-position: " + pos) //nolint:gosec // fixed values
}

// Button is a toggle control holding its inline background-position.
type Button struct {
	mu  sync.RWMutex
	pos string
}

// SetBackgroundPosition sets the button's background-position.
func (b *Button) SetBackgroundPosition(pos string) {
	b.mu.Lock()
	b.pos = pos
	b.mu.Unlock()
}

// BackgroundPosition returns the button's background-position.
func (b *Button) BackgroundPosition() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pos
}
