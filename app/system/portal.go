// Package system reports the desktop's color-scheme preference through the
// freedesktop settings portal on the session D-Bus.
package system

import (
	"context"
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"
	"github.com/godbus/dbus/v5"
)

// portal names, see https://flatpak.github.io/xdg-desktop-portal/docs/doc-org.freedesktop.portal.Settings.html
const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = "/org/freedesktop/portal/desktop"
	settingsIface  = "org.freedesktop.portal.Settings"
	settingChanged = settingsIface + ".SettingChanged"
	appearanceNS   = "org.freedesktop.appearance"
	colorSchemeKey = "color-scheme"
)

// color-scheme values defined by the portal
const (
	schemeNoPreference uint32 = 0
	schemePreferDark   uint32 = 1
	schemePreferLight  uint32 = 2
)

// ErrNoColorScheme is returned when the portal has no usable color-scheme value.
var ErrNoColorScheme = errors.New("color-scheme not available")

// Portal delivers color-scheme changes from the settings portal.
type Portal struct {
	conn *dbus.Conn
}

// Connect opens a private session bus connection. An error means the host can't report
// color-scheme changes, callers should run without notifications.
func Connect() (*Portal, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Portal{conn: conn}, nil
}

// Dark reports whether the desktop currently prefers a dark color scheme.
func (p *Portal) Dark(ctx context.Context) (bool, error) {
	obj := p.conn.Object(portalDest, portalPath)
	var v dbus.Variant
	if err := obj.CallWithContext(ctx, settingsIface+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&v); err != nil {
		return false, fmt.Errorf("failed to read %s.%s: %w", appearanceNS, colorSchemeKey, err)
	}
	return schemeIsDark(v)
}

// Subscribe calls fn with matchesDark on every color-scheme change until ctx is done.
func (p *Portal) Subscribe(ctx context.Context, fn func(matchesDark bool)) error {
	err := p.conn.AddMatchSignalContext(ctx,
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(settingsIface),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchArg(0, appearanceNS),
	)
	if err != nil {
		return fmt.Errorf("failed to add match rule: %w", err)
	}

	ch := make(chan *dbus.Signal, 16)
	p.conn.Signal(ch)

	go func() {
		defer p.conn.RemoveSignal(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-ch:
				if !ok {
					return
				}
				dark, ok := parseSettingChanged(sig)
				if !ok {
					continue
				}
				log.Printf("[DEBUG] system color scheme changed, dark=%v", dark)
				fn(dark)
			}
		}
	}()
	return nil
}

// Close closes the bus connection, stopping all subscriptions.
func (p *Portal) Close() error {
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close session bus: %w", err)
	}
	return nil
}

// parseSettingChanged extracts the dark flag from a SettingChanged(namespace, key, value) signal.
// ok is false for signals about other settings.
func parseSettingChanged(sig *dbus.Signal) (dark, ok bool) {
	if sig == nil || sig.Name != settingChanged || len(sig.Body) != 3 {
		return false, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNS || key != colorSchemeKey {
		return false, false
	}
	v, isVariant := sig.Body[2].(dbus.Variant)
	if !isVariant {
		return false, false
	}
	dark, err := schemeIsDark(v)
	if err != nil {
		log.Printf("[WARN] unexpected color-scheme value %s: %v", v, err)
		return false, false
	}
	return dark, true
}

// schemeIsDark interprets a color-scheme value. Only "prefer dark" is dark, the same way
// prefers-color-scheme: dark doesn't match when there is no preference.
// The deprecated Read method nests the value in one more variant, both forms are accepted.
func schemeIsDark(v dbus.Variant) (bool, error) {
	val := v.Value()
	if inner, ok := val.(dbus.Variant); ok {
		val = inner.Value()
	}
	scheme, ok := val.(uint32)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNoColorScheme, val)
	}
	switch scheme {
	case schemePreferDark:
		return true, nil
	case schemeNoPreference, schemePreferLight:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unknown value %d", ErrNoColorScheme, scheme)
	}
}
