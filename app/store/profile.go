package store

import (
	"context"
	"errors"
)

// KV is the part of a store needed to bind it to one profile.
type KV interface {
	Get(ctx context.Context, profile, key string) (string, error)
	Set(ctx context.Context, profile, key, value string) error
}

// ProfilePrefs exposes the preferences of a single profile as a get/set capability.
type ProfilePrefs struct {
	kv      KV
	profile string
}

// Profile binds kv to the given profile.
func Profile(kv KV, profile string) *ProfilePrefs {
	return &ProfilePrefs{kv: kv, profile: profile}
}

// Get returns the value of key, ok is false if it isn't stored.
func (p *ProfilePrefs) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := p.kv.Get(ctx, p.profile, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores the value of key.
func (p *ProfilePrefs) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.profile, key, value)
}

// Name returns the bound profile.
func (p *ProfilePrefs) Name() string { return p.profile }
