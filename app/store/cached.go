package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lcw/v2"
)

// cacheEntry holds a cached value, absent keys are cached too.
type cacheEntry struct {
	value string
	found bool
}

// Backend is the storage wrapped by Cached.
type Backend interface {
	Get(ctx context.Context, profile, key string) (string, error)
	Set(ctx context.Context, profile, key, value string) error
	Delete(ctx context.Context, profile, key string) error
	List(ctx context.Context, profile string) ([]Entry, error)
	Close() error
}

// Cached wraps a Backend with a loading cache and satisfies the Backend itself.
// Cache is populated on reads via loader function, invalidated on writes.
type Cached struct {
	store Backend
	cache lcw.LoadingCache[cacheEntry]
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of entries in the cache.
func NewCached(store Backend, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[cacheEntry]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{store: store, cache: cache}, nil
}

// Get retrieves the value of a key, using cache with load-through.
func (c *Cached) Get(ctx context.Context, profile, key string) (string, error) {
	entry, err := c.cache.Get(cacheKey(profile, key), func() (cacheEntry, error) {
		val, loadErr := c.store.Get(ctx, profile, key)
		if errors.Is(loadErr, ErrNotFound) {
			return cacheEntry{}, nil
		}
		if loadErr != nil {
			return cacheEntry{}, fmt.Errorf("load from store: %w", loadErr)
		}
		return cacheEntry{value: val, found: true}, nil
	})
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	if !entry.found {
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores a value and invalidates the cache entry.
func (c *Cached) Set(ctx context.Context, profile, key, value string) error {
	if err := c.store.Set(ctx, profile, key, value); err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	c.invalidate(profile, key)
	return nil
}

// Delete removes a key and invalidates the cache entry.
func (c *Cached) Delete(ctx context.Context, profile, key string) error {
	// invalidate regardless of error - key might have been cached
	c.invalidate(profile, key)
	if err := c.store.Delete(ctx, profile, key); err != nil {
		return fmt.Errorf("store delete: %w", err)
	}
	return nil
}

// List returns all entries of a profile from the underlying store (not cached).
func (c *Cached) List(ctx context.Context, profile string) ([]Entry, error) {
	entries, err := c.store.List(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("store list: %w", err)
	}
	return entries, nil
}

// Close closes the cache and underlying store.
func (c *Cached) Close() error {
	_ = c.cache.Close()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}

func (c *Cached) invalidate(profile, key string) {
	ck := cacheKey(profile, key)
	c.cache.Invalidate(func(k string) bool { return k == ck })
}

func cacheKey(profile, key string) string {
	return profile + "\x00" + key
}
