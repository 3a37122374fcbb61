package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lcw/v2"
	log "github.com/go-pkgz/lgr"

	"github.com/duskmode/duskmode/app/store"
	"github.com/duskmode/duskmode/app/theme"
)

// Pages keeps the live page of every profile. A page lives from its load until it expires
// from the cache or the profile loads a new one.
type Pages struct {
	kv    store.KV
	cache lcw.LoadingCache[*theme.Session]
}

// NewPages makes a page registry. Pages idle longer than ttl are dropped, at most maxPages are kept.
func NewPages(kv store.KV, ttl time.Duration, maxPages int) (*Pages, error) {
	cache, err := lcw.NewExpirableCache(lcw.NewOpts[*theme.Session]().MaxKeys(maxPages).TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &Pages{kv: kv, cache: cache}, nil
}

// Open starts a new page for the profile, replacing its previous one.
func (p *Pages) Open(ctx context.Context, profile string) (*theme.Session, error) {
	p.cache.Delete(profile)
	return p.Get(ctx, profile)
}

// Get returns the live page of the profile, starting one if there is none.
func (p *Pages) Get(ctx context.Context, profile string) (*theme.Session, error) {
	sess, err := p.cache.Get(profile, func() (*theme.Session, error) {
		s := theme.NewSession(store.Profile(p.kv, profile), theme.NewPage(theme.WithToggleControl()))
		// the server renders a complete document, so it is ready right after the first initialization
		if err := s.Boot(ctx, nil, nil); err != nil {
			return nil, err
		}
		log.Printf("[DEBUG] page started for profile %s", profile)
		return s, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start page: %w", err)
	}
	return sess, nil
}

// Close stops the page cache.
func (p *Pages) Close() error {
	return p.cache.Close()
}
