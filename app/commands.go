package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/duskmode/duskmode/app/enum"
	"github.com/duskmode/duskmode/app/server"
	"github.com/duskmode/duskmode/app/store"
	"github.com/duskmode/duskmode/app/system"
	"github.com/duskmode/duskmode/app/theme"
)

// SharedOptions contains options shared between local commands
type SharedOptions struct {
	DB      string `short:"d" long:"db" env:"DUSKMODE_DB" default:"duskmode.db" description:"database URL (sqlite file or postgres://...)"`
	Profile string `short:"p" long:"profile" env:"DUSKMODE_PROFILE" default:"local" description:"preference profile"`
	Debug   bool   `long:"dbg" env:"DEBUG" description:"debug mode"`
}

// ServerCmd implements the server subcommand
type ServerCmd struct {
	DB        string `short:"d" long:"db" env:"DUSKMODE_DB" default:"duskmode.db" description:"database URL (sqlite file or postgres://...)"`
	CacheKeys int    `long:"cache-keys" env:"DUSKMODE_CACHE_KEYS" default:"1000" description:"max cached preferences, 0 disables cache"`

	Server struct {
		Address         string        `long:"address" env:"ADDRESS" default:":8080" description:"server listen address"`
		ReadTimeout     time.Duration `long:"read-timeout" env:"READ_TIMEOUT" default:"5s" description:"read timeout"`
		WriteTimeout    time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" default:"30s" description:"write timeout"`
		IdleTimeout     time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" default:"30s" description:"idle timeout"`
		ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"10s" description:"graceful shutdown timeout"`
		BaseURL         string        `long:"base-url" env:"BASE_URL" description:"base URL path for reverse proxy (e.g., /dusk)"`
	} `group:"server" namespace:"server" env-namespace:"DUSKMODE_SERVER"`

	Pages struct {
		TTL time.Duration `long:"ttl" env:"TTL" default:"30m" description:"how long an idle page stays live"`
		Max int           `long:"max" env:"MAX" default:"10000" description:"max live pages"`
	} `group:"pages" namespace:"pages" env-namespace:"DUSKMODE_PAGES"`

	Debug bool `long:"dbg" env:"DEBUG" description:"debug mode"`

	ctx    context.Context
	cancel context.CancelFunc
}

// Execute runs the server command
func (s *ServerCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if s.ctx == nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
		signals(s.cancel)
	}

	return s.run(s.ctx)
}

func (s *ServerCmd) run(ctx context.Context) error {
	baseURL, err := validateBaseURL(s.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	log.Printf("[INFO] starting duskmode server on %s", s.Server.Address)
	if baseURL != "" {
		log.Printf("[INFO] base URL: %s", baseURL)
	}

	db, err := store.New(s.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	var st server.PrefStore = db
	if s.CacheKeys > 0 {
		cached, cacheErr := store.NewCached(db, s.CacheKeys)
		if cacheErr != nil {
			_ = db.Close()
			return fmt.Errorf("failed to initialize cache: %w", cacheErr)
		}
		defer cached.Close()
		st = cached
	} else {
		defer db.Close()
	}

	srv, err := server.New(st, server.Config{
		Address:         s.Server.Address,
		ReadTimeout:     s.Server.ReadTimeout,
		WriteTimeout:    s.Server.WriteTimeout,
		IdleTimeout:     s.Server.IdleTimeout,
		ShutdownTimeout: s.Server.ShutdownTimeout,
		Version:         revision,
		BaseURL:         baseURL,
		PageTTL:         s.Pages.TTL,
		MaxPages:        s.Pages.Max,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// ShowCmd implements the show subcommand
type ShowCmd struct {
	SharedOptions
}

// Execute prints the theme a freshly loaded page of the profile would get
func (c *ShowCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	ctx := context.Background()

	db, err := store.New(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	sess := theme.NewSession(store.Profile(db, c.Profile), theme.NewPage(theme.WithToggleControl()))
	if err := sess.Boot(ctx, nil, nil); err != nil {
		return fmt.Errorf("failed to load theme for %s: %w", c.Profile, err)
	}
	st, err := sess.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read theme for %s: %w", c.Profile, err)
	}
	fmt.Printf("profile:   %s\n", c.Profile)
	fmt.Printf("theme:     %s\n", st.Theme)
	fmt.Printf("indicator: %s\n", st.Indicator)
	fmt.Printf("saved:     %t\n", st.Persisted)

	portal, err := system.Connect()
	if err != nil {
		log.Printf("[DEBUG] desktop color-scheme unavailable: %v", err)
		return nil
	}
	defer portal.Close()
	dark, err := portal.Dark(ctx)
	if err != nil {
		log.Printf("[DEBUG] desktop color-scheme unavailable: %v", err)
		return nil
	}
	fmt.Printf("desktop:   %s\n", enum.FromDark(dark))
	return nil
}

// ToggleCmd implements the toggle subcommand
type ToggleCmd struct {
	SharedOptions
}

// Execute flips the profile's theme and saves it
func (c *ToggleCmd) Execute(_ []string) error {
	setupLogs(c.Debug)
	ctx := context.Background()

	db, err := store.New(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	sess := theme.NewSession(store.Profile(db, c.Profile), theme.NewPage(theme.WithToggleControl()))
	if err := sess.Boot(ctx, nil, nil); err != nil {
		return fmt.Errorf("failed to load theme for %s: %w", c.Profile, err)
	}
	t, err := sess.Toggle(ctx)
	if err != nil {
		return fmt.Errorf("failed to toggle theme for %s: %w", c.Profile, err)
	}
	log.Printf("[INFO] profile %s switched to %s", c.Profile, t)
	fmt.Println(t)
	return nil
}

// WatchCmd implements the watch subcommand
type WatchCmd struct {
	SharedOptions

	Out string `short:"o" long:"out" env:"DUSKMODE_OUT" description:"file to write the active theme to"`

	ctx      context.Context
	cancel   context.CancelFunc
	notifier theme.Notifier // overrides the desktop portal, used by tests
}

// Execute keeps a page of the profile in sync with the desktop color-scheme until interrupted
func (c *WatchCmd) Execute(_ []string) error {
	setupLogs(c.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	if c.ctx == nil {
		c.ctx, c.cancel = context.WithCancel(context.Background())
		signals(c.cancel)
	}
	return c.run(c.ctx)
}

func (c *WatchCmd) run(ctx context.Context) error {
	db, err := store.New(c.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer db.Close()

	page := theme.NewPage(theme.WithChangeHook(func(prev, next enum.Theme) {
		if prev.String() == "" {
			log.Printf("[INFO] theme set to %s", next)
		} else {
			log.Printf("[INFO] theme %s -> %s", prev, next)
		}
		if c.Out == "" {
			return
		}
		if err := os.WriteFile(c.Out, []byte(next.String()+"\n"), 0o644); err != nil { //nolint:gosec // theme name is not sensitive
			log.Printf("[WARN] failed to write %s: %v", c.Out, err)
		}
	}))

	n := c.notifier
	if n == nil {
		portal, connErr := system.Connect()
		if connErr != nil {
			log.Printf("[WARN] desktop color-scheme notifications unavailable: %v", connErr)
		} else {
			defer portal.Close()
			n = portal
		}
	}

	sess := theme.NewSession(store.Profile(db, c.Profile), page)
	if err := sess.Boot(ctx, nil, n); err != nil {
		return fmt.Errorf("failed to start watching %s: %w", c.Profile, err)
	}
	log.Printf("[INFO] watching profile %s", c.Profile)

	<-ctx.Done()
	return nil
}
