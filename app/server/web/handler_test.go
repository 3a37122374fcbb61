package web

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskmode/duskmode/app/server/internal"
	"github.com/duskmode/duskmode/app/store"
)

func TestStaticFS(t *testing.T) {
	sfs, err := StaticFS()
	require.NoError(t, err)

	for _, name := range []string{"darkmode.js", "style.css"} {
		data, err := fs.ReadFile(sfs, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestParseTemplates(t *testing.T) {
	tmpl, err := parseTemplates()
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("base.html"))
}

func TestHandler_CookiePath(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, "/", h.cookiePath())
	assert.Equal(t, "/", h.url("/"))

	h = &Handler{baseURL: "/dusk"}
	assert.Equal(t, "/dusk/", h.cookiePath())
	assert.Equal(t, "/dusk/", h.url("/"))
}

// newTestHandler makes a handler backed by a real sqlite store.
func newTestHandler(t *testing.T, cfg Config) (*Handler, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	pages, err := internal.NewPages(st, time.Minute, 100)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pages.Close() })

	h, err := New(pages, cfg)
	require.NoError(t, err)
	return h, st
}

func storedTheme(t *testing.T, st *store.Store, profile string) string {
	t.Helper()
	v, err := st.Get(context.Background(), profile, "theme")
	if err != nil {
		return ""
	}
	return v
}
