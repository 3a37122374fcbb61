package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskmode/duskmode/app/server/api/mocks"
	"github.com/duskmode/duskmode/app/server/internal"
	"github.com/duskmode/duskmode/app/store"
	"github.com/duskmode/duskmode/app/theme"
)

func TestHandler_HandleGet(t *testing.T) {
	t.Run("new profile gets dark default and a cookie", func(t *testing.T) {
		h, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/theme", http.NoBody)
		rec := httptest.NewRecorder()
		h.handleGet(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"theme":"dark","indicator":"right center","persisted":false}`, rec.Body.String())
		require.Len(t, rec.Result().Cookies(), 1)
		assert.Equal(t, internal.ProfileCookie, rec.Result().Cookies()[0].Name)
	})

	t.Run("page error", func(t *testing.T) {
		pages := &mocks.PagesMock{
			GetFunc: func(context.Context, string) (*theme.Session, error) { return nil, errors.New("db down") },
		}
		h := New(pages, &mocks.PrefStoreMock{}, "/")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/theme", http.NoBody)
		rec := httptest.NewRecorder()
		h.handleGet(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "failed to load page")
	})
}

func TestHandler_HandleToggle(t *testing.T) {
	h, st := newTestHandler(t)
	id := uuid.NewString()

	for _, expected := range []string{"light", "dark", "light"} {
		req := withProfile(httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", http.NoBody), id)
		rec := httptest.NewRecorder()
		h.handleToggle(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var state theme.State
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
		assert.Equal(t, expected, state.Theme.String())
		assert.True(t, state.Persisted)

		v, err := st.Get(context.Background(), id, theme.PrefKey)
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
}

func TestHandler_HandleSystem(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		h, st := newTestHandler(t)
		id := uuid.NewString()

		// nothing saved, system turns light
		rec := postSystem(t, h, id, `{"dark":false}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"theme":"light","indicator":"right center","persisted":false,"applied":true}`,
			rec.Body.String())

		// user toggles, light -> dark
		req := withProfile(httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", http.NoBody), id)
		trec := httptest.NewRecorder()
		h.handleToggle(trec, req)
		require.Equal(t, http.StatusOK, trec.Code)
		v, err := st.Get(context.Background(), id, theme.PrefKey)
		require.NoError(t, err)
		assert.Equal(t, "dark", v)

		// system light again, ignored
		rec = postSystem(t, h, id, `{"dark":false}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"theme":"dark","indicator":"right center","persisted":true,"applied":false}`,
			rec.Body.String())
	})

	t.Run("bad body", func(t *testing.T) {
		h, _ := newTestHandler(t)
		tests := []struct {
			name string
			body string
		}{
			{"not json", "dark"},
			{"missing field", `{}`},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rec := postSystem(t, h, uuid.NewString(), tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})
}

func TestHandler_HandleClear(t *testing.T) {
	t.Run("clears saved theme", func(t *testing.T) {
		h, st := newTestHandler(t)
		id := uuid.NewString()
		require.NoError(t, st.Set(context.Background(), id, theme.PrefKey, "light"))

		req := withProfile(httptest.NewRequest(http.MethodDelete, "/api/v1/theme", http.NoBody), id)
		rec := httptest.NewRecorder()
		h.handleClear(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		_, err := st.Get(context.Background(), id, theme.PrefKey)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("nothing saved", func(t *testing.T) {
		h, _ := newTestHandler(t)
		req := withProfile(httptest.NewRequest(http.MethodDelete, "/api/v1/theme", http.NoBody), uuid.NewString())
		rec := httptest.NewRecorder()
		h.handleClear(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no profile", func(t *testing.T) {
		st := &mocks.PrefStoreMock{}
		h := New(&mocks.PagesMock{}, st, "/")
		rec := httptest.NewRecorder()
		h.handleClear(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/theme", http.NoBody))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, st.DeleteCalls())
	})

	t.Run("store error", func(t *testing.T) {
		st := &mocks.PrefStoreMock{
			DeleteFunc: func(context.Context, string, string) error { return errors.New("db error") },
		}
		h := New(&mocks.PagesMock{}, st, "/")
		id := uuid.NewString()
		req := withProfile(httptest.NewRequest(http.MethodDelete, "/api/v1/theme", http.NoBody), id)
		rec := httptest.NewRecorder()
		h.handleClear(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Len(t, st.DeleteCalls(), 1)
		assert.Equal(t, id, st.DeleteCalls()[0].Profile)
		assert.Equal(t, theme.PrefKey, st.DeleteCalls()[0].Key)
	})
}

func TestHandler_HandleList(t *testing.T) {
	t.Run("returns saved preferences", func(t *testing.T) {
		h, st := newTestHandler(t)
		id := uuid.NewString()
		require.NoError(t, st.Set(context.Background(), id, theme.PrefKey, "light"))

		req := withProfile(httptest.NewRequest(http.MethodGet, "/api/v1/prefs", http.NoBody), id)
		rec := httptest.NewRecorder()
		h.handleList(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var entries []store.Entry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "light", entries[0].Value)
	})

	t.Run("no profile returns empty list", func(t *testing.T) {
		h := New(&mocks.PagesMock{}, &mocks.PrefStoreMock{}, "/")
		rec := httptest.NewRecorder()
		h.handleList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prefs", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store error", func(t *testing.T) {
		st := &mocks.PrefStoreMock{
			ListFunc: func(context.Context, string) ([]store.Entry, error) { return nil, errors.New("db error") },
		}
		h := New(&mocks.PagesMock{}, st, "/")
		req := withProfile(httptest.NewRequest(http.MethodGet, "/api/v1/prefs", http.NoBody), uuid.NewString())
		rec := httptest.NewRecorder()
		h.handleList(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	pages, err := internal.NewPages(st, time.Minute, 100)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pages.Close() })

	return New(pages, st, "/"), st
}

func withProfile(req *http.Request, id string) *http.Request {
	req.AddCookie(&http.Cookie{Name: internal.ProfileCookie, Value: id})
	return req
}

func postSystem(t *testing.T, h *Handler, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := withProfile(httptest.NewRequest(http.MethodPost, "/api/v1/theme/system", strings.NewReader(body)), id)
	rec := httptest.NewRecorder()
	h.handleSystem(rec, req)
	return rec
}
