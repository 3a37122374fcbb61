package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string, string) (string, error) { return "", errors.New("boom") }
func (failingKV) Set(context.Context, string, string, string) error   { return errors.New("boom") }

func TestProfilePrefs(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	defer st.Close()

	p := Profile(st, "alice")
	assert.Equal(t, "alice", p.Name())

	_, ok, err := p.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Set(ctx, "theme", "light"))
	v, ok, err := p.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)

	_, ok, err = Profile(st, "bob").Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfilePrefs_Errors(t *testing.T) {
	p := Profile(failingKV{}, "alice")
	_, ok, err := p.Get(context.Background(), "theme")
	require.Error(t, err)
	assert.False(t, ok)
	require.Error(t, p.Set(context.Background(), "theme", "dark"))
}
