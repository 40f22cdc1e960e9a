package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "theme")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "theme", "light"))
	v, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	require.Equal(t, "light", v)

	require.NoError(t, s.Set(ctx, "theme", "dark"))
	v, err = s.Get(ctx, "theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.Get(context.Background(), "theme")
	require.NoError(t, err)
	require.Equal(t, "dark", v)
}
