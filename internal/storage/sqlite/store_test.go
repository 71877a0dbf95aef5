package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "prefs", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenAndMigrate(t *testing.T) {
	t.Run("should create the database directory and apply migrations", func(t *testing.T) {
		s := openTestStore(t)

		_, ok, err := s.GetPreference(context.Background(), "addSpaceBetween")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should reopen an existing database without reapplying migrations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		ctx := context.Background()

		first, err := Open(ctx, path)
		require.NoError(t, err)
		require.NoError(t, first.SetPreference(ctx, "enableExtraTags", "true"))
		require.NoError(t, first.Close())

		second, err := Open(ctx, path)
		require.NoError(t, err)
		defer func() { _ = second.Close() }()

		value, ok, err := second.GetPreference(ctx, "enableExtraTags")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "true", value)
	})

	t.Run("should open an in-memory database", func(t *testing.T) {
		s, err := Open(context.Background(), MemoryPath)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		require.NoError(t, s.SetPreference(context.Background(), "k", "v"))
	})
}

func TestPreferences(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetPreference(ctx, "extraTagsForABC", `["be","Backend"]`))
	require.NoError(t, s.SetPreference(ctx, "extraTagsForABC", `["fe","Frontend"]`))

	value, ok, err := s.GetPreference(ctx, "extraTagsForABC")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["fe","Frontend"]`, value)
}

func TestTicketAttributes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAttribute(ctx, "ABC-1", "data-keep-original-tags", "true"))
	require.NoError(t, s.SetAttribute(ctx, "ABC-2", "data-keep-original-tags", "false"))

	value, ok, err := s.GetAttribute(ctx, "ABC-1", "data-keep-original-tags")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	_, ok, err = s.GetAttribute(ctx, "ABC-3", "data-keep-original-tags")
	require.NoError(t, err)
	assert.False(t, ok, "attributes are scoped per ticket")
}
