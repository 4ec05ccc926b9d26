package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "state.db"), store.Path())
	assert.FileExists(t, store.Path())

	v, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.KVStore().Set(context.Background(), "u1", "k", "v"))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.KVStore().Get(context.Background(), "u1", "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

// ==================== Bookmark Store Tests ====================

func TestBookmarkStore_EmptyUser(t *testing.T) {
	store := setupTestStore(t)

	ids, err := store.BookmarkStore().LoadBookmarks(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestBookmarkStore_SaveReplacesSet(t *testing.T) {
	store := setupTestStore(t)
	bs := store.BookmarkStore()
	ctx := context.Background()

	require.NoError(t, bs.SaveBookmarks(ctx, "u1", []string{"a", "b", "c"}))
	require.NoError(t, bs.SaveBookmarks(ctx, "u1", []string{"b", "d"}))

	ids, err := bs.LoadBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "d"}, ids)

	require.NoError(t, bs.SaveBookmarks(ctx, "u1", nil))
	ids, err = bs.LoadBookmarks(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarkStore_NamespacedByUser(t *testing.T) {
	store := setupTestStore(t)
	bs := store.BookmarkStore()
	ctx := context.Background()

	require.NoError(t, bs.SaveBookmarks(ctx, "alice", []string{"m1"}))
	require.NoError(t, bs.SaveBookmarks(ctx, "bob", []string{"m2"}))

	alice, err := bs.LoadBookmarks(ctx, "alice")
	require.NoError(t, err)
	bob, err := bs.LoadBookmarks(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, []string{"m1"}, alice)
	assert.Equal(t, []string{"m2"}, bob)
}

// ==================== KV Store Tests ====================

func TestKVStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	kv := store.KVStore()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "u1", "selectedRole")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "u1", "selectedRole", "startup"))
	require.NoError(t, kv.Set(ctx, "u1", "selectedRole", "investor"))
	require.NoError(t, kv.Set(ctx, "u1", "pendingRedirect", "/dashboard"))

	v, ok, err := kv.Get(ctx, "u1", "selectedRole")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "investor", v)

	keys, err := kv.Keys(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"pendingRedirect", "selectedRole"}, keys)

	require.NoError(t, kv.Delete(ctx, "u1", "selectedRole"))
	require.NoError(t, kv.Delete(ctx, "u1", "missing"))
	_, ok, err = kv.Get(ctx, "u1", "selectedRole")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_NamespaceIsolation(t *testing.T) {
	store := setupTestStore(t)
	kv := store.KVStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "alice", "selectedEntityId", "x"))

	_, ok, err := kv.Get(ctx, "bob", "selectedEntityId")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := kv.Keys(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, keys)
}
