package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfoliopro/folio/internal/cache"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := cache.NewMemoryStore()

	_, err := store.Get(t.Context(), "absent")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(10 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, store.Delete(ctx, "a", "b"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrMiss)

	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "page_alice_/", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "page_alice_/cv", []byte("2"), time.Minute))
	require.NoError(t, store.Set(ctx, "page_bob_/", []byte("3"), time.Minute))

	require.NoError(t, store.DeletePrefix(ctx, "page_alice_"))

	_, err := store.Get(ctx, "page_alice_/")
	assert.ErrorIs(t, err, cache.ErrMiss)

	got, err := store.Get(ctx, "page_bob_/")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)
}

func TestMemoryStoreFlush(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := t.Context()

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Flush(ctx))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
