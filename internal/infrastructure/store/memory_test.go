package store

import (
	"context"
	"testing"

	"github.com/jipbab-note/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := testDoc{Name: "계란", Count: 12}
	require.NoError(t, s.Put(ctx, "pantry", "device-1", in))

	var out testDoc
	require.NoError(t, s.Get(ctx, "pantry", "device-1", &out))
	assert.Equal(t, in, out)
}

func TestMemoryStore_MissingKey(t *testing.T) {
	s := NewMemoryStore()

	var out testDoc
	err := s.Get(context.Background(), "pantry", "nope", &out)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryStore_CollectionsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "favorites", "device-1", testDoc{Name: "a"}))

	var out testDoc
	err := s.Get(ctx, "community", "device-1", &out)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "favorites", "device-1", testDoc{Name: "a"}))
	require.NoError(t, s.Delete(ctx, "favorites", "device-1"))

	var out testDoc
	err := s.Get(ctx, "favorites", "device-1", &out)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, "favorites", "device-1"))
}

func TestMemoryStore_OverwriteReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "pantry", "device-1", testDoc{Name: "old"}))
	require.NoError(t, s.Put(ctx, "pantry", "device-1", testDoc{Name: "new", Count: 1}))

	var out testDoc
	require.NoError(t, s.Get(ctx, "pantry", "device-1", &out))
	assert.Equal(t, testDoc{Name: "new", Count: 1}, out)
}
