package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"ecofinds/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, path string) repository.BatchStore {
	t.Helper()

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, filepath.Join(t.TempDir(), "kv.db"))

	_, err := s.Get(ctx, "products")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "products", "[]"))
	require.NoError(t, s.Set(ctx, "products", `[{"id":1}]`))

	v, err := s.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, v)

	require.NoError(t, s.Remove(ctx, "products"))
	_, err = s.Get(ctx, "products")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	first, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "user", `{"email":"a@b.c","username":"ann"}`))
	require.NoError(t, first.Close())

	second := newTestStore(t, path)
	v, err := second.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"a@b.c","username":"ann"}`, v)
}

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, s.Set(ctx, "cart", "[1,2]"))

	purchases := "[1,2]"
	empty := "[]"
	require.NoError(t, s.Apply(ctx, []repository.Mutation{
		{Key: "purchases", Value: &purchases},
		{Key: "cart", Value: &empty},
		{Key: "user"},
	}))

	v, err := s.Get(ctx, "purchases")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", v)

	v, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
