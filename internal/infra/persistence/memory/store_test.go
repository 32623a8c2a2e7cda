package memory

import (
	"context"
	"testing"

	"ecofinds/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, "user")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "user", `{"email":"a@b.c"}`))
	v, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"email":"a@b.c"}`, v)

	require.NoError(t, s.Remove(ctx, "user"))
	require.NoError(t, s.Remove(ctx, "user"))
	_, err = s.Get(ctx, "user")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Set(ctx, "cart", "[1]"))

	purchases := "[1]"
	require.NoError(t, s.Apply(ctx, []repository.Mutation{
		{Key: "purchases", Value: &purchases},
		{Key: "cart"},
	}))

	assert.Equal(t, map[string]string{"purchases": "[1]"}, s.Snapshot())
}
