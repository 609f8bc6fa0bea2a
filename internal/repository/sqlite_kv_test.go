package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/orgchart/internal/testutil"
)

func TestKVRepo_PutAndGet(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "data", []byte(`{"ministries":[],"groups":[]}`)))

	got, err := repo.Get(ctx, "data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ministries":[],"groups":[]}`, string(got))
}

func TestKVRepo_PutOverwrites(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "data", []byte("one")))
	require.NoError(t, repo.Put(ctx, "data", []byte("two")))

	got, err := repo.Get(ctx, "data")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestKVRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "data")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVRepo_Delete(t *testing.T) {
	repo := NewSQLiteKVRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "data", []byte("x")))
	require.NoError(t, repo.Delete(ctx, "data"))

	_, err := repo.Get(ctx, "data")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "data"), ErrNotFound)
}
