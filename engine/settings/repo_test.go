package settings

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/pkg/config"
)

func setupRepo(t *testing.T) (*miniredis.Miniredis, *Repository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.Default().Settings
	return mr, NewRepository(client, &cfg)
}

func TestRepository_Write(t *testing.T) {
	t.Run("Should store the canonical pattern and verify it", func(t *testing.T) {
		mr, repo := setupRepo(t)

		arr, err := repo.WriteDefault(t.Context())
		require.NoError(t, err)

		assert.Equal(t, Build(3600, 0, 8), arr)
		stored, err := mr.Get(Key)
		require.NoError(t, err)
		assert.Equal(t, "[3600,3600,3600,3600,3600,3600,3600,0]", stored)
	})

	t.Run("Should be idempotent across repeated writes", func(t *testing.T) {
		mr, repo := setupRepo(t)

		_, err := repo.WriteDefault(t.Context())
		require.NoError(t, err)
		first, err := mr.Get(Key)
		require.NoError(t, err)

		_, err = repo.WriteDefault(t.Context())
		require.NoError(t, err)
		second, err := mr.Get(Key)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Should write arbitrary arrays", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()

		require.NoError(t, repo.Write(ctx, Uniform(10, 8)))

		arr, err := repo.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, Uniform(10, 8), arr)
	})

	t.Run("Should surface write failures", func(t *testing.T) {
		mr, repo := setupRepo(t)
		mr.Close()

		err := repo.Write(t.Context(), Build(3600, 0, 8))
		require.Error(t, err)
	})
}

func TestRepository_Read(t *testing.T) {
	t.Run("Should read back what was written", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()
		written, err := repo.WriteDefault(ctx)
		require.NoError(t, err)

		arr, err := repo.Read(ctx)
		require.NoError(t, err)
		assert.True(t, written.Equal(arr))
	})

	t.Run("Should report a missing key as not found, not an error state", func(t *testing.T) {
		_, repo := setupRepo(t)

		_, err := repo.Read(t.Context())
		require.Error(t, err)
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Should distinguish unparseable values from missing keys", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, "definitely not an array"))

		_, err := repo.Read(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadFormat)
		assert.False(t, store.IsNotFound(err))
	})

	t.Run("Should read tampered short arrays without failing", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, "[1,2,3]"))

		arr, err := repo.Read(t.Context())
		require.NoError(t, err)
		assert.Len(t, arr, 3)
		assert.False(t, repo.Validate(arr).Matches())
	})
}
