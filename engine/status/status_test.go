package status

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*miniredis.Miniredis, *Repository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRepository(client)
}

func TestRepository(t *testing.T) {
	t.Run("Should return nil for a cleared status", func(t *testing.T) {
		_, repo := setupRepo(t)

		s, err := repo.Get(t.Context())
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Should round-trip a status object", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()
		in := &Status{OpenedRelay: 3, OpenedAt: 1700000000, ShouldCloseAt: 1700003600}

		require.NoError(t, repo.Set(ctx, in))

		out, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("Should clear the status", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()
		require.NoError(t, repo.Set(ctx, &Status{OpenedRelay: 0, OpenedAt: 1}))

		require.NoError(t, repo.Clear(ctx))

		s, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Should reject out-of-range relay index on write", func(t *testing.T) {
		_, repo := setupRepo(t)

		err := repo.Set(t.Context(), &Status{OpenedRelay: 8, OpenedAt: 1})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("Should reject an invalid stored object on read", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, `{"opened_relay":42,"opened_at":1}`))

		_, err := repo.Get(t.Context())
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("Should reject a stored value that is not a status object", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, "oops"))

		_, err := repo.Get(t.Context())
		assert.ErrorIs(t, err, ErrBadFormat)
	})
}
