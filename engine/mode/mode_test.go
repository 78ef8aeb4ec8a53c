package mode

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrosage/arrosage/engine/infra/store"
)

func setupRepo(t *testing.T) (*miniredis.Miniredis, *Repository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRepository(client)
}

func TestMode_Valid(t *testing.T) {
	t.Run("Should accept the four operating modes", func(t *testing.T) {
		for _, m := range ValidModes() {
			assert.True(t, m.Valid(), "mode %q", m)
		}
	})

	t.Run("Should reject anything else", func(t *testing.T) {
		for _, m := range []Mode{"", "automatic", "MANUAL", "semi-auto"} {
			assert.False(t, m.Valid(), "mode %q", m)
		}
	})
}

func TestRepository_SetGet(t *testing.T) {
	t.Run("Should round-trip the current mode", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()

		require.NoError(t, repo.Set(ctx, Auto))

		current, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, Auto, current)
	})

	t.Run("Should reject setting an invalid mode", func(t *testing.T) {
		_, repo := setupRepo(t)

		err := repo.Set(t.Context(), Mode("turbo"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("Should keep pause bookkeeping fields", func(t *testing.T) {
		_, repo := setupRepo(t)
		ctx := t.Context()

		require.NoError(t, repo.SetState(ctx, &State{
			Current:      Pause,
			PausedAt:     1700000000,
			PreviousMode: Auto,
		}))

		state, err := repo.GetState(ctx)
		require.NoError(t, err)
		assert.Equal(t, Pause, state.Current)
		assert.Equal(t, int64(1700000000), state.PausedAt)
		assert.Equal(t, Auto, state.PreviousMode)
	})

	t.Run("Should report a missing key as not found", func(t *testing.T) {
		_, repo := setupRepo(t)

		_, err := repo.Get(t.Context())
		assert.True(t, store.IsNotFound(err))
	})

	t.Run("Should reject a stored invalid mode on read", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, `{"current":"warp"}`))

		_, err := repo.Get(t.Context())
		assert.ErrorIs(t, err, ErrInvalidMode)
	})

	t.Run("Should reject a stored value that is not a mode object", func(t *testing.T) {
		mr, repo := setupRepo(t)
		require.NoError(t, mr.Set(Key, "plain text"))

		_, err := repo.Get(t.Context())
		assert.ErrorIs(t, err, ErrBadFormat)
	})
}
