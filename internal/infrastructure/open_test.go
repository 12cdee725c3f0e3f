package infrastructure

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/flags"
	"github.com/zjrosen/requisite/internal/infrastructure/redis"
	"github.com/zjrosen/requisite/internal/infrastructure/sqlite"
	"github.com/zjrosen/requisite/internal/state"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := OpenStore(ctx, config.StateConfig{Driver: DriverMemory}, flags.New(nil))
		require.NoError(t, err)
		require.IsType(t, &state.MemoryStore{}, s)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.db")
		s, err := OpenStore(ctx, config.StateConfig{Driver: DriverSQLite, Path: path}, flags.New(nil))
		require.NoError(t, err)
		defer func() { _ = s.Close() }()
		require.IsType(t, &sqlite.StateStore{}, s)

		require.NoError(t, s.SetSetting(ctx, "k", "v"))
		v, ok, err := s.Setting(ctx, "k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v", v)
	})

	t.Run("cached", func(t *testing.T) {
		ff := flags.New(map[string]bool{flags.FlagStateCache: true})
		s, err := OpenStore(ctx, config.StateConfig{Driver: DriverMemory}, ff)
		require.NoError(t, err)
		require.IsType(t, &state.CachedStore{}, s)
	})

	t.Run("redis without url", func(t *testing.T) {
		_, err := OpenStore(ctx, config.StateConfig{Driver: DriverRedis}, flags.New(nil))
		require.ErrorIs(t, err, redis.ErrEmptyURL)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore(ctx, config.StateConfig{Driver: "etcd"}, flags.New(nil))
		require.ErrorIs(t, err, state.ErrUnknownDriver)
	})
}
