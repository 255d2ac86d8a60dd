package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/leveledit/internal/config"
	"github.com/aretw0/leveledit/internal/logging"
	"github.com/aretw0/leveledit/pkg/adapters/file"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/adapters/redis"
	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLevels(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("file", func(t *testing.T) {
		cfg := config.Default().Store
		cfg.Dir = t.TempDir()
		cfg.Format = ".yml"

		levels, err := OpenLevels(ctx, cfg, logger)
		require.NoError(t, err)
		defer levels.Close()

		fs, ok := levels.Store().(*file.Store)
		require.True(t, ok)
		assert.IsType(t, codec.YAML{}, fs.Codec)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default().Store
		cfg.Backend = config.BackendMemory

		levels, err := OpenLevels(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, levels.Store())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default().Store
		cfg.Backend = config.BackendRedis
		cfg.Redis.Addr = mr.Addr()

		levels, err := OpenLevels(ctx, cfg, logger)
		require.NoError(t, err)
		defer levels.Close()
		assert.IsType(t, &redis.Store{}, levels.Store())

		require.NoError(t, levels.Save(ctx, "hub", domain.NewScene("hub")))
		assert.True(t, mr.Exists("leveledit:scene:hub"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Default().Store
		cfg.Backend = config.BackendRedis
		cfg.Redis.Addr = addr

		_, err := OpenLevels(ctx, cfg, logger)
		assert.ErrorContains(t, err, "failed to reach redis")
	})

	t.Run("bad format", func(t *testing.T) {
		cfg := config.Default().Store
		cfg.Format = ".py"
		_, err := OpenLevels(ctx, cfg, logger)
		assert.ErrorIs(t, err, codec.ErrUnknownFormat)
	})
}
