package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/leveledit/internal/config"
	"github.com/aretw0/leveledit/pkg/adapters/file"
	"github.com/aretw0/leveledit/pkg/adapters/memory"
	"github.com/aretw0/leveledit/pkg/adapters/postgres"
	"github.com/aretw0/leveledit/pkg/adapters/redis"
	"github.com/aretw0/leveledit/pkg/codec"
	"github.com/aretw0/leveledit/pkg/level"
	"github.com/aretw0/leveledit/pkg/ports"
)

// Levels bundles the configured level manager with the function that releases its
// backend connections.
type Levels struct {
	*level.Manager
	Close func() error
}

// OpenLevels builds the scene store selected by cfg and wraps it in a level.Manager.
// The redis backend also provides cross-process level locks.
func OpenLevels(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger, extra ...level.Option) (*Levels, error) {
	opts := []level.Option{level.WithLogger(logger), level.WithLockTTL(cfg.LockTTL)}
	closer := func() error { return nil }

	var store ports.SceneStore
	switch cfg.Backend {
	case config.BackendFile:
		c, err := codec.ForExtension(cfg.Format)
		if err != nil {
			return nil, err
		}
		fs := file.New(cfg.Dir)
		fs.Codec = c
		store = fs

	case config.BackendMemory:
		store = memory.NewStore()

	case config.BackendRedis:
		opt := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opt = append(opt, redis.WithPrefix(cfg.Redis.Prefix))
		}
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opt...)
		if err := rs.Client().Ping(ctx).Err(); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		store = rs
		closer = rs.Close
		opts = append(opts, level.WithLocker(redis.NewLocker(rs.Client(), cfg.Redis.Prefix)))

	case config.BackendPostgres:
		dsn := cfg.Postgres.DSN
		if dsn == "" {
			dsn = postgres.DSNFromEnv()
		}
		ps, err := postgres.Open(ctx, dsn, cfg.Postgres.Table)
		if err != nil {
			return nil, err
		}
		store = ps
		closer = ps.Close

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	opts = append(opts, extra...)
	logger.Debug("level store opened", "backend", cfg.Backend)
	return &Levels{Manager: level.NewManager(store, opts...), Close: closer}, nil
}
