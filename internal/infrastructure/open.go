// Package infrastructure selects and opens the configured state store.
package infrastructure

import (
	"context"
	"fmt"

	"github.com/zjrosen/requisite/internal/config"
	"github.com/zjrosen/requisite/internal/flags"
	"github.com/zjrosen/requisite/internal/infrastructure/redis"
	"github.com/zjrosen/requisite/internal/infrastructure/sqlite"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/state"
)

// Drivers
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// OpenStore opens the store named by cfg.Driver. When the state-cache flag is
// enabled the store is wrapped in a state.CachedStore.
func OpenStore(ctx context.Context, cfg config.StateConfig, ff *flags.Registry) (state.Store, error) {
	var (
		store state.Store
		err   error
	)

	switch cfg.Driver {
	case DriverSQLite, "":
		var db *sqlite.DB
		db, err = sqlite.NewDB(cfg.Path)
		if err == nil {
			store = db.StateStore()
		}
	case DriverRedis:
		store, err = redis.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case DriverMemory:
		store = state.NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", state.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s state store: %w", cfg.Driver, err)
	}

	if ff.Enabled(flags.FlagStateCache) {
		log.Debug(log.CatState, "State cache enabled", "ttl", cfg.CacheTTL)
		return state.NewCachedStore(store, cfg.CacheTTL), nil
	}
	return store, nil
}
