package storage

import (
	"context"
	"fmt"

	"parkly/internal/config"
	"parkly/internal/db"
)

// Open builds the Store selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		store := NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case config.BackendMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(gormDB)
	case config.BackendBolt:
		return OpenBolt(cfg.BoltPath)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
