package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"handmade-market/internal/config"
	"handmade-market/internal/db"
	"handmade-market/internal/logger"

	"go.uber.org/zap"
)

// Open builds the store selected by cfg.StorageDriver. The returned closer
// releases any connection the store holds.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemoryStore(), noop, nil

	case config.DriverFile:
		fs, err := NewFileStore(filepath.Join(cfg.StorageDir, cfg.StorageNamespace))
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.DriverPostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresStore(database, cfg.StorageNamespace), database.Close, nil

	case config.DriverRedis:
		rdb, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.L().Info("redis connection established", zap.String("addr", cfg.RedisAddr))
		return NewRedisStore(rdb, cfg.StorageNamespace), rdb.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
