package infra

import (
	"errors"
	"fmt"
	"strings"

	"bisnispintar/internal/config"
	"bisnispintar/internal/repository"
)

// ErrUnknownDriver is returned for an unsupported STORAGE_DRIVER value.
var ErrUnknownDriver = errors.New("unknown storage driver")

// NewItemRepository connects the backend selected by cfg.StorageDriver and
// returns the snapshot repository on top of it. The caller must Close it.
func NewItemRepository(cfg *config.Config) (repository.ItemRepository, error) {
	slot := cfg.StorageSlot
	if slot == "" {
		slot = repository.DefaultSlot
	}

	switch strings.ToLower(cfg.StorageDriver) {
	case "", "file":
		return repository.NewFileItemRepository(cfg.DataDir, slot), nil
	case "badger":
		db, err := NewBadger(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		return repository.NewBadgerItemRepository(db, slot), nil
	case "redis":
		rdb, err := NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return repository.NewRedisItemRepository(rdb, slot), nil
	case "postgres":
		db, err := NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return repository.NewSnapshotItemRepository(db, slot), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
