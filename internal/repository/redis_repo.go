package repository

import (
	"context"
	"errors"
	"fmt"

	"bisnispintar/internal/model"

	"github.com/redis/go-redis/v9"
)

type redisItemRepo struct {
	rdb  *redis.Client
	slot string
}

// NewRedisItemRepository keeps the snapshot as a plain string key with no expiry.
func NewRedisItemRepository(rdb *redis.Client, slot string) ItemRepository {
	return &redisItemRepo{rdb: rdb, slot: slot}
}

func (r *redisItemRepo) Load(ctx context.Context) ([]model.BusinessItem, error) {
	raw, err := r.rdb.Get(ctx, r.slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.BusinessItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis repo: get %s: %w", r.slot, err)
	}
	return decodeSnapshot(r.slot, raw), nil
}

func (r *redisItemRepo) Save(ctx context.Context, items []model.BusinessItem) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("redis repo: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, r.slot, data, 0).Err(); err != nil {
		return fmt.Errorf("redis repo: set %s: %w", r.slot, err)
	}
	return nil
}

func (r *redisItemRepo) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *redisItemRepo) Close() error { return r.rdb.Close() }

func (r *redisItemRepo) Driver() string { return "redis" }
