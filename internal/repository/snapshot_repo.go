package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bisnispintar/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type snapshotItemRepo struct {
	db   *gorm.DB
	slot string
}

// NewSnapshotItemRepository keeps the snapshot in one row of item_snapshots.
// The table is created by infra.NewDatabase.
func NewSnapshotItemRepository(db *gorm.DB, slot string) ItemRepository {
	return &snapshotItemRepo{db: db, slot: slot}
}

func (r *snapshotItemRepo) Load(ctx context.Context) ([]model.BusinessItem, error) {
	var snap model.ItemSnapshot
	err := r.db.WithContext(ctx).Where("slot = ?", r.slot).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.BusinessItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot repo: load: %w", err)
	}
	return decodeSnapshot(r.slot, []byte(snap.Payload)), nil
}

func (r *snapshotItemRepo) Save(ctx context.Context, items []model.BusinessItem) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("snapshot repo: encode: %w", err)
	}
	snap := model.ItemSnapshot{Slot: r.slot, Payload: string(data), UpdatedAt: time.Now().UTC()}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return fmt.Errorf("snapshot repo: save: %w", err)
	}
	return nil
}

func (r *snapshotItemRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *snapshotItemRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *snapshotItemRepo) Driver() string { return "postgres" }
