package repository

import (
	"context"
	"errors"
	"fmt"

	"bisnispintar/internal/model"

	badger "github.com/dgraph-io/badger/v4"
)

type badgerItemRepo struct {
	db   *badger.DB
	slot string
}

// NewBadgerItemRepository keeps the snapshot under key <slot> in an embedded BadgerDB.
// The repository owns db and closes it on Close.
func NewBadgerItemRepository(db *badger.DB, slot string) ItemRepository {
	return &badgerItemRepo{db: db, slot: slot}
}

func (r *badgerItemRepo) Load(_ context.Context) ([]model.BusinessItem, error) {
	var raw []byte
	err := r.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get([]byte(r.slot))
		if err != nil {
			return err
		}
		raw, err = entry.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []model.BusinessItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger repo: load: %w", err)
	}
	return decodeSnapshot(r.slot, raw), nil
}

func (r *badgerItemRepo) Save(_ context.Context, items []model.BusinessItem) error {
	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("badger repo: encode: %w", err)
	}
	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(r.slot), data)
	}); err != nil {
		return fmt.Errorf("badger repo: save: %w", err)
	}
	return nil
}

func (r *badgerItemRepo) Ping(_ context.Context) error {
	if r.db.IsClosed() {
		return errors.New("badger repo: database closed")
	}
	return nil
}

func (r *badgerItemRepo) Close() error { return r.db.Close() }

func (r *badgerItemRepo) Driver() string { return "badger" }
