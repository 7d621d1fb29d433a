package service_test

import (
	"context"
	"errors"
	"slices"
	"sync"

	"bisnispintar/internal/model"
)

// ── In-memory ItemRepository stub ────────────────────────────────────────────

var errStorageDown = errors.New("storage down")

type stubItemRepo struct {
	mu      sync.Mutex
	stored  []model.BusinessItem
	saves   int
	failing bool
	loadErr error
}

func newStubItemRepo(items ...model.BusinessItem) *stubItemRepo {
	return &stubItemRepo{stored: items}
}

func (r *stubItemRepo) Load(_ context.Context) ([]model.BusinessItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return slices.Clone(r.stored), nil
}

func (r *stubItemRepo) Save(_ context.Context, items []model.BusinessItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.failing {
		return errStorageDown
	}
	r.stored = slices.Clone(items)
	return nil
}

func (r *stubItemRepo) Ping(_ context.Context) error { return nil }
func (r *stubItemRepo) Close() error                 { return nil }
func (r *stubItemRepo) Driver() string               { return "stub" }

func (r *stubItemRepo) setFailing(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing = v
}

func (r *stubItemRepo) snapshot() ([]model.BusinessItem, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.stored), r.saves
}
