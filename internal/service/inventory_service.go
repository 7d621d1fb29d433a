package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/model"
	"bisnispintar/internal/repository"

	"github.com/rs/zerolog/log"
)

// DefaultLowStockThreshold flags items with fewer units than this on hand.
const DefaultLowStockThreshold = 5

// ErrNotPersisted marks a mutation that took effect in memory but whose
// snapshot could not be saved. The in-memory change is kept.
var ErrNotPersisted = errors.New("perubahan belum tersimpan")

// InventoryService owns the live item collection. Every mutation saves the
// full collection through the repository; every read is computed from the
// current collection. Lookup misses are not errors.
type InventoryService interface {
	// Add appends item. An item whose ID is already present replaces it.
	Add(ctx context.Context, item model.BusinessItem) error
	// Update replaces the item with the same ID; found is false when no such item exists.
	Update(ctx context.Context, item model.BusinessItem) (found bool, err error)
	// Remove deletes the item with id; found is false when no such item exists.
	Remove(ctx context.Context, id string) (found bool, err error)

	Get(id string) (model.BusinessItem, bool)
	Items() []model.BusinessItem
	Search(term string) []model.BusinessItem
	LowStock(threshold int) []model.BusinessItem
	Metrics() dto.BusinessMetrics
	TopByProfit(limit int) []dto.ChartDatum
	Categories() []dto.CategoryBreakdown
	// Snapshot returns the items and their metrics from the same instant.
	Snapshot() ([]model.BusinessItem, dto.BusinessMetrics)

	// Dirty reports whether the last save failed and memory is ahead of storage.
	Dirty() bool
	// Flush saves the current collection again if Dirty. It is a no-op otherwise.
	Flush(ctx context.Context) error
}

type inventoryService struct {
	mu    sync.Mutex
	items []model.BusinessItem
	dirty bool
	repo  repository.ItemRepository
}

// NewInventoryService loads the persisted collection once. A missing or
// malformed snapshot starts an empty collection; an unreachable backend is an error.
func NewInventoryService(ctx context.Context, repo repository.ItemRepository) (InventoryService, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: load snapshot: %w", err)
	}
	if items == nil {
		items = []model.BusinessItem{}
	}
	log.Info().Int("items", len(items)).Str("driver", repo.Driver()).Msg("inventory loaded")
	return &inventoryService{items: items, repo: repo}, nil
}

func (s *inventoryService) Add(ctx context.Context, item model.BusinessItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	if i := s.indexOf(item.ID); i >= 0 {
		next[i] = item
	} else {
		next = append(next, item)
	}
	s.items = next
	return s.persist(ctx, "add", item.ID)
}

func (s *inventoryService) Update(ctx context.Context, item model.BusinessItem) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	i := s.indexOf(item.ID)
	if i >= 0 {
		next[i] = item
	}
	s.items = next
	return i >= 0, s.persist(ctx, "update", item.ID)
}

func (s *inventoryService) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.BusinessItem, 0, len(s.items))
	found := false
	for _, it := range s.items {
		if it.ID == id {
			found = true
			continue
		}
		next = append(next, it)
	}
	s.items = next
	return found, s.persist(ctx, "remove", id)
}

// persist must be called under lock, after the in-memory change.
func (s *inventoryService) persist(ctx context.Context, op, id string) error {
	if err := s.repo.Save(ctx, s.items); err != nil {
		log.Error().
			Err(err).
			Str("op", op).
			Str("item_id", id).
			Str("driver", s.repo.Driver()).
			Msg("snapshot save failed, keeping in-memory change")
		s.dirty = true
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	s.dirty = false
	return nil
}

func (s *inventoryService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *inventoryService) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.persist(ctx, "flush", ""); err != nil {
		return err
	}
	log.Info().Int("items", len(s.items)).Msg("pending snapshot saved")
	return nil
}

func (s *inventoryService) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it model.BusinessItem) bool { return it.ID == id })
}

func (s *inventoryService) Get(id string) (model.BusinessItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.BusinessItem{}, false
}

func (s *inventoryService) Items() []model.BusinessItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Search matches term case-insensitively against name or category.
// An empty term returns every item.
func (s *inventoryService) Search(term string) []model.BusinessItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(s.items)
	}
	out := []model.BusinessItem{}
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Category), term) {
			out = append(out, it)
		}
	}
	return out
}

// LowStock returns items with stock strictly below threshold.
// threshold <= 0 means DefaultLowStockThreshold.
func (s *inventoryService) LowStock(threshold int) []model.BusinessItem {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.BusinessItem{}
	for _, it := range s.items {
		if it.Stock < threshold {
			out = append(out, it)
		}
	}
	return out
}

func (s *inventoryService) Metrics() dto.BusinessMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeMetrics(s.items)
}

func (s *inventoryService) TopByProfit(limit int) []dto.ChartDatum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RankByProfit(s.items, limit)
}

func (s *inventoryService) Categories() []dto.CategoryBreakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BreakdownByCategory(s.items)
}

func (s *inventoryService) Snapshot() ([]model.BusinessItem, dto.BusinessMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), ComputeMetrics(s.items)
}
