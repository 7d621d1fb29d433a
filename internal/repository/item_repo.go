package repository

import (
	"context"
	"encoding/json"

	"bisnispintar/internal/model"

	"github.com/rs/zerolog/log"
)

// DefaultSlot is the fixed snapshot name used by every driver unless overridden.
const DefaultSlot = "bisnisPintarItems"

// ItemRepository persists the whole item collection under a single slot.
// Load returns an empty collection (not an error) when nothing is stored or the
// stored payload is malformed; errors are reserved for an unreachable backend.
type ItemRepository interface {
	Load(ctx context.Context) ([]model.BusinessItem, error)
	Save(ctx context.Context, items []model.BusinessItem) error
	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
	Close() error
	Driver() string
}

// encodeSnapshot renders the full collection. A nil slice is stored as [].
func encodeSnapshot(items []model.BusinessItem) ([]byte, error) {
	if items == nil {
		items = []model.BusinessItem{}
	}
	return json.Marshal(items)
}

// decodeSnapshot never fails: a malformed payload is logged and treated as "no data".
func decodeSnapshot(slot string, raw []byte) []model.BusinessItem {
	if len(raw) == 0 {
		return []model.BusinessItem{}
	}
	var items []model.BusinessItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("slot", slot).Msg("snapshot malformed, starting empty")
		return []model.BusinessItem{}
	}
	if items == nil {
		return []model.BusinessItem{}
	}
	return items
}
