package dto

import (
	"bisnispintar/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultCategory is applied at the HTTP boundary when a request leaves category empty.
const DefaultCategory = "Umum"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaveItemRequest is shared by create and update. ID is optional on create.
type SaveItemRequest struct {
	ID           string          `json:"id"           validate:"omitempty,max=64"`
	Name         string          `json:"name"         validate:"required,max=120"`
	Stock        int             `json:"stock"`
	CapitalPrice decimal.Decimal `json:"capitalPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Category     string          `json:"category"     validate:"max=60"`
}

// ToItem builds the model the store expects, applying boundary defaults.
func (r SaveItemRequest) ToItem(id string) model.BusinessItem {
	category := r.Category
	if category == "" {
		category = DefaultCategory
	}
	return model.BusinessItem{
		ID:           id,
		Name:         r.Name,
		Stock:        r.Stock,
		CapitalPrice: r.CapitalPrice,
		SellingPrice: r.SellingPrice,
		Category:     category,
	}
}

type ItemFilter struct {
	Q string `form:"q"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	model.BusinessItem
	Margin   decimal.Decimal `json:"margin"`
	LowStock bool            `json:"lowStock"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int            `json:"total"`
}

// MutationResponse reports the outcome of add/update/remove. Persisted is false
// when the in-memory change succeeded but the snapshot could not be saved.
type MutationResponse struct {
	Item      *ItemResponse `json:"item,omitempty"`
	ID        string        `json:"id"`
	Persisted bool          `json:"persisted"`
	Warning   string        `json:"warning,omitempty"`
}
