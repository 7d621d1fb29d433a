package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Snapshots keep prices as JSON numbers so they stay readable by the
	// browser build that wrote the original localStorage slot.
	decimal.MarshalJSONWithoutQuotes = true
}

// BusinessItem is one stocked product. The JSON field names are the persisted
// snapshot format and must not change.
type BusinessItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Stock        int             `json:"stock"`
	CapitalPrice decimal.Decimal `json:"capitalPrice"` // unit cost (HPP)
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Category     string          `json:"category"`
}

// Margin is the per-unit difference between selling and capital price.
func (i BusinessItem) Margin() decimal.Decimal {
	return i.SellingPrice.Sub(i.CapitalPrice)
}

// Equal compares two items field by field, using numeric equality for prices.
func (i BusinessItem) Equal(o BusinessItem) bool {
	return i.ID == o.ID &&
		i.Name == o.Name &&
		i.Stock == o.Stock &&
		i.CapitalPrice.Equal(o.CapitalPrice) &&
		i.SellingPrice.Equal(o.SellingPrice) &&
		i.Category == o.Category
}
