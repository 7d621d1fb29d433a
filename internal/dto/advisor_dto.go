package dto

import "github.com/shopspring/decimal"

type AskAdvisorRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

type AdvisorResponse struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"` // true when Answer is one of the fixed fallback texts
}

// AdvisorContext is the JSON document embedded in the advisor's system prompt.
type AdvisorContext struct {
	Summary         BusinessMetrics `json:"summary"`
	InventorySample []AdvisorSample `json:"inventory_sample"`
}

type AdvisorSample struct {
	Name   string          `json:"name"`
	Stock  int             `json:"stock"`
	Buy    decimal.Decimal `json:"buy"`
	Sell   decimal.Decimal `json:"sell"`
	Margin decimal.Decimal `json:"margin"`
}
