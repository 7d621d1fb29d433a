package dto

import "github.com/shopspring/decimal"

// BusinessMetrics is derived from the item collection on every read; never stored.
type BusinessMetrics struct {
	TotalCapital          decimal.Decimal `json:"totalCapital"`
	TotalPotentialRevenue decimal.Decimal `json:"totalPotentialRevenue"`
	TotalPotentialProfit  decimal.Decimal `json:"totalPotentialProfit"`
	TotalItems            int             `json:"totalItems"` // distinct records, not Σstock
}

// ChartDatum is one bar of the top-N profit chart.
type ChartDatum struct {
	Name                string          `json:"name"`
	ProfitContribution  decimal.Decimal `json:"profitContribution"`
	RevenueContribution decimal.Decimal `json:"revenueContribution"`
}

type CategoryBreakdown struct {
	Category        string          `json:"category"`
	Items           int             `json:"items"`
	Capital         decimal.Decimal `json:"capital"`
	PotentialProfit decimal.Decimal `json:"potentialProfit"`
}

type ChartFilter struct {
	Limit int `form:"limit,default=10" validate:"min=1,max=100"`
}

type LowStockFilter struct {
	Threshold int `form:"threshold"`
}

type DashboardResponse struct {
	Greeting string          `json:"greeting"`
	Metrics  BusinessMetrics `json:"metrics"`
	Chart    []ChartDatum    `json:"chart"`
	LowStock int             `json:"lowStock"`
}
