package service

import (
	"slices"
	"sort"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultChartLimit is the number of bars on the dashboard profit chart.
const DefaultChartLimit = 10

// ComputeMetrics aggregates capital, revenue and profit in a single pass.
// Zero and negative values are summed as given.
func ComputeMetrics(items []model.BusinessItem) dto.BusinessMetrics {
	m := dto.BusinessMetrics{
		TotalCapital:          decimal.Zero,
		TotalPotentialRevenue: decimal.Zero,
		TotalPotentialProfit:  decimal.Zero,
		TotalItems:            len(items),
	}
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Stock))
		m.TotalCapital = m.TotalCapital.Add(qty.Mul(it.CapitalPrice))
		m.TotalPotentialRevenue = m.TotalPotentialRevenue.Add(qty.Mul(it.SellingPrice))
		m.TotalPotentialProfit = m.TotalPotentialProfit.Add(qty.Mul(it.Margin()))
	}
	return m
}

// RankByProfit maps every item to its chart datum, stable-sorts by profit
// contribution descending and keeps the first limit entries. limit <= 0 means
// DefaultChartLimit.
func RankByProfit(items []model.BusinessItem, limit int) []dto.ChartDatum {
	if limit <= 0 {
		limit = DefaultChartLimit
	}
	data := make([]dto.ChartDatum, 0, len(items))
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Stock))
		data = append(data, dto.ChartDatum{
			Name:                it.Name,
			ProfitContribution:  it.Margin().Mul(qty),
			RevenueContribution: it.SellingPrice.Mul(qty),
		})
	}
	slices.SortStableFunc(data, func(a, b dto.ChartDatum) int {
		return b.ProfitContribution.Cmp(a.ProfitContribution)
	})
	if len(data) > limit {
		data = data[:limit]
	}
	return data
}

// BreakdownByCategory groups items by category label, ordered by capital descending
// and then by label. An empty label is reported as-is.
func BreakdownByCategory(items []model.BusinessItem) []dto.CategoryBreakdown {
	index := make(map[string]int)
	var out []dto.CategoryBreakdown
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(out)
			index[it.Category] = i
			out = append(out, dto.CategoryBreakdown{
				Category:        it.Category,
				Capital:         decimal.Zero,
				PotentialProfit: decimal.Zero,
			})
		}
		qty := decimal.NewFromInt(int64(it.Stock))
		out[i].Items++
		out[i].Capital = out[i].Capital.Add(qty.Mul(it.CapitalPrice))
		out[i].PotentialProfit = out[i].PotentialProfit.Add(qty.Mul(it.Margin()))
	}
	sort.SliceStable(out, func(a, b int) bool {
		if c := out[a].Capital.Cmp(out[b].Capital); c != 0 {
			return c > 0
		}
		return out[a].Category < out[b].Category
	})
	if out == nil {
		out = []dto.CategoryBreakdown{}
	}
	return out
}
