package handler

import (
	"net/http"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	svc               service.InventoryService
	lowStockThreshold int
}

func NewMetricsHandler(svc service.InventoryService, lowStockThreshold int) *MetricsHandler {
	if lowStockThreshold <= 0 {
		lowStockThreshold = service.DefaultLowStockThreshold
	}
	return &MetricsHandler{svc: svc, lowStockThreshold: lowStockThreshold}
}

func (h *MetricsHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Metrics())
}

func (h *MetricsHandler) Chart(c *gin.Context) {
	var filter dto.ChartFilter
	if !bindQuery(c, &filter) {
		return
	}
	c.JSON(http.StatusOK, h.svc.TopByProfit(filter.Limit))
}

func (h *MetricsHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Categories())
}

func (h *MetricsHandler) LowStock(c *gin.Context) {
	var filter dto.LowStockFilter
	if !bindQuery(c, &filter) {
		return
	}
	threshold := filter.Threshold
	if threshold <= 0 {
		threshold = h.lowStockThreshold
	}
	items := h.svc.LowStock(threshold)
	data := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		data = append(data, dto.ItemResponse{BusinessItem: it, Margin: it.Margin(), LowStock: true})
	}
	c.JSON(http.StatusOK, dto.ItemListResponse{Data: data, Total: len(data)})
}

func (h *MetricsHandler) Dashboard(c *gin.Context) {
	items, metrics := h.svc.Snapshot()
	low := 0
	for _, it := range items {
		if it.Stock < h.lowStockThreshold {
			low++
		}
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		Greeting: Greeting(metrics),
		Metrics:  metrics,
		Chart:    service.RankByProfit(items, service.DefaultChartLimit),
		LowStock: low,
	})
}

// Greeting is the dashboard welcome line.
func Greeting(m dto.BusinessMetrics) string {
	msg := "Halo, Juragan! Total aset modal Anda saat ini " + infra.FormatRupiah(m.TotalCapital) + "."
	if m.TotalItems == 0 {
		return msg + " Ayo mulai catat barang dagangan Anda."
	}
	return msg + " Pastikan stok selalu aman."
}
