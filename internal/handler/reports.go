package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"bisnispintar/internal/apierror"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct {
	svc service.InventoryService
	now func() time.Time
}

func NewReportsHandler(svc service.InventoryService) *ReportsHandler {
	return &ReportsHandler{svc: svc, now: time.Now}
}

func (h *ReportsHandler) InventoryXLSX(c *gin.Context) {
	items, metrics := h.svc.Snapshot()
	var buf bytes.Buffer
	if err := infra.WriteInventoryXLSX(&buf, items, metrics); err != nil {
		log.Error().Err(err).Msg("xlsx export failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal membuat laporan"))
		return
	}
	h.attach(c, "inventaris", "xlsx", xlsxContentType, buf.Bytes())
}

func (h *ReportsHandler) SummaryPDF(c *gin.Context) {
	items, metrics := h.svc.Snapshot()
	chart := service.RankByProfit(items, service.DefaultChartLimit)
	var buf bytes.Buffer
	if err := infra.WriteSummaryPDF(&buf, metrics, chart, h.now()); err != nil {
		log.Error().Err(err).Msg("pdf export failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal membuat laporan"))
		return
	}
	h.attach(c, "ringkasan", "pdf", "application/pdf", buf.Bytes())
}

func (h *ReportsHandler) attach(c *gin.Context, name, ext, contentType string, body []byte) {
	filename := fmt.Sprintf("%s-%s.%s", name, h.now().Format("20060102"), ext)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
