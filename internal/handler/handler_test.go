package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"bisnispintar/internal/dto"
	"bisnispintar/internal/handler"
	"bisnispintar/internal/infra"
	"bisnispintar/internal/middleware"
	"bisnispintar/internal/model"
	"bisnispintar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Stubs ────────────────────────────────────────────────────────────────────

type memRepo struct {
	mu      sync.Mutex
	items   []model.BusinessItem
	failing bool
	pingErr error
}

func (r *memRepo) Load(context.Context) ([]model.BusinessItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.items), nil
}

func (r *memRepo) Save(_ context.Context, items []model.BusinessItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return context.DeadlineExceeded
	}
	r.items = slices.Clone(items)
	return nil
}

func (r *memRepo) Ping(context.Context) error { return r.pingErr }
func (r *memRepo) Close() error               { return nil }
func (r *memRepo) Driver() string             { return "mem" }

type stubAdvisor struct {
	resp  dto.AdvisorResponse
	err   error
	asked string
}

func (a *stubAdvisor) Ask(_ context.Context, q string) (dto.AdvisorResponse, error) {
	a.asked = q
	return a.resp, a.err
}

// ── Test engine ──────────────────────────────────────────────────────────────

type testEnv struct {
	engine  *gin.Engine
	repo    *memRepo
	inv     service.InventoryService
	advisor *stubAdvisor
}

func newEnv(t *testing.T, items ...model.BusinessItem) *testEnv {
	t.Helper()
	repo := &memRepo{items: items}
	inv, err := service.NewInventoryService(context.Background(), repo)
	require.NoError(t, err)
	adv := &stubAdvisor{resp: dto.AdvisorResponse{Answer: "ok"}}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.ErrorHandler())

	itemsH := handler.NewItemsHandler(inv, 5)
	metricsH := handler.NewMetricsHandler(inv, 5)
	advisorH := handler.NewAdvisorHandler(adv)
	reportsH := handler.NewReportsHandler(inv)

	r.GET("/health", handler.Health(repo, infra.NewCircuitBreaker(infra.DefaultCBConfig())))
	r.GET("/v1/items", itemsH.Listar)
	r.POST("/v1/items", itemsH.Crear)
	r.GET("/v1/items/:id", itemsH.ObtenerPorID)
	r.PUT("/v1/items/:id", itemsH.Actualizar)
	r.DELETE("/v1/items/:id", itemsH.Eliminar)
	r.GET("/v1/metrics", metricsH.Metrics)
	r.GET("/v1/metrics/chart", metricsH.Chart)
	r.GET("/v1/metrics/categories", metricsH.Categories)
	r.GET("/v1/alerts/low-stock", metricsH.LowStock)
	r.GET("/v1/dashboard", metricsH.Dashboard)
	r.POST("/v1/advisor/ask", advisorH.Ask)
	r.GET("/v1/reports/inventory.xlsx", reportsH.InventoryXLSX)
	r.GET("/v1/reports/summary.pdf", reportsH.SummaryPDF)

	return &testEnv{engine: r, repo: repo, inv: inv, advisor: adv}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func kopi() model.BusinessItem {
	return model.BusinessItem{
		ID: "1", Name: "Kopi", Stock: 10,
		CapitalPrice: decimal.NewFromInt(5000), SellingPrice: decimal.NewFromInt(8000),
		Category: "Minuman",
	}
}
