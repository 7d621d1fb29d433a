package handler

import (
	"errors"
	"net/http"
	"strings"

	"bisnispintar/internal/apierror"
	"bisnispintar/internal/dto"
	"bisnispintar/internal/model"
	"bisnispintar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const notPersistedWarning = "Perubahan diterapkan tetapi gagal disimpan. Data bisa hilang saat server dimulai ulang."

type ItemsHandler struct {
	svc               service.InventoryService
	lowStockThreshold int
}

func NewItemsHandler(svc service.InventoryService, lowStockThreshold int) *ItemsHandler {
	if lowStockThreshold <= 0 {
		lowStockThreshold = service.DefaultLowStockThreshold
	}
	return &ItemsHandler{svc: svc, lowStockThreshold: lowStockThreshold}
}

// Listar godoc
// @Summary  List items, optionally filtered by name or category
// @Tags     items
// @Param    q query string false "search term"
// @Success  200 {object} dto.ItemListResponse
// @Router   /v1/items [get]
func (h *ItemsHandler) Listar(c *gin.Context) {
	var filter dto.ItemFilter
	if !bindQuery(c, &filter) {
		return
	}
	items := h.svc.Search(filter.Q)
	data := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		data = append(data, h.toResponse(it))
	}
	c.JSON(http.StatusOK, dto.ItemListResponse{Data: data, Total: len(data)})
}

func (h *ItemsHandler) ObtenerPorID(c *gin.Context) {
	item, ok := h.svc.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Barang tidak ditemukan"))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(item))
}

func (h *ItemsHandler) Crear(c *gin.Context) {
	var req dto.SaveItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	item := req.ToItem(id)

	err := h.svc.Add(c.Request.Context(), item)
	resp, ok := h.mutation(c, id, &item, err)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) Actualizar(c *gin.Context) {
	var req dto.SaveItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// the path wins over any id in the body
	id := c.Param("id")
	item := req.ToItem(id)

	found, err := h.svc.Update(c.Request.Context(), item)
	if !found {
		c.JSON(http.StatusNotFound, apierror.New("Barang tidak ditemukan"))
		return
	}
	resp, ok := h.mutation(c, id, &item, err)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Eliminar(c *gin.Context) {
	id := c.Param("id")
	found, err := h.svc.Remove(c.Request.Context(), id)
	if !found {
		c.JSON(http.StatusNotFound, apierror.New("Barang tidak ditemukan"))
		return
	}
	resp, ok := h.mutation(c, id, nil, err)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// mutation builds the response for a store write. A persistence failure still
// reports success with persisted=false; any other error becomes a 500.
func (h *ItemsHandler) mutation(c *gin.Context, id string, item *model.BusinessItem, err error) (dto.MutationResponse, bool) {
	resp := dto.MutationResponse{ID: id, Persisted: true}
	if item != nil {
		r := h.toResponse(*item)
		resp.Item = &r
	}
	if err == nil {
		return resp, true
	}
	if errors.Is(err, service.ErrNotPersisted) {
		resp.Persisted = false
		resp.Warning = notPersistedWarning
		return resp, true
	}
	_ = c.Error(err)
	return resp, false
}

func (h *ItemsHandler) toResponse(it model.BusinessItem) dto.ItemResponse {
	return dto.ItemResponse{
		BusinessItem: it,
		Margin:       it.Margin(),
		LowStock:     it.Stock < h.lowStockThreshold,
	}
}
