package handler

import (
	"errors"
	"net/http"
	"strings"

	"bisnispintar/internal/apierror"
	"bisnispintar/internal/dto"
	"bisnispintar/internal/service"

	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct{ svc service.AdvisorService }

func NewAdvisorHandler(svc service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{svc: svc}
}

// Ask godoc
// @Summary  Ask the business advisor about the current inventory
// @Tags     advisor
// @Param    body body dto.AskAdvisorRequest true "question"
// @Success  200 {object} dto.AdvisorResponse
// @Failure  429 {object} apierror.APIError
// @Router   /v1/advisor/ask [post]
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req dto.AskAdvisorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"question": "required"}))
		return
	}

	resp, err := h.svc.Ask(c.Request.Context(), question)
	if errors.Is(err, service.ErrAdvisorBusy) {
		c.JSON(http.StatusTooManyRequests, apierror.New("Asisten masih menjawab pertanyaan sebelumnya. Tunggu sebentar."))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
