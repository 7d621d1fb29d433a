package handler

import (
	"context"
	"net/http"
	"time"

	"bisnispintar/internal/infra"
	"bisnispintar/internal/repository"

	"github.com/gin-gonic/gin"
)

// Health pings the storage backend and reports the advisor breaker state.
// An open breaker does not fail the check; the advisor degrades to fallbacks.
func Health(repo repository.ItemRepository, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storage := "connected"
		if err := repo.Ping(ctx); err != nil {
			storage = "error"
		}

		advisor := "disabled"
		if cb != nil {
			advisor = cb.State().String()
		}

		status := http.StatusOK
		if storage != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"driver":  repo.Driver(),
			"storage": storage,
			"advisor": advisor,
		})
	}
}
