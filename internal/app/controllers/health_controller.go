package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/models/dto"
	"github.com/md-abdullah-92/edurecords/internal/db"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// HealthController reports service liveness
type HealthController struct {
	pool *db.Pool
}

// NewHealthController creates a new HealthController
func NewHealthController(pool *db.Pool) *HealthController {
	return &HealthController{pool: pool}
}

// Health handles GET /health
func (c *HealthController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := c.pool.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("Health check ping failed")
		status, code = "unavailable", http.StatusServiceUnavailable
	}
	ctx.JSON(code, dto.HealthResponse{Status: status, Pool: c.pool.Stats()})
}

// Ping handles GET /ping
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "pong"})
}
