package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/middleware"
)

// RecordController serves the read endpoints
type RecordController struct {
	recordService services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService services.RecordService) *RecordController {
	return &RecordController{
		recordService: recordService,
	}
}

// Lookup builds the handler for one lookup definition. Inputs come from the
// query string; the matching rows are returned as a JSON array.
func (c *RecordController) Lookup(l models.Lookup) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rows, err := c.recordService.Lookup(ctx.Request.Context(), l, services.ParamsFromValues(ctx.Request.URL.Query()))
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, rows)
	}
}

// GetSemesterResults handles GET /getResults/:semester
func (c *RecordController) GetSemesterResults(ctx *gin.Context) {
	rows, err := c.recordService.SemesterResults(ctx.Request.Context(), ctx.Param("semester"), services.ParamsFromValues(ctx.Request.URL.Query()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}

// GetCreatorInfo handles GET /VDSCreatorInfo
func (c *RecordController) GetCreatorInfo(ctx *gin.Context) {
	rows, err := c.recordService.CreatorInfo(ctx.Request.Context(), services.ParamsFromValues(ctx.Request.URL.Query()))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}
