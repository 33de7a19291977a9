package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/models/dto"
	"github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/middleware"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

const invalidBodyMessage = "Bad Request: Invalid request body"

// RegistrationController serves the insert endpoints
type RegistrationController struct {
	registrationService services.RegistrationService
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// bindBody decodes a JSON or form body into dst, answering 400 on failure.
func bindBody(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBind(dst); err != nil {
		logger.Debug().Err(err).Str("path", ctx.FullPath()).Msg("Rejected request body")
		middleware.HandleAPIError(ctx, apperrors.NewMalformedBodyError(invalidBodyMessage))
		return false
	}
	return true
}

// RegisterCreator handles POST /VDSCreator
func (c *RegistrationController) RegisterCreator(ctx *gin.Context) {
	var creator models.Creator
	if !bindBody(ctx, &creator) {
		return
	}

	if err := c.registrationService.RegisterCreator(ctx.Request.Context(), creator); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: services.InsertedMessage})
}

// RegisterKeyMaterial handles POST /VDSdata
func (c *RegistrationController) RegisterKeyMaterial(ctx *gin.Context) {
	var km models.KeyMaterial
	if !bindBody(ctx, &km) {
		return
	}

	if err := c.registrationService.RegisterKeyMaterial(ctx.Request.Context(), km); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: services.InsertedMessage})
}
