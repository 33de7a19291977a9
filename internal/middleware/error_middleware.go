package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/models/dto"
	"github.com/md-abdullah-92/edurecords/internal/pkg/apperrors"
	"github.com/md-abdullah-92/edurecords/internal/pkg/logger"
)

// Generic bodies for errors that carry no client-safe message.
const (
	msgBadRequest     = "Bad Request"
	msgNotFound       = "Record not found"
	msgInternalServer = "Internal Server Error"
)

// HandleAPIError maps an error onto its response. Only validation and
// not-found errors expose their message; everything else is logged here and
// answered with a generic 500 body.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: apperrors.PublicMessage(err, msgBadRequest)})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: apperrors.PublicMessage(err, msgNotFound)})
	default:
		msg := "Unclassified error handling request"
		if apperrors.IsBackend(err) {
			msg = "Backend failure handling request"
		}
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", RequestID(c)).
			Msg(msg)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgInternalServer})
	}
}
