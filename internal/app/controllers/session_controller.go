package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/md-abdullah-92/edurecords/internal/app/models"
	"github.com/md-abdullah-92/edurecords/internal/app/models/dto"
	"github.com/md-abdullah-92/edurecords/internal/app/services"
	"github.com/md-abdullah-92/edurecords/internal/middleware"
	"github.com/md-abdullah-92/edurecords/internal/pkg/auth"
)

// SessionController serves the two-step /getdata then /getResults flow
type SessionController struct {
	sessionService services.SessionService
	ttl            time.Duration
	secureCookie   bool
}

// NewSessionController creates a new SessionController. secureCookie marks
// the session cookie Secure, for deployments behind TLS.
func NewSessionController(sessionService services.SessionService, ttl time.Duration, secureCookie bool) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		ttl:            ttl,
		secureCookie:   secureCookie,
	}
}

// SubmitRegistration handles POST /getdata. The registration number is bound
// to the caller through the reg_session cookie.
func (c *SessionController) SubmitRegistration(ctx *gin.Context) {
	var sub models.RegistrationSubmission
	if !bindBody(ctx, &sub) {
		return
	}

	token, err := c.sessionService.Submit(sub)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(auth.SessionCookieName, token, int(c.ttl.Seconds()), "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.RegistrationResponse{
		RegNo:   sub.RegNo.String(),
		Message: "Registration number received",
	})
}

// GetSessionResults handles GET /getResults. An explicit reg_no query
// parameter wins over the caller's session.
func (c *SessionController) GetSessionResults(ctx *gin.Context) {
	token, _ := ctx.Cookie(auth.SessionCookieName)

	rows, err := c.sessionService.Results(ctx.Request.Context(), strings.TrimSpace(ctx.Query("reg_no")), token)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}
