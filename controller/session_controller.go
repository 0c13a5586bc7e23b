// controller/session_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/middleware"
	"github.com/dev-mohitbeniwal/offerwall/service"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

type SessionController struct {
	approvalService service.IApprovalService
}

func NewSessionController(approvalService service.IApprovalService) *SessionController {
	return &SessionController{approvalService: approvalService}
}

func (sc *SessionController) RegisterRoutes(r *gin.RouterGroup) {
	session := r.Group("/session")
	{
		session.POST("", middleware.BearerToken(), sc.Login)
		session.GET("", sc.GetSession)
		session.DELETE("", sc.Logout)
	}
}

type loginRequest struct {
	Token string `json:"token"`
}

// Login opens the gateway session from a JSON body or a bearer header.
func (sc *SessionController) Login(c *gin.Context) {
	var req loginRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid login request", err)
			return
		}
	}
	token := req.Token
	if token == "" {
		token = util.GetBearerToken(c)
	}

	actor, err := sc.approvalService.Login(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ow_errors.ErrInvalidSessionToken) {
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid session token", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to open session", err)
		}
		return
	}

	c.JSON(http.StatusCreated, actor)
}

func (sc *SessionController) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, sc.approvalService.Session())
}

func (sc *SessionController) Logout(c *gin.Context) {
	if err := sc.approvalService.OnLogout(c.Request.Context()); err != nil {
		if errors.Is(err, ow_errors.ErrNoSession) {
			util.RespondWithError(c, http.StatusNotFound, "No active session", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to close session", err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
