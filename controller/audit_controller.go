// controller/audit_controller.go
package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/offerwall/audit"
	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/service"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

const defaultAuditWindow = 24 * time.Hour

// AuditController exposes the access-state audit trail to privileged actors.
type AuditController struct {
	approvalService service.IApprovalService
	auditService    audit.Service
}

func NewAuditController(approvalService service.IApprovalService, auditService audit.Service) *AuditController {
	return &AuditController{approvalService: approvalService, auditService: auditService}
}

func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryLogs)
}

// QueryLogs lists audit entries between from and to (RFC3339, default the last
// 24 hours), optionally for one userId.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	actor := ac.approvalService.Session()
	if !actor.HasSession || !actor.Role.Privileged() {
		util.RespondWithError(c, http.StatusForbidden, "Audit trail requires an admin session", ow_errors.ErrUnauthorized)
		return
	}

	to := time.Now().UTC()
	from := to.Add(-defaultAuditWindow)
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from parameter", err)
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to parameter", err)
			return
		}
	}
	if to.Before(from) {
		util.RespondWithError(c, http.StatusBadRequest, "to must not be before from", nil)
		return
	}

	logs, err := ac.auditService.QueryLogs(c.Request.Context(), from, to, c.Query("userId"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit trail", fmt.Errorf("%w: %v", ow_errors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, logs)
}
