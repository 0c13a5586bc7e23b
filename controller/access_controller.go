// controller/access_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/offerwall/service"
)

type AccessController struct {
	approvalService service.IApprovalService
}

func NewAccessController(approvalService service.IApprovalService) *AccessController {
	return &AccessController{approvalService: approvalService}
}

func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.GET("", ac.GetAccess)
		access.POST("/refresh", ac.Refresh)
	}
}

// GetAccess always answers 200: loading and error are part of the view.
func (ac *AccessController) GetAccess(c *gin.Context) {
	c.JSON(http.StatusOK, ac.approvalService.Access(c.Request.Context()))
}

func (ac *AccessController) Refresh(c *gin.Context) {
	c.JSON(http.StatusOK, ac.approvalService.Refetch(c.Request.Context()))
}
