// controller/placement_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ow_errors "github.com/dev-mohitbeniwal/offerwall/errors"
	"github.com/dev-mohitbeniwal/offerwall/model"
	"github.com/dev-mohitbeniwal/offerwall/service"
	"github.com/dev-mohitbeniwal/offerwall/util"
)

// PlacementController receives notice of placement writes made by the offer
// and placement forms, so access state is re-read on next use.
type PlacementController struct {
	approvalService service.IApprovalService
}

func NewPlacementController(approvalService service.IApprovalService) *PlacementController {
	return &PlacementController{approvalService: approvalService}
}

func (pc *PlacementController) RegisterRoutes(r *gin.RouterGroup) {
	placements := r.Group("/placements")
	{
		placements.POST("/mutations", pc.MutationSucceeded)
	}
}

func (pc *PlacementController) MutationSucceeded(c *gin.Context) {
	var mutation model.PlacementMutation
	if err := c.ShouldBindJSON(&mutation); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid placement mutation", ow_errors.ErrInvalidPlacementData)
		return
	}
	pc.approvalService.OnPlacementMutationSucceeded(c.Request.Context(), mutation)
	c.Status(http.StatusAccepted)
}
