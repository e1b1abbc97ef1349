package controller

import (
	"errors"

	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService  *service.ProgressService
	DashboardService *service.DashboardService
}

func NewProgressController(progressService *service.ProgressService, dashboardService *service.DashboardService) *ProgressController {
	return &ProgressController{
		ProgressService:  progressService,
		DashboardService: dashboardService,
	}
}

// GetProgress godoc
// @Summary Completed milestones by phase
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetProgressSummary(claims.Username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progress": progress})
}

type CompleteMilestoneRequest struct {
	Phase     string `json:"phase" binding:"required"`
	Milestone string `json:"milestone" binding:"required"`
}

// CompleteMilestone godoc
// @Summary Mark a milestone complete
// @Description Idempotent: repeating the call changes nothing
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CompleteMilestoneRequest true "milestone"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/progress/complete [post]
func (c *ProgressController) CompleteMilestone(ctx *gin.Context) {
	var req CompleteMilestoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ProgressService.RecordCompletion(claims.Username, req.Phase, req.Milestone); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// GetDashboard godoc
// @Summary User dashboard
// @Description Profile, latest roadmap, progress and the current milestone
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *ProgressController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetDashboard(claims.Username)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, dashboard)
}
