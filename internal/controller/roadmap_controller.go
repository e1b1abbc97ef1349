package controller

import (
	"errors"
	"net/http"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
	UserService    *service.UserService
}

func NewRoadmapController(roadmapService *service.RoadmapService, userService *service.UserService) *RoadmapController {
	return &RoadmapController{
		RoadmapService: roadmapService,
		UserService:    userService,
	}
}

// currentProfile resolves the authenticated user's profile or writes the
// error response itself.
func currentProfile(ctx *gin.Context, userService *service.UserService) (model.Profile, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return model.Profile{}, false
	}

	user, err := userService.GetProfile(claims.Username)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return model.Profile{}, false
	}
	return user.Profile(), true
}

func writeGenerationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModelUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, "generation model is unavailable, try again later")
	case errors.Is(err, util.ErrMalformedModelResponse):
		util.Error(ctx, http.StatusBadGateway, "generation failed: model returned an unusable response")
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetRoadmap godoc
// @Summary Get or generate the roadmap
// @Description Returns the latest roadmap, generating one only for first-time users
// @Tags roadmap
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.RoadmapContent}
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/roadmap [get]
func (c *RoadmapController) GetRoadmap(ctx *gin.Context) {
	profile, ok := currentProfile(ctx, c.UserService)
	if !ok {
		return
	}

	content, err := c.RoadmapService.GetOrGenerate(ctx.Request.Context(), profile)
	if err != nil {
		writeGenerationError(ctx, err)
		return
	}

	util.Success(ctx, content)
}

// Regenerate godoc
// @Summary Regenerate the roadmap
// @Description Always generates a fresh roadmap version, keeping history
// @Tags roadmap
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.RoadmapContent}
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/roadmap/regenerate [post]
func (c *RoadmapController) Regenerate(ctx *gin.Context) {
	profile, ok := currentProfile(ctx, c.UserService)
	if !ok {
		return
	}

	content, err := c.RoadmapService.Regenerate(ctx.Request.Context(), profile)
	if err != nil {
		writeGenerationError(ctx, err)
		return
	}

	util.Success(ctx, content)
}

// History godoc
// @Summary Roadmap version history
// @Tags roadmap
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/roadmap/history [get]
func (c *RoadmapController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	versions, err := c.RoadmapService.History(claims.Username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	type version struct {
		ID        uint   `json:"id"`
		CreatedAt string `json:"createdAt"`
	}
	list := make([]version, len(versions))
	for i, v := range versions {
		list[i] = version{ID: v.ID, CreatedAt: v.CreatedAt.Format("2006-01-02 15:04:05")}
	}

	util.Success(ctx, gin.H{"versions": list})
}
