package controller

import (
	"errors"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/service"
	"skillpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	UserService *service.UserService
}

func NewQuizController(quizService *service.QuizService, userService *service.UserService) *QuizController {
	return &QuizController{
		QuizService: quizService,
		UserService: userService,
	}
}

type GenerateQuizRequest struct {
	Phase string `json:"phase" binding:"required"`
}

// GenerateQuiz godoc
// @Summary Generate a phase quiz
// @Description Builds a 10-question quiz for the given roadmap phase
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateQuizRequest true "phase"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/quiz/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, ok := currentProfile(ctx, c.UserService)
	if !ok {
		return
	}

	quiz, err := c.QuizService.Generate(ctx.Request.Context(), profile, req.Phase)
	if err != nil {
		writeGenerationError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

type SubmitQuizRequest struct {
	Phase     string     `json:"phase" binding:"required"`
	Milestone string     `json:"milestone" binding:"required"`
	Quiz      model.Quiz `json:"quiz" binding:"required"`
	Answers   []string   `json:"answers" binding:"required"`
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Scores the attempt, records the outcome and, below the pass threshold, generates gap analysis
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitQuizRequest true "attempt"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if len(req.Answers) != len(req.Quiz.Questions) {
		util.BadRequest(ctx, "answer count does not match question count")
		return
	}

	profile, ok := currentProfile(ctx, c.UserService)
	if !ok {
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), profile, req.Phase, req.Milestone, &req.Quiz, req.Answers)
	if err != nil {
		writeGenerationError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetGapAnalysis godoc
// @Summary Latest gap analysis for a phase
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   phase query string true "phase name"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/gap-analysis [get]
func (c *QuizController) GetGapAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	phase := ctx.Query("phase")
	if phase == "" {
		util.BadRequest(ctx, "phase is required")
		return
	}

	recommendations, err := c.QuizService.GetGapAnalysis(claims.Username, phase)
	if err != nil {
		if errors.Is(err, util.ErrGapAnalysisNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"recommendations": recommendations})
}
