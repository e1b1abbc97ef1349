package app

import (
	"skillpath_backend/docs"
	"skillpath_backend/internal/config"
	"skillpath_backend/internal/middleware"
	"skillpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		authGroup.GET("/roadmap", c.roadmap.GetRoadmap)
		authGroup.POST("/roadmap/regenerate", c.roadmap.Regenerate)
		authGroup.GET("/roadmap/history", c.roadmap.History)

		authGroup.POST("/quiz/generate", c.quiz.GenerateQuiz)
		authGroup.POST("/quiz/submit", c.quiz.SubmitQuiz)
		authGroup.GET("/gap-analysis", c.quiz.GetGapAnalysis)

		authGroup.GET("/progress", c.progress.GetProgress)
		authGroup.POST("/progress/complete", c.progress.CompleteMilestone)
		authGroup.GET("/dashboard", c.progress.GetDashboard)
	}
}
