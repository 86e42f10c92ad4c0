package app

import (
	"prova_backend/docs"
	"prova_backend/internal/config"
	"prova_backend/internal/middleware"
	"prova_backend/internal/model"
	"prova_backend/pkg/monitoring"

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

		// Student exam surface
		student := authGroup.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.GET("/exams", c.exam.ListPublished)
			student.GET("/exams/:publicationId", c.exam.GetExam)
			student.POST("/exams", c.exam.Submit)
		}

		// Teacher authoring surface
		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/assessments", c.assessment.CreateAssessment)
			teacher.GET("/assessments", c.assessment.ListAssessments)
			teacher.GET("/assessments/:id", c.assessment.GetAssessment)
			teacher.PUT("/assessments/:id", c.assessment.UpdateAssessment)
			teacher.DELETE("/assessments/:id", c.assessment.DeleteAssessment)
			teacher.POST("/assessments/:id/questions", c.assessment.CreateQuestion)
			teacher.GET("/assessments/:id/publications", c.assessment.ListPublications)

			teacher.GET("/questions/:id", c.assessment.GetQuestion)
			teacher.PUT("/questions/:id", c.assessment.UpdateQuestion)
			teacher.DELETE("/questions/:id", c.assessment.DeleteQuestion)
			teacher.POST("/questions/:id/options", c.assessment.AddOption)

			teacher.PUT("/options/:id", c.assessment.UpdateOption)
			teacher.DELETE("/options/:id", c.assessment.DeleteOption)

			teacher.POST("/publications", c.assessment.Publish)
			teacher.DELETE("/publications/:id", c.assessment.DeletePublication)
		}
	}
}
