package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.GET("/menu", handler.Menu)

	sessions := v1.Group("", handler.SessionMiddleware())
	{
		sessions.POST("/login", handler.Login)
		sessions.GET("/session", handler.Session)
	}

	views := sessions.Group("", RequireLogin())
	{
		views.GET("/daily", handler.Daily)
		views.POST("/daily/logs", handler.AddStudyLog)

		views.GET("/homework", handler.Homework)
		views.PUT("/homework/toggle", handler.ToggleHomework)

		views.GET("/exams", handler.Exams)
		views.POST("/exams", handler.AddExam)

		views.GET("/report", handler.Report)
		views.GET("/archive", handler.Archive)

		views.POST("/summaries", handler.RequestSummaries)
	}
}
