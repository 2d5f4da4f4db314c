package app

import (
	"github.com/vinayramesh7/matlab-ai-tutor/docs"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/config"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/middleware"
	"github.com/vinayramesh7/matlab-ai-tutor/internal/model"
	"github.com/vinayramesh7/matlab-ai-tutor/pkg/monitoring"

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

		// Courses
		authGroup.GET("/courses", c.course.List)
		authGroup.GET("/courses/:id", c.course.Get)
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)

		// Course materials
		authGroup.GET("/courses/:id/documents", c.document.List)

		// Tutoring chat
		authGroup.POST("/chat/ask", c.chat.Ask)
		authGroup.POST("/chat/ask/sync", c.chat.AskSync)
		authGroup.GET("/chat/sessions", c.chat.Sessions)
		authGroup.GET("/chat/sessions/:id", c.chat.History)

		// Dashboards
		authGroup.GET("/courses/:id/progress", c.dashboard.StudentProgress)
		authGroup.GET("/activity", c.dashboard.RecentActivity)

		// Teacher-only routes
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/courses", c.course.Create)
			teacher.PUT("/courses/:id", c.course.Update)
			teacher.DELETE("/courses/:id", c.course.Delete)
			teacher.POST("/courses/:id/documents", c.document.Upload)
			teacher.DELETE("/documents/:id", c.document.Delete)
			teacher.GET("/courses/:id/analytics", c.dashboard.CourseAnalytics)
		}
	}
}
