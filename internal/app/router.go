package app

import (
	"pygely_backend/docs"
	"pygely_backend/internal/config"
	"pygely_backend/internal/middleware"
	"pygely_backend/internal/model"
	"pygely_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// anonymous callers may practise; only signed-in answers are recorded
		public.GET("/algebra/exercise", c.practice.GetExercise)
		public.POST("/algebra/validate", middleware.TryAuthMiddleware(a.Config.JWT.Secret), c.practice.ValidateAnswer)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/worlds", c.world.ListWorlds)
	group.GET("/worlds/:id", c.world.GetWorld)
	group.POST("/progress/start", c.progress.StartWorld)
	group.POST("/attempts", c.attempt.SubmitAttempt)
	group.GET("/gamification", c.gamification.GetSummary)
	group.POST("/hints", c.hint.RequestHint)
	group.GET("/algebra/stats", c.practice.PracticeStats)
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/stats")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/students", c.stats.StudentStats)
		teacher.GET("/students/export", c.stats.ExportStudentStats)
	}
}
