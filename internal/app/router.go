package app

import (
	"mindclass_backend/docs"
	"mindclass_backend/internal/config"
	"mindclass_backend/internal/middleware"
	"mindclass_backend/internal/model"
	"mindclass_backend/pkg/monitoring"

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
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCommonRoutes(authGroup, c)

		student := authGroup.Group("/student")
		student.Use(middleware.RoleMiddleware(model.Student))
		a.registerStudentRoutes(student, c)

		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		a.registerTeacherRoutes(teacher, c)
	}
}

func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.GET("/users/:uid", c.user.GetUser)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/privacy", c.user.TogglePrivacy)
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	rg.GET("/tests/live", c.test.ListLive)
	rg.GET("/classrooms", c.classroom.List)
	rg.GET("/classrooms/:id", c.classroom.Get)
	rg.GET("/assignments", c.assignment.List)

	social := rg.Group("/social")
	{
		social.POST("/requests", c.social.SendRequest)
		social.GET("/requests", c.social.Requests)
		social.PUT("/requests/:id", c.social.Respond)
		social.GET("/friends", c.social.Friends)
		social.DELETE("/friends/:uid", c.social.RemoveFriend)
	}

	library := rg.Group("/library")
	{
		library.POST("", c.library.Add)
		library.GET("", c.library.List)
		library.GET("/:id", c.library.Get)
		library.DELETE("/:id", c.library.Delete)
	}

	paths := rg.Group("/learning-paths")
	{
		paths.POST("/generate", c.learningPath.Generate)
		paths.POST("", c.learningPath.Save)
		paths.GET("", c.learningPath.List)
		paths.GET("/:id", c.learningPath.Get)
		paths.PUT("/:id/days/:day", c.learningPath.MarkDay)
	}

	content := rg.Group("/content")
	{
		content.POST("/video", c.content.Video)
		content.POST("/presentation", c.content.Presentation)
		content.POST("/notes", c.content.Notes)
		content.POST("/ebook", c.content.Ebook)
		content.POST("/doubt", c.content.Doubt)
		content.POST("/career", c.content.Career)
		content.POST("/video/preview", c.content.VideoPreview)
		content.POST("/practice-test", c.content.PracticeTest)
		content.POST("/practice-test/grade", c.content.GradePractice)
	}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", c.notification.List)
		notifications.PUT("/read", c.notification.MarkAllRead)
		notifications.PUT("/:id/read", c.notification.MarkRead)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	attempt := rg.Group("/attempt")
	{
		attempt.GET("", c.attempt.State)
		attempt.DELETE("", c.attempt.Leave)
		attempt.GET("/ws", c.attempt.Stream)
		attempt.POST("/join", c.attempt.Join)
		attempt.PUT("/answer", c.attempt.Answer)
		attempt.POST("/confirm", c.attempt.RequestSubmit)
		attempt.DELETE("/confirm", c.attempt.CancelSubmit)
		attempt.POST("/submit", c.attempt.Submit)
		attempt.POST("/return", c.attempt.ReturnToList)
	}
	rg.GET("/results", c.attempt.Results)
	rg.POST("/classrooms/join", c.classroom.Join)
	rg.POST("/assignments/:id/submit", c.assignment.Submit)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	tests := rg.Group("/tests")
	{
		tests.POST("", c.test.CreateManual)
		tests.POST("/ai", c.test.CreateAI)
		tests.GET("", c.test.ListMine)
		tests.GET("/:id", c.test.Get)
		tests.POST("/:id/live", c.test.GoLive)
		tests.POST("/:id/end", c.test.End)
		tests.POST("/:id/pdf", c.test.ExportPDF)
	}
	rg.POST("/authoring", c.attempt.Author)
	rg.POST("/classrooms", c.classroom.Create)
	rg.POST("/assignments", c.assignment.Create)
	rg.GET("/analytics", c.analytics.Overview)
	rg.GET("/analytics/tests/:id", c.analytics.ForTest)
}
