package app

import (
	"tms_backend/docs"
	"tms_backend/internal/config"
	"tms_backend/internal/middleware"
	"tms_backend/internal/model"
	"tms_backend/pkg/monitoring"

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
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.GET("/courses/:id/tests", c.test.ListByCourse)
	rg.GET("/tests/:id", c.test.GetTest)
	rg.GET("/tests/:id/submissions/:submissionId", c.test.GetSubmission)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	{
		student.GET("/courses", c.student.MyCourses)
		student.GET("/dashboard", c.student.Dashboard)
		student.GET("/courses/:courseId/progress", c.progress.GetCourseProgress)
		student.POST("/sections/:sectionId/complete", c.progress.CompleteSection)
		student.POST("/tests/:id/submit", c.test.SubmitTest)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/dashboard", c.report.TeacherDashboard)

		teacher.POST("/courses", c.course.CreateCourse)
		teacher.POST("/courses/:id/sections", c.course.AddSection)
		teacher.POST("/courses/:id/publish", c.course.PublishCourse)
		teacher.POST("/courses/:id/assign", c.course.AssignCourse)
		teacher.GET("/courses/:id/students", c.course.CourseStudents)
		teacher.POST("/sections/:sectionId/media", c.course.UploadSectionMedia)

		teacher.POST("/tests", c.test.CreateTest)
		teacher.POST("/tests/:id/questions", c.test.AddQuestions)
		teacher.DELETE("/tests/:id/questions/:questionId", c.test.DeleteQuestion)
		teacher.POST("/submissions/:submissionId/grade", c.test.GradeAnswer)

		teacher.GET("/students/:id/courses", c.student.StudentCourses)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.report.AdminDashboard)

		admin.POST("/batches", c.batch.CreateBatch)
		admin.GET("/batches", c.batch.ListBatches)
		admin.POST("/batches/:id/students", c.batch.AssignStudents)
		admin.GET("/batches/:id/progress", c.batch.BatchProgress)

		admin.PUT("/users/:userId/role", c.auth.UpdateRole)
	}
}
