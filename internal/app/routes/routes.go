package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/controllers"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/app/models/dto"
	"github.com/MrUnRobot/sistema-calificaciones-definitive/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	reportController *controllers.ReportController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	// Every route runs with a resolved session; anonymous ones included.
	router.Use(sessionMiddleware.Resolve())

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/login", authController.LoginView)

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(sessionMiddleware.RequireAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/trimesters", authController.Trimesters)
		authenticated.POST("/trimesters", authController.SelectTrimester)
		authenticated.GET("/grades", studentController.ListGrades)
		authenticated.GET("/reports", reportController.GroupReport)

		// Student CRUD is an admin surface; grade capture belongs to the
		// group teacher.
		adminProtected := authenticated.Group("")
		adminProtected.Use(sessionMiddleware.RequireRole(models.RoleAdmin))
		{
			adminProtected.POST("/students", studentController.Create)
			adminProtected.PUT("/students/:id", studentController.Update)
			adminProtected.DELETE("/students/:id", studentController.Delete)
			adminProtected.GET("/admin/dashboard", reportController.Dashboard)
		}

		teacherProtected := authenticated.Group("")
		teacherProtected.Use(sessionMiddleware.RequireRole(models.RoleTeacher))
		{
			teacherProtected.PUT("/students/:id/grades", studentController.UpdateGrades)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
