package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/controllers"
	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public catalog ---
	v1.GET("/courses", courseController.ListCourses)

	// --- Student routes ---
	// Identity travels in the request per the wire contract.
	student := v1.Group("/student")
	{
		student.GET("/courses", studentController.ListCourses)
		student.POST("/enroll", studentController.Enroll)
		student.POST("/remove", studentController.Remove)
	}

	// --- Teacher routes ---
	teacher := v1.Group("/teacher")
	{
		teacher.GET("/courses", teacherController.ListCourses)
		teacher.GET("/course/:courseId/enrollments", teacherController.CourseEnrollments)
		teacher.POST("/update_grade", teacherController.UpdateGrade)
	}

	// --- Admin routes, token-protected ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth())
	admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users", adminController.CreateUser)
		admin.PUT("/users/:id", adminController.UpdateUser)
		admin.DELETE("/users/:id", adminController.DeleteUser)

		admin.GET("/courses", adminController.ListCourses)
		admin.POST("/courses", adminController.CreateCourse)
		admin.PUT("/courses/:id", adminController.UpdateCourse)
		admin.DELETE("/courses/:id", adminController.DeleteCourse)

		admin.GET("/courses/:id/enrollments", adminController.ListEnrollments)
		admin.POST("/enrollments", adminController.CreateEnrollment)
		admin.DELETE("/enrollments/:id", adminController.DeleteEnrollment)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewMessageResponse("ok"))
	})
}
