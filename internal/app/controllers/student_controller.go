package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
)

// StudentController handles the student-facing enrollment endpoints.
type StudentController struct {
	enrollmentService *services.EnrollmentService
}

// NewStudentController creates a new StudentController
func NewStudentController(enrollmentService *services.EnrollmentService) *StudentController {
	return &StudentController{
		enrollmentService: enrollmentService,
	}
}

// ListCourses returns the courses the student is enrolled in, with grades.
func (c *StudentController) ListCourses(ctx *gin.Context) {
	username := ctx.Query("username")

	courses, err := c.enrollmentService.ListStudentCourses(ctx, username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// Enroll adds the student to a course, subject to capacity and the
// one-enrollment-per-pair rule.
func (c *StudentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid request payload"))
		return
	}

	if err := c.enrollmentService.Enroll(ctx, req.Username, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrolled successfully"))
}

// Remove drops the student from a course.
func (c *StudentController) Remove(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid request payload"))
		return
	}

	if err := c.enrollmentService.Remove(ctx, req.Username, req.CourseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course removed successfully"))
}
