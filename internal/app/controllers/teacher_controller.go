package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
)

// TeacherController handles the teacher-facing endpoints.
type TeacherController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *TeacherController {
	return &TeacherController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

// ListCourses returns the courses whose teacher field matches the
// teacher's display name.
func (c *TeacherController) ListCourses(ctx *gin.Context) {
	username := ctx.Query("username")

	courses, err := c.courseService.ListTeacherCourses(ctx, username)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// CourseEnrollments returns the roster of a course.
func (c *TeacherController) CourseEnrollments(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Course ID must be a valid number"))
		return
	}

	roster, err := c.enrollmentService.CourseRoster(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roster)
}

// UpdateGrade overwrites a student's grade in a course owned by the
// requesting teacher.
func (c *TeacherController) UpdateGrade(ctx *gin.Context) {
	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid request payload"))
		return
	}

	err := c.enrollmentService.UpdateGrade(ctx, req.TeacherUsername, req.CourseID, req.StudentUsername, req.NewGrade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Grade updated successfully"))
}
