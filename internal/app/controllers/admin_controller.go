package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
)

// AdminController exposes direct record editing on all three tables.
// Every route behind it requires an admin-role token.
type AdminController struct {
	adminService *services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// ListUsers returns every user record, passwords excluded by the model's
// JSON tags.
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.adminService.ListUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// CreateUser inserts a user record.
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid user data"))
		return
	}

	user := &models.User{
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
		DisplayName: req.DisplayName,
	}

	if err := c.adminService.CreateUser(ctx, user); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// UpdateUser edits a user's display name or password.
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid user data"))
		return
	}

	user, err := c.adminService.UpdateUser(ctx, id, req.DisplayName, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeleteUser removes a user and its enrollments.
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.adminService.DeleteUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("User deleted successfully"))
}

// ListCourses returns every course with enrollment counts.
func (c *AdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.adminService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// CreateCourse inserts a course record.
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid course data"))
		return
	}

	course := &models.Course{
		Name:     req.Name,
		Teacher:  req.Teacher,
		Time:     req.Time,
		Capacity: req.Capacity,
	}

	if err := c.adminService.CreateCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse overwrites a course record.
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid course data"))
		return
	}

	course := &models.Course{
		ID:       id,
		Name:     req.Name,
		Teacher:  req.Teacher,
		Time:     req.Time,
		Capacity: req.Capacity,
	}

	if err := c.adminService.UpdateCourse(ctx, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course and its dependent enrollments.
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.adminService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}

// ListEnrollments returns the raw enrollment rows of a course.
func (c *AdminController) ListEnrollments(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	enrollments, err := c.adminService.ListEnrollments(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, enrollments)
}

// CreateEnrollment inserts an enrollment row directly, bypassing the
// capacity rule.
func (c *AdminController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid enrollment data"))
		return
	}

	enrollment := &models.Enrollment{
		UserID:   req.UserID,
		CourseID: req.CourseID,
		Grade:    req.Grade,
	}

	if err := c.adminService.CreateEnrollment(ctx, enrollment); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, enrollment)
}

// DeleteEnrollment removes a single enrollment row.
func (c *AdminController) DeleteEnrollment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return
	}

	if err := c.adminService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Enrollment deleted successfully"))
}

// parseIDParam reads a numeric path parameter, writing the 400 response
// itself on failure.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewMessageResponse("ID must be a valid number"))
		return 0, err
	}
	return id, nil
}
