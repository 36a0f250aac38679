package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
)

// CourseController serves the public course catalog.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses returns every course with its students_enrolled count.
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}
