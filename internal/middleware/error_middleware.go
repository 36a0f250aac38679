package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzhanv/courseflow/internal/app/models/dto"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
	"github.com/oguzhanv/courseflow/internal/pkg/logger"
)

// HandleAPIError maps service errors to the wire contract: a status
// code plus a {message} payload. Anything unrecognized is an internal
// error; its detail is logged, not leaked.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewMessageResponse("Invalid credentials"))
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("Student not found"))
	case errors.Is(err, apperrors.ErrTeacherNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("Teacher not found"))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("Course not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("User not found"))
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("Enrollment not found"))
	case errors.Is(err, apperrors.ErrNotEnrolled):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse("Not enrolled in this course"))
	case errors.Is(err, apperrors.ErrCourseFull):
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse("Course is full"))
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse("Already enrolled in this course"))
	case errors.Is(err, apperrors.ErrInvalidGradeFormat):
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse("Invalid grade format"))
	case errors.Is(err, apperrors.ErrUsernameTaken):
		c.JSON(http.StatusConflict, dto.NewMessageResponse("Username already taken"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewMessageResponse(err.Error()))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewMessageResponse("Permission denied"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewMessageResponse("Internal server error"))
	}
}
