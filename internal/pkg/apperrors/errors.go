package apperrors

import "errors"

// Authentication and validation errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrValidationFailed   = errors.New("validation failed")
)

// User errors. A role mismatch and an absent record map to the same
// error.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// Course errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrCourseFull     = errors.New("course is full")
)

// Enrollment errors
var (
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrNotEnrolled        = errors.New("not enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidGradeFormat = errors.New("invalid grade format")
)
