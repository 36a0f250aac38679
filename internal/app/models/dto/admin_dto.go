package dto

import "github.com/oguzhanv/courseflow/internal/app/models"

// CreateUserRequest is the admin payload for inserting a user record.
type CreateUserRequest struct {
	Username    string      `json:"username" binding:"required"`
	Password    string      `json:"password" binding:"required"`
	Role        models.Role `json:"role" binding:"required"`
	DisplayName string      `json:"display_name"`
}

// UpdateUserRequest is the admin payload for editing a user record.
// Only display_name and password are mutable.
type UpdateUserRequest struct {
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// CourseRequest is the admin payload for creating or updating a course.
type CourseRequest struct {
	Name     string `json:"name" binding:"required"`
	Teacher  string `json:"teacher" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
}

// CreateEnrollmentRequest is the admin payload for a direct enrollment
// insert. The capacity rule does not apply on this path.
type CreateEnrollmentRequest struct {
	UserID   int64 `json:"user_id" binding:"required"`
	CourseID int64 `json:"course_id" binding:"required"`
	Grade    int   `json:"grade"`
}
