package services

import (
	"context"

	"github.com/oguzhanv/courseflow/internal/app/models"
)

// Storage interfaces consumed by the services. The pgx repositories in
// internal/app/repositories satisfy them; tests substitute in-memory
// implementations.

// UserStore is the user storage surface used by the services.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error)
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	DeleteWithEnrollments(ctx context.Context, id int64) error
}

// CourseStore is the course storage surface used by the services.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDAndTeacher(ctx context.Context, id int64, teacherName string) (*models.Course, error)
	ListWithCounts(ctx context.Context) ([]models.CourseSummary, error)
	ListByTeacherWithCounts(ctx context.Context, teacherName string) ([]models.CourseSummary, error)
	CountEnrollments(ctx context.Context, courseID int64) (int, error)
	Update(ctx context.Context, course *models.Course) error
	DeleteWithEnrollments(ctx context.Context, id int64) error
}

// EnrollmentStore is the enrollment storage surface used by the services.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	ListCoursesByUser(ctx context.Context, userID int64) ([]models.StudentCourse, error)
	ListRosterByCourse(ctx context.Context, courseID int64) ([]models.RosterEntry, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	UpdateGrade(ctx context.Context, enrollmentID int64, grade int) error
	Delete(ctx context.Context, id int64) error
}
