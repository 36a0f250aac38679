package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// AdminService exposes direct record editing over all three tables.
// It deliberately bypasses the enrollment capacity rule: the capacity
// check is advisory and only applies to the student enroll path.
type AdminService struct {
	userStore       UserStore
	courseStore     CourseStore
	enrollmentStore EnrollmentStore
}

// NewAdminService creates a new admin service instance
func NewAdminService(userStore UserStore, courseStore CourseStore, enrollmentStore EnrollmentStore) *AdminService {
	return &AdminService{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
	}
}

// ListUsers returns every user record.
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userStore.GetAll(ctx)
}

// CreateUser inserts a new user after basic field validation.
func (s *AdminService) CreateUser(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if user.Password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, user.Role)
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}

	return s.userStore.Create(ctx, user)
}

// UpdateUser overwrites a user's display name and password. Username
// and role are immutable outside of delete/recreate.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, displayName, password string) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		user.DisplayName = displayName
	}
	if password != "" {
		user.Password = password
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user together with its enrollments, so no
// enrollment row is left pointing at a missing user.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.userStore.DeleteWithEnrollments(ctx, id)
}

// ListCourses returns every course with its enrollment count.
func (s *AdminService) ListCourses(ctx context.Context) ([]models.CourseSummary, error) {
	return s.courseStore.ListWithCounts(ctx)
}

// CreateCourse inserts a new course after basic field validation.
func (s *AdminService) CreateCourse(ctx context.Context, course *models.Course) error {
	if strings.TrimSpace(course.Name) == "" {
		return fmt.Errorf("%w: course name cannot be empty", apperrors.ErrValidationFailed)
	}
	if course.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidationFailed)
	}

	return s.courseStore.Create(ctx, course)
}

// UpdateCourse overwrites a course's fields.
func (s *AdminService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", apperrors.ErrValidationFailed)
	}

	return s.courseStore.Update(ctx, course)
}

// DeleteCourse removes a course and its dependent enrollment rows.
func (s *AdminService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseStore.DeleteWithEnrollments(ctx, id)
}

// ListEnrollments returns the raw enrollment rows of a course.
func (s *AdminService) ListEnrollments(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	return s.enrollmentStore.ListByCourse(ctx, courseID)
}

// CreateEnrollment inserts an enrollment directly. The referenced user
// and course must exist; capacity is not checked. A duplicate pair is
// rejected by storage.
func (s *AdminService) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	if _, err := s.userStore.GetByID(ctx, enrollment.UserID); err != nil {
		return err
	}
	if _, err := s.courseStore.GetByID(ctx, enrollment.CourseID); err != nil {
		return err
	}

	return s.enrollmentStore.Create(ctx, enrollment)
}

// DeleteEnrollment removes a single enrollment row.
func (s *AdminService) DeleteEnrollment(ctx context.Context, id int64) error {
	return s.enrollmentStore.Delete(ctx, id)
}

func validRole(role models.Role) bool {
	switch role {
	case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
		return true
	}
	return false
}
