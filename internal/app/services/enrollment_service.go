package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// EnrollmentService handles enrollment, drop, rosters and grading.
type EnrollmentService struct {
	userStore       UserStore
	courseStore     CourseStore
	enrollmentStore EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(userStore UserStore, courseStore CourseStore, enrollmentStore EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		userStore:       userStore,
		courseStore:     courseStore,
		enrollmentStore: enrollmentStore,
	}
}

// ListStudentCourses returns the courses the student is enrolled in,
// each carrying the student's grade.
func (s *EnrollmentService) ListStudentCourses(ctx context.Context, username string) ([]models.StudentCourse, error) {
	student, err := s.resolveStudent(ctx, username)
	if err != nil {
		return nil, err
	}

	return s.enrollmentStore.ListCoursesByUser(ctx, student.ID)
}

// Enroll enrolls a student in a course at the default grade. The check
// order is fixed: student, course, capacity, duplicate. It decides which
// error surfaces when several conditions hold at once.
func (s *EnrollmentService) Enroll(ctx context.Context, username string, courseID int64) error {
	student, err := s.resolveStudent(ctx, username)
	if err != nil {
		return err
	}

	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	count, err := s.courseStore.CountEnrollments(ctx, course.ID)
	if err != nil {
		return err
	}
	if count >= course.Capacity {
		return apperrors.ErrCourseFull
	}

	_, err = s.enrollmentStore.GetByUserAndCourse(ctx, student.ID, course.ID)
	if err == nil {
		return apperrors.ErrAlreadyEnrolled
	}
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return err
	}

	return s.enrollmentStore.Create(ctx, &models.Enrollment{
		UserID:   student.ID,
		CourseID: course.ID,
		Grade:    models.DefaultEnrollGrade,
	})
}

// Remove drops a student from a course. Capacity is derived at read
// time, so deleting the row is the whole operation.
func (s *EnrollmentService) Remove(ctx context.Context, username string, courseID int64) error {
	student, err := s.resolveStudent(ctx, username)
	if err != nil {
		return err
	}

	enrollment, err := s.enrollmentStore.GetByUserAndCourse(ctx, student.ID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return apperrors.ErrNotEnrolled
		}
		return err
	}

	return s.enrollmentStore.Delete(ctx, enrollment.ID)
}

// CourseRoster returns every enrollment of a course joined with the
// owning student's identity. Enrollments whose user cannot be resolved
// as a student are skipped rather than failing the call.
func (s *EnrollmentService) CourseRoster(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	return s.enrollmentStore.ListRosterByCourse(ctx, courseID)
}

// UpdateGrade overwrites a student's grade in a course the teacher owns.
// Ownership is checked by resolving the course with the teacher's
// display name attached, so a foreign course reports CourseNotFound.
// The grade value is parsed last, after every lookup has passed.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, teacherUsername string, courseID int64, studentUsername string, newGrade interface{}) error {
	teacher, err := s.userStore.GetByUsernameAndRole(ctx, teacherUsername, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrTeacherNotFound
		}
		return err
	}

	course, err := s.courseStore.GetByIDAndTeacher(ctx, courseID, teacher.DisplayName)
	if err != nil {
		return err
	}

	student, err := s.resolveStudent(ctx, studentUsername)
	if err != nil {
		return err
	}

	enrollment, err := s.enrollmentStore.GetByUserAndCourse(ctx, student.ID, course.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return apperrors.ErrNotEnrolled
		}
		return err
	}

	grade, err := parseGrade(newGrade)
	if err != nil {
		return apperrors.ErrInvalidGradeFormat
	}

	return s.enrollmentStore.UpdateGrade(ctx, enrollment.ID, grade)
}

func (s *EnrollmentService) resolveStudent(ctx context.Context, username string) (*models.User, error) {
	student, err := s.userStore.GetByUsernameAndRole(ctx, username, models.RoleStudent)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// parseGrade accepts the grade however JSON delivered it: a number, a
// numeric string, or a json.Number. No range validation is applied.
func parseGrade(v interface{}) (int, error) {
	switch g := v.(type) {
	case int:
		return g, nil
	case int64:
		return int(g), nil
	case float64:
		return int(g), nil
	case json.Number:
		n, err := g.Int64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(g))
	default:
		return 0, apperrors.ErrInvalidGradeFormat
	}
}
