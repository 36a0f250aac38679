package services

import (
	"context"
	"errors"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// CourseService handles the course catalog views.
type CourseService struct {
	userStore   UserStore
	courseStore CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(userStore UserStore, courseStore CourseStore) *CourseService {
	return &CourseService{
		userStore:   userStore,
		courseStore: courseStore,
	}
}

// ListCourses returns every course with its derived enrollment count.
// No pagination or filtering; storage order.
func (s *CourseService) ListCourses(ctx context.Context) ([]models.CourseSummary, error) {
	return s.courseStore.ListWithCounts(ctx)
}

// ListTeacherCourses returns the courses taught by the given teacher.
// The match is by the teacher's display name against the course's
// teacher field, not by a foreign key.
func (s *CourseService) ListTeacherCourses(ctx context.Context, username string) ([]models.CourseSummary, error) {
	teacher, err := s.userStore.GetByUsernameAndRole(ctx, username, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, err
	}

	return s.courseStore.ListByTeacherWithCounts(ctx, teacher.DisplayName)
}
