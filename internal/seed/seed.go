package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// Storage surfaces the seed routine needs. The pgx repositories satisfy
// them; tests use in-memory implementations.

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type CourseStore interface {
	GetByName(ctx context.Context, name string) (*models.Course, error)
	ListWithCounts(ctx context.Context) ([]models.CourseSummary, error)
	Create(ctx context.Context, course *models.Course) error
}

type EnrollmentStore interface {
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}

// Demo dataset. Grades: the default student's seeded courses carry 80,
// the bulk-enrolled students carry 50.
var (
	seedTeachers = []models.User{
		{Username: "ahepworth", Password: "678910", Role: models.RoleTeacher, DisplayName: "Ammon Hepworth"},
		{Username: "swalker", Password: "678910", Role: models.RoleTeacher, DisplayName: "Susan Walker"},
		{Username: "rjenkins", Password: "678910", Role: models.RoleTeacher, DisplayName: "Ralph Jenkins"},
	}

	seedDefaultStudent = models.User{
		Username: "student", Password: "12345", Role: models.RoleStudent, DisplayName: "Johnny Student",
	}

	seedExtraStudents = []string{"student1", "student2", "student3", "student4"}

	seedAdmin = models.User{
		Username: "admin", Password: "admin123", Role: models.RoleAdmin, DisplayName: "Administrator",
	}

	seedCourses = []models.Course{
		{Name: "Physics 121", Teacher: "Susan Walker", Time: "TR 11:00-11:50 AM", Capacity: 10},
		{Name: "CS 106", Teacher: "Ammon Hepworth", Time: "MWF 2:00-2:50 PM", Capacity: 10},
		{Name: "Math 101", Teacher: "Ralph Jenkins", Time: "MWF 10:00-10:50 AM", Capacity: 8},
		{Name: "CS 162", Teacher: "Ammon Hepworth", Time: "TR 3:00-3:50 PM", Capacity: 4},
	}

	seedDefaultStudentCourses = []string{"Physics 121", "CS 106"}
)

const (
	defaultStudentSeedGrade = 80
	extraStudentSeedGrade   = 50
)

// CreateDefaultData populates the demo dataset. Every step is
// insert-if-absent, so the routine is safe to run on every startup:
// a second run creates no rows and changes no grades.
func CreateDefaultData(ctx context.Context, users UserStore, courses CourseStore, enrollments EnrollmentStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Teacher accounts --- //
	for i := range seedTeachers {
		if err := ensureUser(ctx, users, seedTeachers[i]); err != nil {
			lgr.Error().Err(err).Str("username", seedTeachers[i].Username).Msg("Error creating teacher account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default student --- //
	if err := ensureUser(ctx, users, seedDefaultStudent); err != nil {
		lgr.Error().Err(err).Msg("Error creating default student")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Additional students, display name mirrors the username --- //
	for _, username := range seedExtraStudents {
		student := models.User{
			Username:    username,
			Password:    "12345",
			Role:        models.RoleStudent,
			DisplayName: username,
		}
		if err := ensureUser(ctx, users, student); err != nil {
			lgr.Error().Err(err).Str("username", username).Msg("Error creating additional student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Admin account --- //
	if err := ensureUser(ctx, users, seedAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Courses, only when the catalog is empty --- //
	existing, err := courses.ListWithCounts(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking course catalog")
		return errors.Join(finalErr, err)
	}
	if len(existing) == 0 {
		for i := range seedCourses {
			course := seedCourses[i]
			if err := courses.Create(ctx, &course); err != nil {
				lgr.Error().Err(err).Str("course", course.Name).Msg("Error creating course")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	// --- Enroll the default student --- //
	if err := enrollByNames(ctx, users, courses, enrollments, seedDefaultStudent.Username, seedDefaultStudentCourses, defaultStudentSeedGrade); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// --- Bulk-enroll the additional students into every course --- //
	allCourses, err := courses.ListWithCounts(ctx)
	if err != nil {
		return errors.Join(finalErr, err)
	}
	for _, username := range seedExtraStudents {
		student, err := users.GetByUsername(ctx, username)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for i := range allCourses {
			if err := ensureEnrollment(ctx, enrollments, student.ID, allCourses[i].ID, extraStudentSeedGrade); err != nil {
				lgr.Error().Err(err).Str("username", username).Int64("courseID", allCourses[i].ID).Msg("Error seeding enrollment")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// ensureUser inserts the user unless the username is already present.
func ensureUser(ctx context.Context, users UserStore, user models.User) error {
	_, err := users.GetByUsername(ctx, user.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	return users.Create(ctx, &user)
}

// ensureEnrollment inserts the enrollment unless the pair exists. An
// existing row keeps its grade.
func ensureEnrollment(ctx context.Context, enrollments EnrollmentStore, userID, courseID int64, grade int) error {
	_, err := enrollments.GetByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return err
	}

	return enrollments.Create(ctx, &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Grade:    grade,
	})
}

func enrollByNames(ctx context.Context, users UserStore, courses CourseStore, enrollments EnrollmentStore, username string, courseNames []string, grade int) error {
	student, err := users.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("seed student %s: %w", username, err)
	}

	var finalErr error
	for _, name := range courseNames {
		course, err := courses.GetByName(ctx, name)
		if err != nil {
			// A missing seed course is skipped, not fatal
			if errors.Is(err, apperrors.ErrCourseNotFound) {
				continue
			}
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if err := ensureEnrollment(ctx, enrollments, student.ID, course.ID, grade); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
