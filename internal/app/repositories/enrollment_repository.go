package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
	"github.com/oguzhanv/courseflow/internal/pkg/dberrors"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment and fills in the generated ID.
// A concurrent duplicate insert is caught by the unique pair constraint.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, course_id, grade)
		VALUES ($1, $2, $3)
		RETURNING id`,
		enrollment.UserID, enrollment.CourseID, enrollment.Grade).Scan(&enrollment.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_course_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		// The referenced user or course can vanish between the service
		// checks and the insert.
		if dberrors.IsForeignKeyViolation(err) {
			if dberrors.ConstraintName(err) == "enrollments_course_id_fkey" {
				return apperrors.ErrCourseNotFound
			}
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByUserAndCourse retrieves the enrollment for a (user, course) pair.
func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_id, grade
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2`,
		userID, courseID).Scan(&enrollment.ID, &enrollment.UserID, &enrollment.CourseID, &enrollment.Grade)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// ListCoursesByUser retrieves the courses a user is enrolled in, each
// with its enrollment count and the user's grade attached.
func (r *EnrollmentRepository) ListCoursesByUser(ctx context.Context, userID int64) ([]models.StudentCourse, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.teacher, c.time, c.capacity,
		       (SELECT COUNT(id) FROM enrollments WHERE course_id = c.id),
		       e.grade
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = $1
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.StudentCourse, 0)
	for rows.Next() {
		var sc models.StudentCourse
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Teacher, &sc.Time, &sc.Capacity, &sc.StudentsEnrolled, &sc.Grade); err != nil {
			return nil, fmt.Errorf("error scanning student course: %w", err)
		}
		courses = append(courses, sc)
	}

	return courses, rows.Err()
}

// ListRosterByCourse retrieves the roster for a course. The inner join
// on role='student' silently skips enrollments whose user is missing or
// no longer a student, instead of failing the whole call.
func (r *EnrollmentRepository) ListRosterByCourse(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.id, u.username, u.display_name, e.grade
		FROM enrollments e
		JOIN users u ON u.id = e.user_id AND u.role = 'student'
		WHERE e.course_id = $1
		ORDER BY e.id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}
	defer rows.Close()

	roster := make([]models.RosterEntry, 0)
	for rows.Next() {
		var entry models.RosterEntry
		if err := rows.Scan(&entry.EnrollmentID, &entry.StudentUsername, &entry.StudentName, &entry.Grade); err != nil {
			return nil, fmt.Errorf("error scanning roster entry: %w", err)
		}
		roster = append(roster, entry)
	}

	return roster, rows.Err()
}

// ListByCourse retrieves the raw enrollment rows for a course.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, course_id, grade
		FROM enrollments
		WHERE course_id = $1
		ORDER BY id`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Grade); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// UpdateGrade overwrites the grade of an enrollment.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, enrollmentID int64, grade int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE enrollments SET grade = $1 WHERE id = $2`,
		grade, enrollmentID)

	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete removes an enrollment by ID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
