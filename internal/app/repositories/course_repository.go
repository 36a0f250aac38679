package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/db"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// courseWithCountQuery joins each course with its derived enrollment count.
const courseWithCountQuery = `
	SELECT c.id, c.name, c.teacher, c.time, c.capacity, COUNT(e.id)
	FROM courses c
	LEFT JOIN enrollments e ON e.course_id = c.id`

// Create inserts a new course and fills in the generated ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (name, teacher, time, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		course.Name, course.Teacher, course.Time, course.Capacity).Scan(&course.ID)

	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, teacher, time, capacity
		FROM courses
		WHERE id = $1`,
		id).Scan(&course.ID, &course.Name, &course.Teacher, &course.Time, &course.Capacity)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByName retrieves a course by its name.
func (r *CourseRepository) GetByName(ctx context.Context, name string) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, teacher, time, capacity
		FROM courses
		WHERE name = $1`,
		name).Scan(&course.ID, &course.Name, &course.Teacher, &course.Time, &course.Capacity)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetByIDAndTeacher retrieves a course only if its teacher field matches
// the given display name. Used as the grading ownership check: a course
// owned by someone else is indistinguishable from an absent course.
func (r *CourseRepository) GetByIDAndTeacher(ctx context.Context, id int64, teacherName string) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, teacher, time, capacity
		FROM courses
		WHERE id = $1 AND teacher = $2`,
		id, teacherName).Scan(&course.ID, &course.Name, &course.Teacher, &course.Time, &course.Capacity)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// ListWithCounts retrieves every course with its enrollment count.
func (r *CourseRepository) ListWithCounts(ctx context.Context) ([]models.CourseSummary, error) {
	rows, err := r.db.Query(ctx, courseWithCountQuery+`
		GROUP BY c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	return scanCourseSummaries(rows)
}

// ListByTeacherWithCounts retrieves the courses whose teacher field
// matches the given display name, with enrollment counts.
func (r *CourseRepository) ListByTeacherWithCounts(ctx context.Context, teacherName string) ([]models.CourseSummary, error) {
	rows, err := r.db.Query(ctx, courseWithCountQuery+`
		WHERE c.teacher = $1
		GROUP BY c.id
		ORDER BY c.id`, teacherName)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher courses: %w", err)
	}
	defer rows.Close()

	return scanCourseSummaries(rows)
}

func scanCourseSummaries(rows pgx.Rows) ([]models.CourseSummary, error) {
	summaries := make([]models.CourseSummary, 0)
	for rows.Next() {
		var s models.CourseSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Teacher, &s.Time, &s.Capacity, &s.StudentsEnrolled); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// CountEnrollments returns the current enrollment count for a course.
func (r *CourseRepository) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(id) FROM enrollments WHERE course_id = $1`,
		courseID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// Update overwrites a course's fields.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1, teacher = $2, time = $3, capacity = $4
		WHERE id = $5`,
		course.Name, course.Teacher, course.Time, course.Capacity, course.ID)

	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// DeleteWithEnrollments removes a course and its enrollments in one
// transaction. The course owns its enrollment rows, so the dependent
// rows go first to satisfy the foreign key.
func (r *CourseRepository) DeleteWithEnrollments(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting course enrollments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		return nil
	})
}
