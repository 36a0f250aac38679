package services

import (
	"context"
	"sort"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// memStore is an in-memory implementation of the storage interfaces,
// mirroring the SQL repositories' behavior closely enough for the
// business rules to be exercised without a database.
type memStore struct {
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]*models.User),
		courses:     make(map[int64]*models.Course),
		enrollments: make(map[int64]*models.Enrollment),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(username, password string, role models.Role, displayName string) *models.User {
	u := &models.User{ID: m.id(), Username: username, Password: password, Role: role, DisplayName: displayName}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addCourse(name, teacher, time string, capacity int) *models.Course {
	c := &models.Course{ID: m.id(), Name: name, Teacher: teacher, Time: time, Capacity: capacity}
	m.courses[c.ID] = c
	return c
}

func (m *memStore) addEnrollment(userID, courseID int64, grade int) *models.Enrollment {
	e := &models.Enrollment{ID: m.id(), UserID: userID, CourseID: courseID, Grade: grade}
	m.enrollments[e.ID] = e
	return e
}

// --- UserStore ---

func (m *memStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Role == role {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (m *memStore) GetAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memStore) DeleteWithEnrollments(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	for eid, e := range m.enrollments {
		if e.UserID == id {
			delete(m.enrollments, eid)
		}
	}
	delete(m.users, id)
	return nil
}

// --- CourseStore ---

// courseStore adapts memStore to the CourseStore interface; the Create
// methods of users and courses would otherwise collide on one struct.
type courseStore struct{ *memStore }

func (m courseStore) Create(ctx context.Context, course *models.Course) error {
	course.ID = m.id()
	m.courses[course.ID] = course
	return nil
}

func (m courseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (m courseStore) GetByIDAndTeacher(ctx context.Context, id int64, teacherName string) (*models.Course, error) {
	c, ok := m.courses[id]
	if !ok || c.Teacher != teacherName {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (m courseStore) ListWithCounts(ctx context.Context) ([]models.CourseSummary, error) {
	summaries := make([]models.CourseSummary, 0, len(m.courses))
	for _, c := range m.courses {
		summaries = append(summaries, models.CourseSummary{Course: *c, StudentsEnrolled: m.countEnrollments(c.ID)})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (m courseStore) ListByTeacherWithCounts(ctx context.Context, teacherName string) ([]models.CourseSummary, error) {
	all, _ := m.ListWithCounts(ctx)
	matched := make([]models.CourseSummary, 0)
	for _, s := range all {
		if s.Teacher == teacherName {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (m courseStore) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	return m.countEnrollments(courseID), nil
}

func (m courseStore) Update(ctx context.Context, course *models.Course) error {
	if _, ok := m.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	m.courses[course.ID] = course
	return nil
}

func (m courseStore) DeleteWithEnrollments(ctx context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for eid, e := range m.enrollments {
		if e.CourseID == id {
			delete(m.enrollments, eid)
		}
	}
	delete(m.courses, id)
	return nil
}

func (m *memStore) countEnrollments(courseID int64) int {
	count := 0
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			count++
		}
	}
	return count
}

// --- EnrollmentStore ---

type enrollmentStore struct{ *memStore }

func (m enrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	for _, e := range m.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	enrollment.ID = m.id()
	m.enrollments[enrollment.ID] = enrollment
	return nil
}

func (m enrollmentStore) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (m enrollmentStore) ListCoursesByUser(ctx context.Context, userID int64) ([]models.StudentCourse, error) {
	courses := make([]models.StudentCourse, 0)
	for _, e := range m.enrollments {
		if e.UserID != userID {
			continue
		}
		c, ok := m.courses[e.CourseID]
		if !ok {
			continue
		}
		courses = append(courses, models.StudentCourse{
			CourseSummary: models.CourseSummary{Course: *c, StudentsEnrolled: m.countEnrollments(c.ID)},
			Grade:         e.Grade,
		})
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (m enrollmentStore) ListRosterByCourse(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	roster := make([]models.RosterEntry, 0)
	for _, e := range m.enrollments {
		if e.CourseID != courseID {
			continue
		}
		u, ok := m.users[e.UserID]
		if !ok || u.Role != models.RoleStudent {
			continue
		}
		roster = append(roster, models.RosterEntry{
			EnrollmentID:    e.ID,
			StudentUsername: u.Username,
			StudentName:     u.DisplayName,
			Grade:           e.Grade,
		})
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].EnrollmentID < roster[j].EnrollmentID })
	return roster, nil
}

func (m enrollmentStore) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	enrollments := make([]models.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			enrollments = append(enrollments, *e)
		}
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments, nil
}

func (m enrollmentStore) UpdateGrade(ctx context.Context, enrollmentID int64, grade int) error {
	e, ok := m.enrollments[enrollmentID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Grade = grade
	return nil
}

func (m enrollmentStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(m.enrollments, id)
	return nil
}
