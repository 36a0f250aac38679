package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oguzhanv/courseflow/internal/app/controllers"
	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/app/routes"
	"github.com/oguzhanv/courseflow/internal/app/services"
	"github.com/oguzhanv/courseflow/internal/middleware"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
	"github.com/oguzhanv/courseflow/internal/pkg/auth"
)

// state backs the fake stores. Slices keep insertion order, matching
// the id-ordered reads of the SQL repositories.
type state struct {
	users       []*models.User
	courses     []*models.Course
	enrollments []*models.Enrollment
	nextID      int64
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *state) addUser(username, password string, role models.Role, displayName string) *models.User {
	u := &models.User{ID: s.id(), Username: username, Password: password, Role: role, DisplayName: displayName}
	s.users = append(s.users, u)
	return u
}

func (s *state) addCourse(name, teacher, time string, capacity int) *models.Course {
	c := &models.Course{ID: s.id(), Name: name, Teacher: teacher, Time: time, Capacity: capacity}
	s.courses = append(s.courses, c)
	return c
}

func (s *state) addEnrollment(userID, courseID int64, grade int) *models.Enrollment {
	e := &models.Enrollment{ID: s.id(), UserID: userID, CourseID: courseID, Grade: grade}
	s.enrollments = append(s.enrollments, e)
	return e
}

func (s *state) countEnrollments(courseID int64) int {
	count := 0
	for _, e := range s.enrollments {
		if e.CourseID == courseID {
			count++
		}
	}
	return count
}

// The fakes embed the store interfaces and implement only what the
// exercised routes reach; an untested path panics on the nil embed.

type fakeUsers struct {
	services.UserStore
	s *state
}

func (f fakeUsers) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

func (f fakeUsers) GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	for _, u := range f.s.users {
		if u.Username == username && u.Role == role {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f fakeUsers) GetAll(ctx context.Context) ([]*models.User, error) {
	return f.s.users, nil
}

type fakeCourses struct {
	services.CourseStore
	s *state
}

func (f fakeCourses) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	for _, c := range f.s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f fakeCourses) GetByIDAndTeacher(ctx context.Context, id int64, teacherName string) (*models.Course, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil || c.Teacher != teacherName {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func (f fakeCourses) ListWithCounts(ctx context.Context) ([]models.CourseSummary, error) {
	summaries := make([]models.CourseSummary, 0, len(f.s.courses))
	for _, c := range f.s.courses {
		summaries = append(summaries, models.CourseSummary{Course: *c, StudentsEnrolled: f.s.countEnrollments(c.ID)})
	}
	return summaries, nil
}

func (f fakeCourses) ListByTeacherWithCounts(ctx context.Context, teacherName string) ([]models.CourseSummary, error) {
	all, _ := f.ListWithCounts(ctx)
	matched := make([]models.CourseSummary, 0)
	for _, s := range all {
		if s.Teacher == teacherName {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f fakeCourses) CountEnrollments(ctx context.Context, courseID int64) (int, error) {
	return f.s.countEnrollments(courseID), nil
}

type fakeEnrollments struct {
	services.EnrollmentStore
	s *state
}

func (f fakeEnrollments) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = f.s.id()
	f.s.enrollments = append(f.s.enrollments, enrollment)
	return nil
}

func (f fakeEnrollments) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	for _, e := range f.s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f fakeEnrollments) ListCoursesByUser(ctx context.Context, userID int64) ([]models.StudentCourse, error) {
	result := make([]models.StudentCourse, 0)
	for _, e := range f.s.enrollments {
		if e.UserID != userID {
			continue
		}
		c, err := fakeCourses{s: f.s}.GetByID(ctx, e.CourseID)
		if err != nil {
			continue
		}
		result = append(result, models.StudentCourse{
			CourseSummary: models.CourseSummary{Course: *c, StudentsEnrolled: f.s.countEnrollments(c.ID)},
			Grade:         e.Grade,
		})
	}
	return result, nil
}

func (f fakeEnrollments) ListRosterByCourse(ctx context.Context, courseID int64) ([]models.RosterEntry, error) {
	roster := make([]models.RosterEntry, 0)
	for _, e := range f.s.enrollments {
		if e.CourseID != courseID {
			continue
		}
		for _, u := range f.s.users {
			if u.ID == e.UserID && u.Role == models.RoleStudent {
				roster = append(roster, models.RosterEntry{
					EnrollmentID:    e.ID,
					StudentUsername: u.Username,
					StudentName:     u.DisplayName,
					Grade:           e.Grade,
				})
			}
		}
	}
	return roster, nil
}

func (f fakeEnrollments) UpdateGrade(ctx context.Context, enrollmentID int64, grade int) error {
	for _, e := range f.s.enrollments {
		if e.ID == enrollmentID {
			e.Grade = grade
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

func (f fakeEnrollments) Delete(ctx context.Context, id int64) error {
	for i, e := range f.s.enrollments {
		if e.ID == id {
			f.s.enrollments = append(f.s.enrollments[:i], f.s.enrollments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "courseflow.test",
	})
}

func newTestRouter(s *state) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := fakeUsers{s: s}
	courses := fakeCourses{s: s}
	enrollments := fakeEnrollments{s: s}
	jwtService := newTestJWT()

	authService := services.NewAuthService(users)
	courseService := services.NewCourseService(users, courses)
	enrollmentService := services.NewEnrollmentService(users, courses, enrollments)
	adminService := services.NewAdminService(users, courses, enrollments)

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewAuthController(authService, jwtService, zerolog.Nop()),
		controllers.NewCourseController(courseService),
		controllers.NewStudentController(enrollmentService),
		controllers.NewTeacherController(courseService, enrollmentService),
		controllers.NewAdminController(adminService),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router
}

func demoState() *state {
	s := &state{}
	s.addUser("swalker", "678910", models.RoleTeacher, "Susan Walker")
	s.addUser("ahepworth", "678910", models.RoleTeacher, "Ammon Hepworth")
	s.addUser("student", "12345", models.RoleStudent, "Johnny Student")
	s.addUser("admin", "admin123", models.RoleAdmin, "Administrator")
	s.addCourse("Physics 121", "Susan Walker", "TR 11:00-11:50 AM", 10)
	s.addCourse("CS 162", "Ammon Hepworth", "TR 3:00-3:50 PM", 1)
	return s
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func assertMessage(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if w.Code != status {
		t.Errorf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	if resp.Message != message {
		t.Errorf("message = %q, want %q", resp.Message, message)
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(demoState())

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "student", "password": "12345"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			Username    string `json:"username"`
			Role        string `json:"role"`
			DisplayName string `json:"display_name"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "Login successful" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Token == "" {
		t.Error("token missing from login response")
	}
	if resp.User.Username != "student" || resp.User.Role != "student" || resp.User.DisplayName != "Johnny Student" {
		t.Errorf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(w.Body.String(), "password") || strings.Contains(w.Body.String(), "12345") {
		t.Errorf("response leaks the password: %s", w.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(demoState())

	for _, creds := range []map[string]string{
		{"username": "nobody", "password": "12345"},
		{"username": "student", "password": "wrong"},
	} {
		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", creds, "")
		assertMessage(t, w, http.StatusUnauthorized, "Invalid credentials")
	}
}

func TestLoginMalformedBody(t *testing.T) {
	router := newTestRouter(demoState())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assertMessage(t, w, http.StatusBadRequest, "Invalid request payload")
}

func TestLogout(t *testing.T) {
	router := newTestRouter(demoState())
	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/logout", nil, "")
	assertMessage(t, w, http.StatusOK, "Logout successful")
}

func TestCourseCatalog(t *testing.T) {
	s := demoState()
	student := s.users[2]
	s.addEnrollment(student.ID, s.courses[0].ID, 80)
	router := newTestRouter(s)

	w := doRequest(t, router, http.MethodGet, "/api/v1/courses", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var courses []struct {
		Name             string `json:"name"`
		Teacher          string `json:"teacher"`
		Time             string `json:"time"`
		Capacity         int    `json:"capacity"`
		StudentsEnrolled int    `json:"students_enrolled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &courses); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("len = %d, want 2", len(courses))
	}
	if courses[0].Name != "Physics 121" || courses[0].StudentsEnrolled != 1 {
		t.Errorf("unexpected first course: %+v", courses[0])
	}
	if courses[1].StudentsEnrolled != 0 {
		t.Errorf("CS 162 enrolled = %d, want 0", courses[1].StudentsEnrolled)
	}
}

func TestStudentCoursesUnknownStudent(t *testing.T) {
	router := newTestRouter(demoState())
	w := doRequest(t, router, http.MethodGet, "/api/v1/student/courses?username=nobody", nil, "")
	assertMessage(t, w, http.StatusNotFound, "Student not found")
}

func TestEnrollAndRemoveFlow(t *testing.T) {
	s := demoState()
	router := newTestRouter(s)
	physicsID := s.courses[0].ID

	enroll := map[string]interface{}{"username": "student", "course_id": physicsID}

	w := doRequest(t, router, http.MethodPost, "/api/v1/student/enroll", enroll, "")
	assertMessage(t, w, http.StatusOK, "Enrolled successfully")

	w = doRequest(t, router, http.MethodPost, "/api/v1/student/enroll", enroll, "")
	assertMessage(t, w, http.StatusBadRequest, "Already enrolled in this course")

	w = doRequest(t, router, http.MethodPost, "/api/v1/student/remove", enroll, "")
	assertMessage(t, w, http.StatusOK, "Course removed successfully")

	w = doRequest(t, router, http.MethodPost, "/api/v1/student/remove", enroll, "")
	assertMessage(t, w, http.StatusNotFound, "Not enrolled in this course")

	w = doRequest(t, router, http.MethodPost, "/api/v1/student/enroll", enroll, "")
	assertMessage(t, w, http.StatusOK, "Enrolled successfully")
}

func TestEnrollCourseFull(t *testing.T) {
	s := demoState()
	other := s.addUser("student2", "12345", models.RoleStudent, "student2")
	cs162 := s.courses[1]
	s.addEnrollment(other.ID, cs162.ID, 50)
	router := newTestRouter(s)

	w := doRequest(t, router, http.MethodPost, "/api/v1/student/enroll",
		map[string]interface{}{"username": "student", "course_id": cs162.ID}, "")
	assertMessage(t, w, http.StatusBadRequest, "Course is full")
}

func TestEnrollUnknownCourse(t *testing.T) {
	router := newTestRouter(demoState())
	w := doRequest(t, router, http.MethodPost, "/api/v1/student/enroll",
		map[string]interface{}{"username": "student", "course_id": 999}, "")
	assertMessage(t, w, http.StatusNotFound, "Course not found")
}

func TestTeacherCourses(t *testing.T) {
	router := newTestRouter(demoState())

	w := doRequest(t, router, http.MethodGet, "/api/v1/teacher/courses?username=swalker", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	var courses []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &courses); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "Physics 121" {
		t.Errorf("unexpected courses: %+v", courses)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/teacher/courses?username=nobody", nil, "")
	assertMessage(t, w, http.StatusNotFound, "Teacher not found")
}

func TestTeacherRoster(t *testing.T) {
	s := demoState()
	student := s.users[2]
	physics := s.courses[0]
	s.addEnrollment(student.ID, physics.ID, 80)
	router := newTestRouter(s)

	w := doRequest(t, router, http.MethodGet, "/api/v1/teacher/course/"+itoa(physics.ID)+"/enrollments", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	var roster []struct {
		StudentUsername string `json:"student_username"`
		StudentName     string `json:"student_name"`
		Grade           int    `json:"grade"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &roster); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(roster) != 1 || roster[0].StudentUsername != "student" || roster[0].Grade != 80 {
		t.Errorf("unexpected roster: %+v", roster)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/teacher/course/abc/enrollments", nil, "")
	assertMessage(t, w, http.StatusBadRequest, "Course ID must be a valid number")
}

func TestUpdateGrade(t *testing.T) {
	s := demoState()
	student := s.users[2]
	physics := s.courses[0]
	e := s.addEnrollment(student.ID, physics.ID, 80)
	router := newTestRouter(s)

	body := map[string]interface{}{
		"teacher_username": "swalker",
		"course_id":        physics.ID,
		"student_username": "student",
		"new_grade":        95,
	}
	w := doRequest(t, router, http.MethodPost, "/api/v1/teacher/update_grade", body, "")
	assertMessage(t, w, http.StatusOK, "Grade updated successfully")
	if e.Grade != 95 {
		t.Errorf("grade = %d, want 95", e.Grade)
	}

	// Grades travel as strings too.
	body["new_grade"] = "97"
	w = doRequest(t, router, http.MethodPost, "/api/v1/teacher/update_grade", body, "")
	assertMessage(t, w, http.StatusOK, "Grade updated successfully")
	if e.Grade != 97 {
		t.Errorf("grade = %d, want 97", e.Grade)
	}

	body["new_grade"] = "ninety"
	w = doRequest(t, router, http.MethodPost, "/api/v1/teacher/update_grade", body, "")
	assertMessage(t, w, http.StatusBadRequest, "Invalid grade format")
	if e.Grade != 97 {
		t.Errorf("grade = %d, want 97 unchanged", e.Grade)
	}

	// A teacher cannot grade a course they do not own.
	body["teacher_username"] = "ahepworth"
	body["new_grade"] = 100
	w = doRequest(t, router, http.MethodPost, "/api/v1/teacher/update_grade", body, "")
	assertMessage(t, w, http.StatusNotFound, "Course not found")
	if e.Grade != 97 {
		t.Errorf("grade = %d, want 97 unchanged", e.Grade)
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	s := demoState()
	router := newTestRouter(s)
	jwtService := newTestJWT()

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, "")
	assertMessage(t, w, http.StatusUnauthorized, "Authentication required")

	studentToken, _, err := jwtService.GenerateToken(s.users[2])
	if err != nil {
		t.Fatalf("sign student token: %v", err)
	}
	w = doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, studentToken)
	assertMessage(t, w, http.StatusForbidden, "Permission denied")

	adminToken, _, err := jwtService.GenerateToken(s.users[3])
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}
	w = doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	var users []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(users) != 4 {
		t.Errorf("len = %d, want 4", len(users))
	}
	if strings.Contains(w.Body.String(), "admin123") {
		t.Errorf("admin listing leaks passwords: %s", w.Body.String())
	}
}

func TestAdminRejectsGarbageToken(t *testing.T) {
	router := newTestRouter(demoState())

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, "not-a-token")
	assertMessage(t, w, http.StatusUnauthorized, "Invalid token")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Basic abc")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assertMessage(t, w2, http.StatusUnauthorized, "Invalid token format")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(demoState())
	w := doRequest(t, router, http.MethodGet, "/api/v1/health", nil, "")
	assertMessage(t, w, http.StatusOK, "ok")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
