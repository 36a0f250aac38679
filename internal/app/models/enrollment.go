package models

// DefaultEnrollGrade is the grade assigned when a student enrolls.
const DefaultEnrollGrade = 80

// Enrollment links one student to one course, carrying a grade.
// At most one enrollment exists per (user, course) pair.
type Enrollment struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"user_id" db:"user_id"`
	CourseID int64 `json:"course_id" db:"course_id"`
	Grade    int   `json:"grade" db:"grade"`
}

// RosterEntry is an enrollment joined with the owning student's
// identity fields, as shown to the course's teacher.
type RosterEntry struct {
	EnrollmentID    int64  `json:"enrollment_id"`
	StudentUsername string `json:"student_username"`
	StudentName     string `json:"student_name"`
	Grade           int    `json:"grade"`
}
