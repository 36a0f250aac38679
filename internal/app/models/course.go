package models

// Course represents a course offering from the 'courses' table.
// The teacher association is a display-name value match, not a foreign
// key; two teachers sharing a display name would collide.
type Course struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Teacher  string `json:"teacher" db:"teacher"` // Teacher's display name
	Time     string `json:"time" db:"time"`       // Free-form schedule text
	Capacity int    `json:"capacity" db:"capacity"`
}

// CourseSummary is a course joined with its derived enrollment count.
// The count is computed at read time, never stored.
type CourseSummary struct {
	Course
	StudentsEnrolled int `json:"students_enrolled"`
}

// StudentCourse is a course view as seen by an enrolled student.
type StudentCourse struct {
	CourseSummary
	Grade int `json:"grade"`
}
