package dto

// EnrollRequest is the payload for student enroll and remove actions.
type EnrollRequest struct {
	Username string `json:"username" binding:"required"`
	CourseID int64  `json:"course_id" binding:"required"`
}

// UpdateGradeRequest is the payload for a teacher grade update. NewGrade
// is left untyped: clients send it as either a number or a string, and
// the parse failure has its own error in the contract.
type UpdateGradeRequest struct {
	TeacherUsername string      `json:"teacher_username" binding:"required"`
	CourseID        int64       `json:"course_id" binding:"required"`
	StudentUsername string      `json:"student_username" binding:"required"`
	NewGrade        interface{} `json:"new_grade"`
}
