package models

// Role enumerates the account types known to the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// User defines the user model based on the 'users' table.
// Credentials are stored and compared as plain text, matching the
// upstream data this system was built against.
type User struct {
	ID          int64  `json:"id" db:"id" example:"1"`
	Username    string `json:"username" db:"username" example:"student"` // Globally unique login name
	Password    string `json:"-" db:"password"`                          // Excluded from JSON
	Role        Role   `json:"role" db:"role" example:"student"`
	DisplayName string `json:"display_name" db:"display_name" example:"Johnny Student"`
}

// Public returns the user's password-free projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		DisplayName: u.DisplayName,
	}
}

// PublicUser is the password-free projection of a User.
type PublicUser struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}
