package dto

import "github.com/oguzhanv/courseflow/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful authentication. The token is
// the request-scoped identity used by the admin endpoints; the message
// and user fields match the public wire contract.
type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token,omitempty"`
	User    models.PublicUser `json:"user"`
}
