package services

import (
	"context"
	"errors"
	"strings"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

// AuthService handles authentication.
type AuthService struct {
	userStore UserStore
}

// NewAuthService creates a new auth service instance
func NewAuthService(userStore UserStore) *AuthService {
	return &AuthService{
		userStore: userStore,
	}
}

// Authenticate checks a username/password pair against storage and
// returns the matching user. Surrounding whitespace is trimmed from both
// inputs; the comparison itself is exact and case-sensitive. Any
// mismatch reports the same ErrInvalidCredentials, so the caller cannot
// tell an unknown user from a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	user, err := s.userStore.GetByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}
