package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzhanv/courseflow/internal/app/models"
	"github.com/oguzhanv/courseflow/internal/pkg/apperrors"
)

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser("student", "12345", models.RoleStudent, "Johnny Student")
	svc := NewAuthService(store)

	user, err := svc.Authenticate(ctx, "student", "12345")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Username != "student" || user.Role != models.RoleStudent || user.DisplayName != "Johnny Student" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestAuthenticateTrimsWhitespace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser("student", "12345", models.RoleStudent, "Johnny Student")
	svc := NewAuthService(store)

	if _, err := svc.Authenticate(ctx, "  student ", " 12345\n"); err != nil {
		t.Errorf("Authenticate with padded input: %v", err)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable.
func TestAuthenticateUniformFailure(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addUser("student", "12345", models.RoleStudent, "Johnny Student")
	svc := NewAuthService(store)

	cases := []struct{ username, password string }{
		{"nobody", "12345"},
		{"student", "wrong"},
		{"Student", "12345"},
		{"student", "12345 extra"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Authenticate(ctx, tc.username, tc.password); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q, %q) err = %v, want ErrInvalidCredentials", tc.username, tc.password, err)
		}
	}
}
