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
	"github.com/oguzhanv/courseflow/internal/pkg/dberrors"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password, role, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.Username, user.Password, user.Role, user.DisplayName).Scan(&user.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, role, display_name
		FROM users
		WHERE id = $1`,
		id).Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.DisplayName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, role, display_name
		FROM users
		WHERE username = $1`,
		username).Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.DisplayName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByUsernameAndRole retrieves a user matching both username and role.
// An absent record and a role mismatch are reported identically.
func (r *UserRepository) GetByUsernameAndRole(ctx context.Context, username string, role models.Role) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, role, display_name
		FROM users
		WHERE username = $1 AND role = $2`,
		username, role).Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.DisplayName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByCredentials retrieves a user whose username and password both
// match exactly. Comparison is case-sensitive plain text.
func (r *UserRepository) GetByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, role, display_name
		FROM users
		WHERE username = $1 AND password = $2`,
		username, password).Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.DisplayName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetAll retrieves every user in storage order.
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, password, role, display_name
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.DisplayName); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update overwrites a user's mutable fields.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1, display_name = $2
		WHERE id = $3`,
		user.Password, user.DisplayName, user.ID)

	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteWithEnrollments removes a user and its enrollments in one
// transaction, so no dangling enrollment rows survive the delete.
func (r *UserRepository) DeleteWithEnrollments(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM enrollments WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting user enrollments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		return nil
	})
}
