package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"coursemanager/internal/entity"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts one user row and fills in the assigned id.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (firstname, lastname, school, email, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Firstname, u.Lastname, u.School, u.Email, u.PasswordHash).Scan(&u.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail looks up a user by the unique email key.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, firstname, lastname, school, email, password
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Firstname, &u.Lastname, &u.School, &u.Email, &u.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
