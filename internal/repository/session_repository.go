package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coursemanager/internal/entity"
)

// SessionRepository persists login sessions keyed by their token.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Insert(ctx context.Context, s *entity.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, user_email, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.Token, s.UserID, s.UserEmail, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// Find returns the session for a token; expired rows count as missing.
func (r *SessionRepository) Find(ctx context.Context, token string) (*entity.Session, error) {
	var s entity.Session
	err := r.db.QueryRowContext(ctx, `
		SELECT token, user_id, user_email, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP
	`, token).Scan(&s.Token, &s.UserID, &s.UserEmail, &s.ExpiresAt, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// Remove is idempotent: deleting an unknown token is not an error.
func (r *SessionRepository) Remove(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
