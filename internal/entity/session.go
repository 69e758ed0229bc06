package entity

import "time"

// Session is a server-side login session row. The token is held by the
// client in an HttpOnly cookie and rotated on every successful login.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	UserEmail string    `json:"user_email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
