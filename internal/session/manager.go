package session

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"coursemanager/internal/entity"
	"coursemanager/internal/repository"
)

const (
	CookieName = "session_token"
	TTL        = 24 * time.Hour
)

// Store is the server-side session persistence, keyed by token.
type Store interface {
	Insert(ctx context.Context, s *entity.Session) error
	Find(ctx context.Context, token string) (*entity.Session, error)
	Remove(ctx context.Context, token string) error
}

// Manager owns the login-session lifecycle (create, look up, destroy)
// and the one-shot flash message carried between two requests of the
// same client.
type Manager struct {
	store   Store
	flashes *sessions.CookieStore
	log     *zap.SugaredLogger
}

func NewManager(store Store, secret []byte, log *zap.SugaredLogger) *Manager {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, flashes: cs, log: log}
}

// Current returns the authenticated session for the request, or nil
// when there is none.
func (m *Manager) Current(r *http.Request) *entity.Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	s, err := m.store.Find(r.Context(), cookie.Value)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		m.log.Errorw("session lookup failed", "err", err)
		return nil
	}
	return s
}

// LogIn creates a fresh session for the user and sets the cookie. Any
// session the client already held is destroyed first, so the token the
// client ends up with is never one it chose or carried before login.
func (m *Manager) LogIn(w http.ResponseWriter, r *http.Request, userID int, email string) (*entity.Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Remove(r.Context(), cookie.Value); err != nil {
			m.log.Errorw("removing pre-login session failed", "err", err)
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	s := &entity.Session{
		Token:     token,
		UserID:    userID,
		UserEmail: email,
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := m.store.Insert(r.Context(), s); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s, nil
}

// LogOut destroys the session and expires the cookie. Calling it
// without an active session is not an error.
func (m *Manager) LogOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Remove(r.Context(), cookie.Value); err != nil {
			m.log.Errorw("session removal failed", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func newToken() (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", fmt.Errorf("session token generation failed")
	}
	return hex.EncodeToString(key), nil
}
