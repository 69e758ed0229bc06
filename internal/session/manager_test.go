package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coursemanager/internal/entity"
	"coursemanager/internal/repository"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*entity.Session{}}
}

func (m *memStore) Insert(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.CreatedAt = time.Now()
	m.sessions[s.Token] = &cp
	return nil
}

func (m *memStore) Find(_ context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.Expired(time.Now()) {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) Remove(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func newTestManager(store Store) *Manager {
	return NewManager(store, []byte("0123456789abcdef0123456789abcdef"), zap.NewNop().Sugar())
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLogInRotatesToken(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)

	// First login.
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	s1, err := m.LogIn(w, r, 1, "a@example.com")
	require.NoError(t, err)
	first := sessionCookie(t, w)
	assert.Equal(t, s1.Token, first.Value)

	// Second login carrying the first token: the old session must be
	// gone and the new token must differ.
	r2 := httptest.NewRequest(http.MethodPost, "/login", nil)
	r2.AddCookie(first)
	w2 := httptest.NewRecorder()
	s2, err := m.LogIn(w2, r2, 1, "a@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, s1.Token, s2.Token)
	_, err = store.Find(context.Background(), s1.Token)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCurrent(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	s, err := m.LogIn(w, r, 7, "b@example.com")
	require.NoError(t, err)

	authed := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	authed.AddCookie(sessionCookie(t, w))
	got := m.Current(authed)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.UserID)
	assert.Equal(t, "b@example.com", got.UserEmail)
	assert.Equal(t, s.Token, got.Token)

	// No cookie, no session.
	anon := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	assert.Nil(t, m.Current(anon))

	// Unknown token, no session.
	bogus := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	bogus.AddCookie(&http.Cookie{Name: CookieName, Value: "nope"})
	assert.Nil(t, m.Current(bogus))
}

func TestLogOutIsIdempotent(t *testing.T) {
	store := newMemStore()
	m := newTestManager(store)

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	_, err := m.LogIn(w, r, 1, "a@example.com")
	require.NoError(t, err)
	cookie := sessionCookie(t, w)

	out := httptest.NewRequest(http.MethodGet, "/logout", nil)
	out.AddCookie(cookie)
	m.LogOut(httptest.NewRecorder(), out)

	stale := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	stale.AddCookie(cookie)
	assert.Nil(t, m.Current(stale))

	// Logging out again, or with no session at all, must not blow up.
	m.LogOut(httptest.NewRecorder(), out)
	m.LogOut(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/logout", nil))
}

func TestFlashReadOnce(t *testing.T) {
	m := newTestManager(newMemStore())

	// POST writes the flash.
	post := httptest.NewRequest(http.MethodPost, "/dashboard", nil)
	w1 := httptest.NewRecorder()
	m.SetFlash(w1, post, FlashSuccess, "Course created successfully.")
	require.NotEmpty(t, w1.Result().Cookies())

	// The next GET reads it exactly once.
	get := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w1.Result().Cookies() {
		get.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	f := m.TakeFlash(w2, get)
	require.NotNil(t, f)
	assert.Equal(t, FlashSuccess, f.Type)
	assert.Equal(t, "Course created successfully.", f.Text)

	// The GET after that sees nothing.
	next := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range w2.Result().Cookies() {
		next.AddCookie(c)
	}
	assert.Nil(t, m.TakeFlash(httptest.NewRecorder(), next))
}

func TestTakeFlashWithoutFlash(t *testing.T) {
	m := newTestManager(newMemStore())
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	assert.Nil(t, m.TakeFlash(httptest.NewRecorder(), r))
}
