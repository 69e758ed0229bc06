package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"coursemanager/internal/entity"
	"coursemanager/internal/observability"
	"coursemanager/internal/recaptcha"
	"coursemanager/internal/repository"
	"coursemanager/internal/session"
	"coursemanager/internal/templates"
)

// Deliberately identical for unknown email and wrong password, so the
// response never reveals whether an account exists.
const msgInvalidCredentials = "Invalid email or password."

const (
	msgRegisterRequired   = "First name, last name, email, and password are required."
	msgEmailTaken         = "Email already registered."
	msgRegistrationFailed = "Registration failed. Please try again."
	msgInternal           = "Something went wrong. Please try again."
)

// UserStore is the user persistence the auth flow depends on.
type UserStore interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type AuthHandler struct {
	users        UserStore
	sessions     *session.Manager
	captcha      *recaptcha.Verifier
	loginTmpl    *template.Template
	registerTmpl *template.Template
	log          *zap.SugaredLogger
}

func NewAuthHandler(users UserStore, sessions *session.Manager, captcha *recaptcha.Verifier, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		sessions:     sessions,
		captcha:      captcha,
		loginTmpl:    template.Must(template.ParseFS(templates.FS, "layout.html", "login.html")),
		registerTmpl: template.Must(template.ParseFS(templates.FS, "layout.html", "register.html")),
		log:          log,
	}
}

type loginData struct {
	LoggedIn     bool
	GeneralError string
	Errors       map[string]string
	Email        string
}

// LoginPage renders the empty login form; an already authenticated
// client goes straight to the dashboard.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sessions.Current(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, loginData{})
}

// Login validates the submitted credentials and issues a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	h.captcha.Forward(r.Context(), r.FormValue("recaptcha_token"), r.RemoteAddr)

	// Both fields are checked; validation never short-circuits.
	errs := map[string]string{}
	if email == "" || !validEmail(email) {
		errs["email"] = "Please enter a valid email address."
	}
	if password == "" {
		errs["password"] = "Password is required."
	}
	if len(errs) > 0 {
		h.renderLogin(w, loginData{Errors: errs, Email: email})
		return
	}

	user, err := h.users.FindByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.log.Errorw("login lookup failed", "err", err)
		observability.CaptureErr(err)
		h.renderLogin(w, loginData{GeneralError: msgInternal, Email: email})
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		h.renderLogin(w, loginData{GeneralError: msgInvalidCredentials, Email: email})
		return
	}

	// Fresh token on every login, never one the client held before.
	if _, err := h.sessions.LogIn(w, r, user.ID, user.Email); err != nil {
		h.log.Errorw("session creation failed", "err", err)
		observability.CaptureErr(err)
		h.renderLogin(w, loginData{GeneralError: msgInternal, Email: email})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type registerData struct {
	LoggedIn bool
	Error    string
	Form     map[string]string
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, registerData{Form: map[string]string{}})
}

// Register creates a new account. The duplicate-email lookup is only a
// courtesy check; the unique constraint in the store has the last word.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "unable to parse form", http.StatusBadRequest)
		return
	}

	firstname := strings.TrimSpace(r.FormValue("firstname"))
	lastname := strings.TrimSpace(r.FormValue("lastname"))
	school := strings.TrimSpace(r.FormValue("school"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	h.captcha.Forward(r.Context(), r.FormValue("recaptcha_token"), r.RemoteAddr)

	form := map[string]string{
		"firstname": firstname,
		"lastname":  lastname,
		"school":    school,
		"email":     email,
	}

	if firstname == "" || lastname == "" || email == "" || password == "" {
		h.renderRegister(w, registerData{Error: msgRegisterRequired, Form: form})
		return
	}

	if existing, err := h.users.FindByEmail(r.Context(), email); err == nil && existing != nil {
		h.renderRegister(w, registerData{Error: msgEmailTaken, Form: form})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Errorw("password hashing failed", "err", err)
		observability.CaptureErr(err)
		h.renderRegister(w, registerData{Error: msgRegistrationFailed, Form: form})
		return
	}

	user := &entity.User{
		Firstname:    firstname,
		Lastname:     lastname,
		School:       school,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			h.renderRegister(w, registerData{Error: msgEmailTaken, Form: form})
			return
		}
		// Internal detail goes to the log, never to the client.
		h.log.Errorw("user creation failed", "err", err)
		observability.CaptureErr(err)
		h.renderRegister(w, registerData{Error: msgRegistrationFailed, Form: form})
		return
	}

	h.log.Infow("user registered", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout destroys the session unconditionally; with no active session
// it is a no-op redirect.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.LogOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Check reports whether the request carries an authenticated session.
// Side-effect free.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{
		"authenticated": h.sessions.Current(r) != nil,
	})
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data loginData) {
	if data.Errors == nil {
		data.Errors = map[string]string{}
	}
	if err := h.loginTmpl.ExecuteTemplate(w, "login.html", data); err != nil {
		h.log.Errorw("login render failed", "err", err)
	}
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, data registerData) {
	if err := h.registerTmpl.ExecuteTemplate(w, "register.html", data); err != nil {
		h.log.Errorw("register render failed", "err", err)
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
