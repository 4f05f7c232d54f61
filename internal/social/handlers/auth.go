package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/platform/auth"
	"github.com/example/social-platform/internal/social/store"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      store.User `json:"user"`
}

// Signup handles POST /v1/auth/signup
func Signup(us store.UserStore, issuer auth.Issuer, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		username := strings.TrimSpace(req.Username)
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !usernameRe.MatchString(username) {
			api.BadRequest(w, "INVALID_USERNAME", "username must be 3-30 characters of letters, digits or underscore", "", nil)
			return
		}
		if email == "" || !strings.Contains(email, "@") {
			api.BadRequest(w, "INVALID_EMAIL", "a valid email is required", "", nil)
			return
		}
		if len(req.Password) < 8 {
			api.BadRequest(w, "WEAK_PASSWORD", "password must be at least 8 characters", "", nil)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			api.Internal(w, "")
			return
		}

		u, err := us.Create(r.Context(), store.CreateUserParams{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
		})
		if errors.Is(err, store.ErrConflict) {
			api.Conflict(w, "TAKEN", "username or email already in use", "", nil)
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}

		token, exp, err := issuer.NewToken(u.ID, time.Time{})
		if err != nil {
			api.Internal(w, "")
			return
		}

		an.Publish(analytics.SubjectUserRegistered, "user_registered", u.ID, nil)
		api.WriteJSON(w, http.StatusCreated, authResponse{Token: token, ExpiresAt: exp, User: u})
	}
}

// Login handles POST /v1/auth/login
//
// Accepts email or username as the login. Unknown login and wrong password
// share one error, so the response never leaks which accounts exist.
func Login(us store.UserStore, issuer auth.Issuer, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		login := strings.TrimSpace(req.Login)
		if login == "" || req.Password == "" {
			api.BadRequest(w, "MISSING_CREDENTIALS", "login and password are required", "", nil)
			return
		}

		u, hash, err := us.FindByLogin(r.Context(), login)
		if errors.Is(err, store.ErrNotFound) {
			api.Unauthorized(w, "INVALID_CREDENTIALS", "invalid login or password", "")
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			api.Unauthorized(w, "INVALID_CREDENTIALS", "invalid login or password", "")
			return
		}

		token, exp, err := issuer.NewToken(u.ID, time.Time{})
		if err != nil {
			api.Internal(w, "")
			return
		}

		an.Publish(analytics.SubjectUserLoggedIn, "user_logged_in", u.ID, nil)
		api.WriteJSON(w, http.StatusOK, authResponse{Token: token, ExpiresAt: exp, User: u})
	}
}
