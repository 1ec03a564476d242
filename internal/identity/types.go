package identity

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrSignInFailed       = errors.New("sign in failed")
	ErrInvalidSession     = errors.New("invalid session")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrInvalidRole        = errors.New("invalid role")
)

// Identity is an account held by the external identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a signed-in identity with its bearer token.
type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Resolution is the outcome of resolving an email to a usable session.
type Resolution struct {
	Session  *Session
	Identity Identity
	// GeneratedPassword is set when the account was created with a generated password.
	// It must be shown to the user out of band.
	GeneratedPassword string
	// Created reports whether a new account was created.
	Created bool
}

// Role is an application role stored locally.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile holds the display data of an identity.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GoTrueClient talks to a GoTrue-compatible auth REST API.
type GoTrueClient struct {
	httpClient *http.Client
	BaseURL    string
	APIKey     string
}

// Resolver turns an email and optional password into a session, creating the account
// when needed.
type Resolver struct {
	provider Provider
	generate func() (string, error)
}

// profileStore persists profiles and roles.
type profileStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	clock clockwork.Clock
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int      `json:"expires_in"`
	ExpiresAt   int64    `json:"expires_at"`
	User        authUser `json:"user"`
}

type errorResponse struct {
	Code             int    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
