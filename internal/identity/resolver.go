package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// NewResolver creates a Resolver backed by provider.
func NewResolver(provider Provider) *Resolver {
	return &Resolver{
		provider: provider,
		generate: GeneratePassword,
	}
}

// Resolve returns a session for email.
//
// A current session for the same email is reused as is. A session for another email is
// signed out first. Otherwise the account is created with password, or with a generated
// one when password is empty, and then signed in. An already registered email falls
// through to sign in with the supplied credentials.
func (r *Resolver) Resolve(ctx context.Context, current *Session, email, password string) (*Resolution, error) {
	email = strings.TrimSpace(email)

	if current != nil && current.AccessToken != "" {
		if strings.EqualFold(current.Email, email) {
			return &Resolution{
				Session:  current,
				Identity: Identity{ID: current.UserID, Email: current.Email},
			}, nil
		}
		log.Info("Signing out session for a different email", "sessionEmail", current.Email)
		if err := r.provider.SignOut(ctx, current.AccessToken); err != nil {
			log.Warn("Failed to sign out previous session", "error", err)
		}
	}

	res := &Resolution{}
	if password == "" {
		generated, err := r.generate()
		if err != nil {
			return nil, err
		}
		password = generated
		res.GeneratedPassword = generated
	}

	ident, err := r.provider.SignUp(ctx, email, password)
	switch {
	case err == nil:
		res.Created = true
		res.Identity = *ident
		log.Info("Created account", "userID", ident.ID)
	case errors.Is(err, ErrAlreadyRegistered):
		log.Debug("Account already exists, signing in", "email", email)
		res.GeneratedPassword = ""
	default:
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	session, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		log.Warn("Sign in after resolution failed", "error", err, "created", res.Created)
		if errors.Is(err, ErrEmailNotConfirmed) {
			return nil, ErrEmailNotConfirmed
		}
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
	res.Session = session
	res.Identity = Identity{ID: session.UserID, Email: session.Email}
	return res, nil
}
