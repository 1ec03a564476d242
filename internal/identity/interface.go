package identity

import "context"

// Provider defines the operations of the external identity provider.
// This allows for mock implementations to be used in tests.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
}

// ProfileStore defines the interface for local profile and role data.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	HasRole(ctx context.Context, userID string, role Role) (bool, error)
	GrantRole(ctx context.Context, userID string, role Role) error
}

// SessionVerifier turns a bearer token into a verified session.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}
