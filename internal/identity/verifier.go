package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks bearer tokens. With a secret the token is verified locally as an
// HS256 JWT, otherwise the provider is asked for the user behind it.
type Verifier struct {
	secret   []byte
	provider Provider
	clock    clockwork.Clock
}

// NewVerifier creates a Verifier. secret may be empty.
func NewVerifier(secret string, provider Provider, clock clockwork.Clock) *Verifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Verifier{
		secret:   []byte(secret),
		provider: provider,
		clock:    clock,
	}
}

var _ SessionVerifier = (*Verifier)(nil)

// Verify returns the session carried by token.
func (v *Verifier) Verify(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}
	if len(v.secret) == 0 {
		return v.verifyRemote(ctx, token)
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	return &Session{
		AccessToken: token,
		UserID:      claims.Subject,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt.Time.UTC(),
	}, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (*Session, error) {
	if v.provider == nil {
		return nil, ErrInvalidSession
	}
	ident, err := v.provider.GetUser(ctx, token)
	if errors.Is(err, ErrInvalidSession) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session user: %w", err)
	}
	return &Session{AccessToken: token, UserID: ident.ID, Email: ident.Email}, nil
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the verified session stored by WithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
