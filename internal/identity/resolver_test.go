package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ReusesMatchingSession(t *testing.T) {
	provider := NewMockProvider()
	resolver := NewResolver(provider)
	current := &Session{AccessToken: "tok", UserID: "u1", Email: "Ana@Example.com"}

	res, err := resolver.Resolve(context.Background(), current, "ana@example.com", "")
	require.NoError(t, err)

	assert.Same(t, current, res.Session)
	assert.Equal(t, "u1", res.Identity.ID)
	assert.False(t, res.Created)
	assert.Empty(t, provider.SignUpCalls)
	assert.Empty(t, provider.SignInCalls)
	assert.Empty(t, provider.SignOutCalls)
}

func TestResolve_SignsOutDifferentSession(t *testing.T) {
	provider := NewMockProvider()
	resolver := NewResolver(provider)
	current := &Session{AccessToken: "old", UserID: "u1", Email: "other@example.com"}

	res, err := resolver.Resolve(context.Background(), current, "ana@example.com", "pw123456")
	require.NoError(t, err)

	assert.Equal(t, []string{"old"}, provider.SignOutCalls)
	assert.True(t, res.Created)
	assert.Equal(t, "ana@example.com", res.Session.Email)
}

func TestResolve_GeneratesPassword(t *testing.T) {
	provider := NewMockProvider()
	resolver := NewResolver(provider)

	res, err := resolver.Resolve(context.Background(), nil, "ana@example.com", "")
	require.NoError(t, err)

	require.Len(t, provider.SignUpCalls, 1)
	generated := provider.SignUpCalls[0].Password
	assert.Len(t, generated, 16)
	assert.Equal(t, generated, res.GeneratedPassword)
	assert.Equal(t, generated, provider.SignInCalls[0].Password)
	assert.True(t, res.Created)
}

func TestResolve_AlreadyRegisteredFallsThroughToSignIn(t *testing.T) {
	provider := NewMockProvider()
	provider.SignUpFunc = func(email, password string) (*Identity, error) {
		return nil, ErrAlreadyRegistered
	}
	resolver := NewResolver(provider)

	res, err := resolver.Resolve(context.Background(), nil, "ana@example.com", "pw123456")
	require.NoError(t, err)

	assert.False(t, res.Created)
	assert.Empty(t, res.GeneratedPassword)
	assert.Len(t, provider.SignInCalls, 1)
}

func TestResolve_SignInFailures(t *testing.T) {
	tests := []struct {
		name    string
		signIn  error
		wantErr error
	}{
		{"email not confirmed", ErrEmailNotConfirmed, ErrEmailNotConfirmed},
		{"wrong password", ErrInvalidCredentials, ErrSignInFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewMockProvider()
			provider.SignInFunc = func(email, password string) (*Session, error) {
				return nil, tt.signIn
			}
			resolver := NewResolver(provider)

			res, err := resolver.Resolve(context.Background(), nil, "ana@example.com", "pw123456")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolve_SignUpError(t *testing.T) {
	provider := NewMockProvider()
	provider.SignUpFunc = func(email, password string) (*Identity, error) {
		return nil, errors.New("boom")
	}
	resolver := NewResolver(provider)

	_, err := resolver.Resolve(context.Background(), nil, "ana@example.com", "pw123456")
	require.Error(t, err)
	assert.Empty(t, provider.SignInCalls)
}
