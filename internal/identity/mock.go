package identity

import (
	"context"
	"sync"
)

// MockProvider is a mock implementation of the Provider interface for testing.
// It is safe for concurrent use.
type MockProvider struct {
	mu sync.Mutex

	SignUpFunc  func(email, password string) (*Identity, error)
	SignInFunc  func(email, password string) (*Session, error)
	SignOutFunc func(accessToken string) error
	GetUserFunc func(accessToken string) (*Identity, error)

	SignUpCalls []struct {
		Email    string
		Password string
	}
	SignInCalls []struct {
		Email    string
		Password string
	}
	SignOutCalls []string
}

// NewMockProvider creates a new mock instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	m.mu.Lock()
	m.SignUpCalls = append(m.SignUpCalls, struct {
		Email    string
		Password string
	}{email, password})
	m.mu.Unlock()
	if m.SignUpFunc != nil {
		return m.SignUpFunc(email, password)
	}
	return &Identity{ID: "user-" + email, Email: email}, nil
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	m.SignInCalls = append(m.SignInCalls, struct {
		Email    string
		Password string
	}{email, password})
	m.mu.Unlock()
	if m.SignInFunc != nil {
		return m.SignInFunc(email, password)
	}
	return &Session{AccessToken: "token-" + email, UserID: "user-" + email, Email: email}, nil
}

func (m *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	m.mu.Lock()
	m.SignOutCalls = append(m.SignOutCalls, accessToken)
	m.mu.Unlock()
	if m.SignOutFunc != nil {
		return m.SignOutFunc(accessToken)
	}
	return nil
}

func (m *MockProvider) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(accessToken)
	}
	return nil, ErrInvalidSession
}

// MockVerifier is a SessionVerifier backed by a static token table.
type MockVerifier struct {
	Sessions map[string]*Session
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (*Session, error) {
	if s, ok := m.Sessions[token]; ok {
		return s, nil
	}
	return nil, ErrInvalidSession
}
