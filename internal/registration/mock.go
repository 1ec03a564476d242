package registration

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the RegistrationStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc           func(r *Registration) error
	GetFunc              func(id string) (*Registration, error)
	GetLatestByUserFunc  func(userID string) (*Registration, error)
	ListFunc             func() ([]Registration, error)
	SetPaymentStatusFunc func(id string, status PaymentStatus) error
	AddPlayerFunc        func(registrationID string, in PlayerInput) (*Player, error)
	RemovePlayerFunc     func(playerID string) error
	GetPlayerFunc        func(playerID string) (*Player, error)
	ListPlayersFunc      func(registrationID string) ([]Player, error)
	ApproveFunc          func(registrationID string, team ApprovedTeam) error

	// Call records
	CreateCalls           []*Registration
	SetPaymentStatusCalls []struct {
		ID     string
		Status PaymentStatus
	}
	AddPlayerCalls []struct {
		RegistrationID string
		Input          PlayerInput
	}
	RemovePlayerCalls []string
	ApproveCalls      []struct {
		RegistrationID string
		Team           ApprovedTeam
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = nil
	m.SetPaymentStatusCalls = nil
	m.AddPlayerCalls = nil
	m.RemovePlayerCalls = nil
	m.ApproveCalls = nil
}

func (m *MockStore) Create(ctx context.Context, r *Registration) error {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, r)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(r)
	}
	if r.ID == "" {
		r.ID = "mock-registration"
	}
	r.PaymentStatus = PaymentPending
	r.ApprovalStatus = ApprovalPending
	return nil
}

func (m *MockStore) Get(ctx context.Context, id string) (*Registration, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, ErrRegistrationNotFound
}

func (m *MockStore) GetLatestByUser(ctx context.Context, userID string) (*Registration, error) {
	if m.GetLatestByUserFunc != nil {
		return m.GetLatestByUserFunc(userID)
	}
	return nil, ErrRegistrationNotFound
}

func (m *MockStore) List(ctx context.Context) ([]Registration, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return []Registration{}, nil
}

func (m *MockStore) SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	m.mu.Lock()
	m.SetPaymentStatusCalls = append(m.SetPaymentStatusCalls, struct {
		ID     string
		Status PaymentStatus
	}{id, status})
	m.mu.Unlock()
	if m.SetPaymentStatusFunc != nil {
		return m.SetPaymentStatusFunc(id, status)
	}
	return nil
}

func (m *MockStore) AddPlayer(ctx context.Context, registrationID string, in PlayerInput) (*Player, error) {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, struct {
		RegistrationID string
		Input          PlayerInput
	}{registrationID, in})
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(registrationID, in)
	}
	return &Player{ID: "mock-player", RegistrationID: registrationID, Name: in.Name}, nil
}

func (m *MockStore) RemovePlayer(ctx context.Context, playerID string) error {
	m.mu.Lock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, playerID)
	m.mu.Unlock()
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) ListPlayers(ctx context.Context, registrationID string) ([]Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(registrationID)
	}
	return []Player{}, nil
}

func (m *MockStore) Approve(ctx context.Context, registrationID string, team ApprovedTeam) error {
	m.mu.Lock()
	m.ApproveCalls = append(m.ApproveCalls, struct {
		RegistrationID string
		Team           ApprovedTeam
	}{registrationID, team})
	m.mu.Unlock()
	if m.ApproveFunc != nil {
		return m.ApproveFunc(registrationID, team)
	}
	return nil
}
