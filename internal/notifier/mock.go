package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendRegistrationReceivedFunc func(n RegistrationReceived) error
	SendApprovalConfirmedFunc    func(n ApprovalConfirmed) error
	SendWelcomeFunc              func(n Welcome) error

	// Call records
	SendRegistrationReceivedCalls []RegistrationReceived
	SendApprovalConfirmedCalls    []ApprovalConfirmed
	SendWelcomeCalls              []Welcome

	// sent is signalled after every call, if set.
	sent chan struct{}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{sent: make(chan struct{}, 64)}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRegistrationReceivedCalls = nil
	m.SendApprovalConfirmedCalls = nil
	m.SendWelcomeCalls = nil
}

// Sent is signalled once per notification, for tests that wait on detached delivery.
func (m *Mock) Sent() <-chan struct{} {
	return m.sent
}

func (m *Mock) SendRegistrationReceived(ctx context.Context, n RegistrationReceived, dryRun bool) error {
	m.mu.Lock()
	m.SendRegistrationReceivedCalls = append(m.SendRegistrationReceivedCalls, n)
	m.mu.Unlock()
	defer m.signal()
	if m.SendRegistrationReceivedFunc != nil {
		return m.SendRegistrationReceivedFunc(n)
	}
	return nil
}

func (m *Mock) SendApprovalConfirmed(ctx context.Context, n ApprovalConfirmed, dryRun bool) error {
	m.mu.Lock()
	m.SendApprovalConfirmedCalls = append(m.SendApprovalConfirmedCalls, n)
	m.mu.Unlock()
	defer m.signal()
	if m.SendApprovalConfirmedFunc != nil {
		return m.SendApprovalConfirmedFunc(n)
	}
	return nil
}

func (m *Mock) SendWelcome(ctx context.Context, n Welcome, dryRun bool) error {
	m.mu.Lock()
	m.SendWelcomeCalls = append(m.SendWelcomeCalls, n)
	m.mu.Unlock()
	defer m.signal()
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(n)
	}
	return nil
}

// RegistrationReceivedCalls returns a copy of the recorded registration-received calls.
func (m *Mock) RegistrationReceivedCalls() []RegistrationReceived {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RegistrationReceived(nil), m.SendRegistrationReceivedCalls...)
}

// ApprovalConfirmedCalls returns a copy of the recorded approval calls.
func (m *Mock) ApprovalConfirmedCalls() []ApprovalConfirmed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ApprovalConfirmed(nil), m.SendApprovalConfirmedCalls...)
}

// WelcomeCalls returns a copy of the recorded welcome calls.
func (m *Mock) WelcomeCalls() []Welcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Welcome(nil), m.SendWelcomeCalls...)
}

func (m *Mock) signal() {
	if m.sent == nil {
		return
	}
	select {
	case m.sent <- struct{}{}:
	default:
	}
}
