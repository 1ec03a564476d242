package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                    sync.Mutex
	registrationsCreated  int
	registrationsApproved int
	approvalsRejected     map[string]int
	paymentStatusUpdates  map[string]int
	rosterChanges         map[string]int
	processingDurations   map[string][]float64
	notifSent             map[string]int
	notifFailed           map[string]int
	startupTime           float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		approvalsRejected:    make(map[string]int),
		paymentStatusUpdates: make(map[string]int),
		rosterChanges:        make(map[string]int),
		processingDurations:  make(map[string][]float64),
		notifSent:            make(map[string]int),
		notifFailed:          make(map[string]int),
	}
}

func (m *Mock) IncRegistrationsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrationsCreated++
}

func (m *Mock) IncRegistrationsApproved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrationsApproved++
}

func (m *Mock) IncApprovalsRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approvalsRejected[reason]++
}

func (m *Mock) IncPaymentStatusUpdates(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentStatusUpdates[status]++
}

func (m *Mock) IncRosterChanges(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterChanges[action]++
}

func (m *Mock) ObserveProcessingDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processingDurations[operation] = append(m.processingDurations[operation], duration)
}

func (m *Mock) IncNotifSent(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent[channel]++
}

func (m *Mock) IncNotifFailed(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed[channel]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RegistrationsCreated returns the number of times IncRegistrationsCreated was called.
func (m *Mock) RegistrationsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registrationsCreated
}

// RegistrationsApproved returns the number of times IncRegistrationsApproved was called.
func (m *Mock) RegistrationsApproved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registrationsApproved
}

// ApprovalsRejected returns the rejection count for reason.
func (m *Mock) ApprovalsRejected(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.approvalsRejected[reason]
}

// PaymentStatusUpdates returns the update count for status.
func (m *Mock) PaymentStatusUpdates(status string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paymentStatusUpdates[status]
}

// RosterChanges returns the mutation count for action.
func (m *Mock) RosterChanges(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterChanges[action]
}

// ProcessingDurations returns the observed durations for operation.
func (m *Mock) ProcessingDurations(operation string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.processingDurations[operation]...)
}

// NotifSent returns the number of successful notifications on channel.
func (m *Mock) NotifSent(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent[channel]
}

// NotifFailed returns the number of failed notifications on channel.
func (m *Mock) NotifFailed(channel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed[channel]
}
