package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRegistrationsCreated()
	IncRegistrationsApproved()
	IncApprovalsRejected(reason string)
	IncPaymentStatusUpdates(status string)
	IncRosterChanges(action string)
	ObserveProcessingDuration(operation string, duration float64)
	IncNotifSent(channel string)
	IncNotifFailed(channel string)
	SetStartupTime(duration float64)
}
