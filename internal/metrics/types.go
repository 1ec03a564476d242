package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	RegistrationsCreated  prometheus.Counter
	RegistrationsApproved prometheus.Counter
	ApprovalsRejected     *prometheus.CounterVec
	PaymentStatusUpdates  *prometheus.CounterVec
	RosterChanges         *prometheus.CounterVec
	ProcessingDuration    *prometheus.HistogramVec
	NotifSent             *prometheus.CounterVec
	NotifFailed           *prometheus.CounterVec
	StartupTimeSeconds    prometheus.Gauge
}
