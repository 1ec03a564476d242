package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RegistrationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_registrations_created_total",
			Help: "The total number of team registrations written.",
		}),
		RegistrationsApproved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_registrations_approved_total",
			Help: "The total number of registrations approved into official teams.",
		}),
		ApprovalsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_approvals_rejected_total",
			Help: "The total number of approval attempts rejected, by reason.",
		}, []string{"reason"}),
		PaymentStatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_payment_status_updates_total",
			Help: "The total number of payment status changes, by new status.",
		}, []string{"status"}),
		RosterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_roster_changes_total",
			Help: "The total number of roster mutations, by action.",
		}, []string{"action"}),
		ProcessingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_operation_duration_seconds",
			Help:    "The duration of registration and approval operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_notifications_sent_total",
			Help: "The total number of notifications successfully sent, by channel.",
		}, []string{"channel"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_notifications_failed_total",
			Help: "The total number of notifications that failed to send, by channel.",
		}, []string{"channel"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.RegistrationsCreated,
		s.RegistrationsApproved,
		s.ApprovalsRejected,
		s.PaymentStatusUpdates,
		s.RosterChanges,
		s.ProcessingDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRegistrationsCreated() {
	s.RegistrationsCreated.Inc()
}

func (s *Service) IncRegistrationsApproved() {
	s.RegistrationsApproved.Inc()
}

func (s *Service) IncApprovalsRejected(reason string) {
	s.ApprovalsRejected.WithLabelValues(reason).Inc()
}

func (s *Service) IncPaymentStatusUpdates(status string) {
	s.PaymentStatusUpdates.WithLabelValues(status).Inc()
}

func (s *Service) IncRosterChanges(action string) {
	s.RosterChanges.WithLabelValues(action).Inc()
}

func (s *Service) ObserveProcessingDuration(operation string, duration float64) {
	s.ProcessingDuration.WithLabelValues(operation).Observe(duration)
}

func (s *Service) IncNotifSent(channel string) {
	s.NotifSent.WithLabelValues(channel).Inc()
}

func (s *Service) IncNotifFailed(channel string) {
	s.NotifFailed.WithLabelValues(channel).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
