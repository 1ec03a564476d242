package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/resend/resend-go/v2"
)

const channel = "email"

// emailClient is an interface that contains the methods from the resend client that we use.
// This allows for easy mocking in tests.
type emailClient interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier sends transactional emails through Resend.
type Notifier struct {
	api     emailClient
	from    string
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(apiKey, from string, metrics metrics.Metrics) *Notifier {
	client := resend.NewClient(apiKey)
	return &Notifier{
		api:     client.Emails,
		from:    from,
		metrics: metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api emailClient, from string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		from:    from,
		metrics: metrics,
	}
}

func (n *Notifier) SendRegistrationReceived(ctx context.Context, msg notifier.RegistrationReceived, dryRun bool) error {
	return n.send(ctx, msg.To, "Registro de Equipo: "+msg.TeamName, registrationTemplate, msg, dryRun)
}

func (n *Notifier) SendApprovalConfirmed(ctx context.Context, msg notifier.ApprovalConfirmed, dryRun bool) error {
	return n.send(ctx, msg.To, fmt.Sprintf("¡Equipo %s Aprobado!", msg.TeamName), approvalTemplate, msg, dryRun)
}

func (n *Notifier) SendWelcome(ctx context.Context, msg notifier.Welcome, dryRun bool) error {
	return n.send(ctx, msg.To, "¡Bienvenido a 3lab3!", welcomeTemplate, msg, dryRun)
}

func (n *Notifier) send(ctx context.Context, to, subject string, tmpl *template.Template, data any, dryRun bool) error {
	if to == "" {
		return fmt.Errorf("email recipient is required")
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}

	if dryRun {
		log.Info("[Dry Run] Would send email", "to", to, "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := n.api.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	})
	if err != nil {
		n.metrics.IncNotifFailed(channel)
		log.Error("Failed to send email", "error", err, "template", tmpl.Name())
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.metrics.IncNotifSent(channel)
	log.Info("Successfully sent email", "template", tmpl.Name(), "id", resp.Id)
	return nil
}
