package notifier

import (
	"context"
	"errors"
	"fmt"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., email or Slack).
type Notifier interface {
	// Sent to the captain once a registration is written.
	SendRegistrationReceived(ctx context.Context, n RegistrationReceived, dryRun bool) error
	// Sent to the captain once the registration becomes an official team.
	SendApprovalConfirmed(ctx context.Context, n ApprovalConfirmed, dryRun bool) error
	// Sent when an account is created during registration.
	SendWelcome(ctx context.Context, n Welcome, dryRun bool) error
}

// EventType identifies the kind of notification carried by an Event.
type EventType string

const (
	EventRegistrationReceived EventType = "registration_received"
	EventApprovalConfirmed    EventType = "approval_confirmed"
	EventWelcome              EventType = "welcome"
)

var ErrUnknownEvent = errors.New("unknown notification event")

// RegistrationReceived carries the data of the registration-received notification.
type RegistrationReceived struct {
	To             string `msgpack:"to"`
	RegistrationID string `msgpack:"registration_id"`
	CaptainName    string `msgpack:"captain_name"`
	TeamName       string `msgpack:"team_name"`
	LeagueName     string `msgpack:"league_name"`
	PlayerCount    int    `msgpack:"player_count"`
	Amount         int    `msgpack:"amount"`
}

// ApprovalConfirmed carries the data of the approval notification.
type ApprovalConfirmed struct {
	To             string `msgpack:"to"`
	RegistrationID string `msgpack:"registration_id"`
	TeamID         string `msgpack:"team_id"`
	CaptainName    string `msgpack:"captain_name"`
	TeamName       string `msgpack:"team_name"`
	LeagueName     string `msgpack:"league_name"`
}

// Welcome carries the data of the welcome notification.
type Welcome struct {
	To       string `msgpack:"to"`
	FullName string `msgpack:"full_name"`
}

// Event is the envelope published for asynchronous delivery. Exactly one payload is set,
// matching Type.
type Event struct {
	Type                 EventType             `msgpack:"type"`
	DryRun               bool                  `msgpack:"dry_run"`
	RegistrationReceived *RegistrationReceived `msgpack:"registration_received,omitempty"`
	ApprovalConfirmed    *ApprovalConfirmed    `msgpack:"approval_confirmed,omitempty"`
	Welcome              *Welcome              `msgpack:"welcome,omitempty"`
}

// Deliver sends e through n.
func Deliver(ctx context.Context, n Notifier, e Event) error {
	switch {
	case e.Type == EventRegistrationReceived && e.RegistrationReceived != nil:
		return n.SendRegistrationReceived(ctx, *e.RegistrationReceived, e.DryRun)
	case e.Type == EventApprovalConfirmed && e.ApprovalConfirmed != nil:
		return n.SendApprovalConfirmed(ctx, *e.ApprovalConfirmed, e.DryRun)
	case e.Type == EventWelcome && e.Welcome != nil:
		return n.SendWelcome(ctx, *e.Welcome, e.DryRun)
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
}

// Fanout sends every notification through all of its notifiers and joins their errors.
type Fanout []Notifier

var _ Notifier = Fanout(nil)

func (f Fanout) SendRegistrationReceived(ctx context.Context, n RegistrationReceived, dryRun bool) error {
	var errs []error
	for _, target := range f {
		errs = append(errs, target.SendRegistrationReceived(ctx, n, dryRun))
	}
	return errors.Join(errs...)
}

func (f Fanout) SendApprovalConfirmed(ctx context.Context, n ApprovalConfirmed, dryRun bool) error {
	var errs []error
	for _, target := range f {
		errs = append(errs, target.SendApprovalConfirmed(ctx, n, dryRun))
	}
	return errors.Join(errs...)
}

func (f Fanout) SendWelcome(ctx context.Context, n Welcome, dryRun bool) error {
	var errs []error
	for _, target := range f {
		errs = append(errs, target.SendWelcome(ctx, n, dryRun))
	}
	return errors.Join(errs...)
}

type dryRunKey struct{}

// WithDryRun marks ctx so that notifications are logged instead of sent.
func WithDryRun(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, dryRunKey{}, dryRun)
}

// DryRunFromContext reports whether ctx was marked by WithDryRun.
func DryRunFromContext(ctx context.Context) bool {
	dryRun, _ := ctx.Value(dryRunKey{}).(bool)
	return dryRun
}
