package registration

import (
	"context"
)

// RegistrationStore defines the interface for team registrations and rosters.
type RegistrationStore interface {
	Create(ctx context.Context, r *Registration) error
	// Get returns the registration with its players.
	Get(ctx context.Context, id string) (*Registration, error)
	// GetLatestByUser returns the most recent registration owned by userID.
	GetLatestByUser(ctx context.Context, userID string) (*Registration, error)
	// List returns all registrations, newest first, with league name and player count.
	List(ctx context.Context) ([]Registration, error)
	SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) error

	// AddPlayer appends a player unless the roster already holds number_of_players.
	AddPlayer(ctx context.Context, registrationID string, in PlayerInput) (*Player, error)
	RemovePlayer(ctx context.Context, playerID string) error
	GetPlayer(ctx context.Context, playerID string) (*Player, error)
	ListPlayers(ctx context.Context, registrationID string) ([]Player, error)

	// Approve flips the registration to approved and inserts the official team in one
	// transaction.
	Approve(ctx context.Context, registrationID string, team ApprovedTeam) error
}
