package registration

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	MinPlayers = 3
	MaxPlayers = 6
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerNameRequired    = errors.New("player name is required")
	ErrRosterFull            = errors.New("roster is full")
	ErrPaymentNotConfirmed   = errors.New("payment must be confirmed before approval")
	ErrAlreadyApproved       = errors.New("registration is already approved")
	ErrTeamNameTaken         = errors.New("a team with this name already exists in the league")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
	ErrPlayerCountOutOfRange = fmt.Errorf("number of players must be between %d and %d", MinPlayers, MaxPlayers)
)

// RosterIncompleteError is returned when a registration is approved while its roster size
// differs from the declared number of players.
type RosterIncompleteError struct {
	Required int
	Actual   int
}

func (e *RosterIncompleteError) Error() string {
	return fmt.Sprintf("roster incomplete: %d players registered, %d declared", e.Actual, e.Required)
}

// PaymentStatus is toggled by an admin; no payment is processed here.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRejected:
		return true
	}
	return false
}

// ApprovalStatus tracks whether an official team was created from the registration.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending_approval"
	ApprovalApproved ApprovalStatus = "approved"
)

// store handles all database operations for registrations and their rosters.
type store struct {
	db    *sql.DB
	mu    sync.RWMutex
	clock clockwork.Clock
}

// Registration is a team's application to join a league.
type Registration struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	TeamName        string         `json:"team_name"`
	CaptainName     string         `json:"captain_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	LeagueID        string         `json:"league_id"`
	NumberOfPlayers int            `json:"number_of_players"`
	Message         string         `json:"message"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`

	// Filled on reads.
	LeagueName   string   `json:"league_name,omitempty"`
	PlayersCount int      `json:"players_count"`
	Players      []Player `json:"players,omitempty"`
}

// Player is a roster entry of a registration.
type Player struct {
	ID             string    `json:"id"`
	RegistrationID string    `json:"team_registration_id"`
	Name           string    `json:"name"`
	JerseyNumber   *int      `json:"jersey_number,omitempty"`
	Position       *string   `json:"position,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Email          *string   `json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerInput carries the fields a captain may set when adding a player.
type PlayerInput struct {
	Name         string  `json:"name"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Position     *string `json:"position,omitempty"`
	Age          *int    `json:"age,omitempty"`
	Email        *string `json:"email,omitempty"`
}

// ApprovedTeam is the data needed to materialize the official team on approval.
type ApprovedTeam struct {
	ID        string
	Name      string
	LeagueID  string
	CreatedAt time.Time
}

// PositionShare is one bucket of the position distribution.
type PositionShare struct {
	Position string  `json:"position"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// JerseyEntry pairs a player's first name with their jersey number.
type JerseyEntry struct {
	FirstName string `json:"first_name"`
	Number    int    `json:"number"`
}

// RosterStats summarizes a roster for the dashboard.
type RosterStats struct {
	HasData      bool            `json:"has_data"`
	Total        int             `json:"total"`
	WithJersey   int             `json:"with_jersey"`
	Positions    []PositionShare `json:"positions"`
	JerseySpread []JerseyEntry   `json:"jersey_spread"`
}
