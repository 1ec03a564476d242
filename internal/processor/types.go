package processor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/pubsub"
	"github.com/mauv0809/league-hub/internal/registration"
)

// ErrValidation is wrapped by every input validation error.
var ErrValidation = errors.New("validation failed")

var (
	ErrTeamNameRequired    = fmt.Errorf("%w: team name is required", ErrValidation)
	ErrCaptainNameRequired = fmt.Errorf("%w: captain name is required", ErrValidation)
	ErrPhoneRequired       = fmt.Errorf("%w: phone is required", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: email is not valid", ErrValidation)
	ErrLeagueRequired      = fmt.Errorf("%w: league is required", ErrValidation)
	ErrUnknownLeague       = fmt.Errorf("%w: league does not exist", ErrValidation)
	ErrNoRegistration      = errors.New("no registration for this account")
	ErrForbidden           = errors.New("not allowed to modify this registration")
)

// DashboardRedirect is where the client goes after a successful registration.
const DashboardRedirect = "/dashboard"

// Processor runs the registration, roster and approval workflows.
type Processor struct {
	registrations registration.RegistrationStore
	leagues       league.LeagueStore
	profiles      identity.ProfileStore
	resolver      Resolver
	pubsub        pubsub.PubSubClient
	notifier      notifier.Notifier
	metrics       metrics.Metrics
	fee           int

	// inflight tracks detached notification deliveries.
	inflight sync.WaitGroup
}

// RegistrationRequest is the input of the registration flow.
type RegistrationRequest struct {
	TeamName        string `json:"team_name"`
	CaptainName     string `json:"captain_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	LeagueID        string `json:"league_id"`
	NumberOfPlayers int    `json:"number_of_players"`
	Message         string `json:"message"`
	// Password is optional. A password is generated when it is empty.
	Password string `json:"password,omitempty"`

	// Session is the caller's current session, if any.
	Session *identity.Session `json:"-"`
}

// RegistrationResult is the output of the registration flow.
type RegistrationResult struct {
	Registration      *registration.Registration
	Session           *identity.Session
	GeneratedPassword string
	AccountCreated    bool
	Redirect          string
}

// TeamStats is the record card of an official team.
type TeamStats struct {
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	GamesPlayed int     `json:"games_played"`
	WinPct      float64 `json:"win_pct"`
}

// Dashboard aggregates everything the team dashboard shows.
type Dashboard struct {
	Profile      *identity.Profile          `json:"profile,omitempty"`
	Registration *registration.Registration `json:"registration,omitempty"`
	Players      []registration.Player      `json:"players"`
	RosterStats  registration.RosterStats   `json:"roster_stats"`
	Team         *league.Team               `json:"team,omitempty"`
	TeamStats    *TeamStats                 `json:"team_stats,omitempty"`
}

// TeamMatches splits the matches of a team.
type TeamMatches struct {
	Upcoming  []league.Match `json:"upcoming"`
	Completed []league.Match `json:"completed"`
}
