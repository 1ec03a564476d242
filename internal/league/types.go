package league

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrLeagueNotFound    = errors.New("league not found")
	ErrLeagueInUse       = errors.New("league still has teams or registrations")
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamNameTaken     = errors.New("a team with this name already exists in the league")
	ErrMatchNotFound     = errors.New("match not found")
	ErrNameRequired      = errors.New("name is required")
	ErrLeagueRequired    = errors.New("league is required")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrInvalidRecord     = errors.New("wins and losses must not be negative")
	ErrInvalidStatus     = errors.New("invalid match status")
	ErrSameTeam          = errors.New("home and away team must differ")
	ErrTeamsRequired     = errors.New("home and away team are required")
	ErrMatchDateRequired = errors.New("match date is required")
	ErrInvalidScore      = errors.New("scores must not be negative")
)

// store handles all database operations for leagues, teams and matches.
type store struct {
	db    *sql.DB
	mu    sync.RWMutex
	clock clockwork.Clock
}

// League is a competition season run by the admins.
type League struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Season      string    `json:"season"`
	StartDate   string    `json:"start_date"` // YYYY-MM-DD
	EndDate     string    `json:"end_date"`   // YYYY-MM-DD
	AgeCategory *string   `json:"age_category,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayName is the league name with its season appended when one is set.
func (l League) DisplayName() string {
	if l.Season == "" {
		return l.Name
	}
	return l.Name + " - " + l.Season
}

// Team is an official, competition-eligible team.
type Team struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LeagueID string  `json:"league_id"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	LogoURL  *string `json:"logo_url,omitempty"`
	// RegistrationID is set when the team was materialized from an approved registration.
	RegistrationID *string   `json:"registration_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MatchStatus represents the lifecycle of a scheduled game.
type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchInProgress, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

// Match is a game between two teams of the same league.
type Match struct {
	ID         string      `json:"id"`
	LeagueID   string      `json:"league_id"`
	HomeTeamID string      `json:"home_team_id"`
	AwayTeamID string      `json:"away_team_id"`
	MatchDate  time.Time   `json:"match_date"`
	Location   string      `json:"location"`
	Status     MatchStatus `json:"status"`
	HomeScore  *int        `json:"home_score"`
	AwayScore  *int        `json:"away_score"`
	CreatedAt  time.Time   `json:"created_at"`

	// Denormalized names, filled on reads.
	HomeTeamName string `json:"home_team_name,omitempty"`
	AwayTeamName string `json:"away_team_name,omitempty"`
	LeagueName   string `json:"league_name,omitempty"`
}

// MatchFilter narrows ListMatches. Zero values mean "no filter".
type MatchFilter struct {
	LeagueID   string
	TeamID     string
	Statuses   []MatchStatus
	From       *time.Time
	To         *time.Time
	Descending bool
	Limit      int
}

// Standing is one row of the league table.
type Standing struct {
	Position      int     `json:"position"`
	TeamID        string  `json:"team_id"`
	TeamName      string  `json:"team_name"`
	LeagueID      string  `json:"league_id"`
	LogoURL       *string `json:"logo_url,omitempty"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	GamesPlayed   int     `json:"games_played"`
	WinPct        float64 `json:"win_pct"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	PointDiff     int     `json:"point_diff"`
}
