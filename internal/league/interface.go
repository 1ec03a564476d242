package league

import "context"

// LeagueStore defines the interface for leagues, official teams and matches.
type LeagueStore interface {
	ListLeagues(ctx context.Context) ([]League, error)
	GetLeague(ctx context.Context, id string) (*League, error)
	CreateLeague(ctx context.Context, l *League) error
	UpdateLeague(ctx context.Context, l *League) error
	DeleteLeague(ctx context.Context, id string) error

	ListTeams(ctx context.Context, leagueID string) ([]Team, error)
	GetTeam(ctx context.Context, id string) (*Team, error)
	// GetTeamByRegistration returns the official team spawned by a registration.
	GetTeamByRegistration(ctx context.Context, registrationID string) (*Team, error)
	CreateTeam(ctx context.Context, t *Team) error
	UpdateTeam(ctx context.Context, t *Team) error
	DeleteTeam(ctx context.Context, id string) error

	ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error)
	GetMatch(ctx context.Context, id string) (*Match, error)
	CreateMatch(ctx context.Context, m *Match) error
	UpdateMatch(ctx context.Context, m *Match) error
	DeleteMatch(ctx context.Context, id string) error

	// Standings computes the league table. An empty leagueID covers every league.
	Standings(ctx context.Context, leagueID string) ([]Standing, error)
}
