package league

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	ListLeaguesFunc           func() ([]League, error)
	GetLeagueFunc             func(id string) (*League, error)
	CreateLeagueFunc          func(l *League) error
	UpdateLeagueFunc          func(l *League) error
	DeleteLeagueFunc          func(id string) error
	ListTeamsFunc             func(leagueID string) ([]Team, error)
	GetTeamFunc               func(id string) (*Team, error)
	GetTeamByRegistrationFunc func(registrationID string) (*Team, error)
	CreateTeamFunc            func(t *Team) error
	UpdateTeamFunc            func(t *Team) error
	DeleteTeamFunc            func(id string) error
	ListMatchesFunc           func(filter MatchFilter) ([]Match, error)
	GetMatchFunc              func(id string) (*Match, error)
	CreateMatchFunc           func(m *Match) error
	UpdateMatchFunc           func(m *Match) error
	DeleteMatchFunc           func(id string) error
	StandingsFunc             func(leagueID string) ([]Standing, error)

	CreateLeagueCalls []*League
	CreateTeamCalls   []*Team
	CreateMatchCalls  []*Match
	ListMatchesCalls  []MatchFilter
	DeleteCalls       []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ListLeagues(ctx context.Context) ([]League, error) {
	if m.ListLeaguesFunc != nil {
		return m.ListLeaguesFunc()
	}
	return []League{}, nil
}

func (m *MockStore) GetLeague(ctx context.Context, id string) (*League, error) {
	if m.GetLeagueFunc != nil {
		return m.GetLeagueFunc(id)
	}
	return nil, ErrLeagueNotFound
}

func (m *MockStore) CreateLeague(ctx context.Context, l *League) error {
	m.mu.Lock()
	m.CreateLeagueCalls = append(m.CreateLeagueCalls, l)
	m.mu.Unlock()
	if m.CreateLeagueFunc != nil {
		return m.CreateLeagueFunc(l)
	}
	return nil
}

func (m *MockStore) UpdateLeague(ctx context.Context, l *League) error {
	if m.UpdateLeagueFunc != nil {
		return m.UpdateLeagueFunc(l)
	}
	return nil
}

func (m *MockStore) DeleteLeague(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeleteLeagueFunc != nil {
		return m.DeleteLeagueFunc(id)
	}
	return nil
}

func (m *MockStore) ListTeams(ctx context.Context, leagueID string) ([]Team, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc(leagueID)
	}
	return []Team{}, nil
}

func (m *MockStore) GetTeam(ctx context.Context, id string) (*Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(id)
	}
	return nil, ErrTeamNotFound
}

func (m *MockStore) GetTeamByRegistration(ctx context.Context, registrationID string) (*Team, error) {
	if m.GetTeamByRegistrationFunc != nil {
		return m.GetTeamByRegistrationFunc(registrationID)
	}
	return nil, ErrTeamNotFound
}

func (m *MockStore) CreateTeam(ctx context.Context, t *Team) error {
	m.mu.Lock()
	m.CreateTeamCalls = append(m.CreateTeamCalls, t)
	m.mu.Unlock()
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(t)
	}
	return nil
}

func (m *MockStore) UpdateTeam(ctx context.Context, t *Team) error {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(t)
	}
	return nil
}

func (m *MockStore) DeleteTeam(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(id)
	}
	return nil
}

func (m *MockStore) ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error) {
	m.mu.Lock()
	m.ListMatchesCalls = append(m.ListMatchesCalls, filter)
	m.mu.Unlock()
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc(filter)
	}
	return []Match{}, nil
}

func (m *MockStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(id)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) CreateMatch(ctx context.Context, match *Match) error {
	m.mu.Lock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	m.mu.Unlock()
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpdateMatch(ctx context.Context, match *Match) error {
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) DeleteMatch(ctx context.Context, id string) error {
	m.recordDelete(id)
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(id)
	}
	return nil
}

func (m *MockStore) Standings(ctx context.Context, leagueID string) ([]Standing, error) {
	if m.StandingsFunc != nil {
		return m.StandingsFunc(leagueID)
	}
	return []Standing{}, nil
}

func (m *MockStore) recordDelete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
}
