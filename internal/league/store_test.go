package league_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/database"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db, clockwork.NewFakeClockAt(testNow))
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func createLeague(t *testing.T, store league.LeagueStore, name string) *league.League {
	t.Helper()
	l := &league.League{Name: name, Season: "2025", StartDate: "2025-01-01", EndDate: "2025-06-30"}
	require.NoError(t, store.CreateLeague(context.Background(), l))
	return l
}

func createTeam(t *testing.T, store league.LeagueStore, leagueID, name string, wins, losses int) *league.Team {
	t.Helper()
	team := &league.Team{Name: name, LeagueID: leagueID, Wins: wins, Losses: losses}
	require.NoError(t, store.CreateTeam(context.Background(), team))
	return team
}

func intPtr(v int) *int { return &v }

func TestLeagueCRUD(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "  Spring League  ")
	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "Spring League", l.Name)
	assert.Equal(t, testNow, l.CreatedAt)

	got, err := store.GetLeague(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring League - 2025", got.DisplayName())
	assert.Nil(t, got.Gender)

	got.Description = "Open division"
	require.NoError(t, store.UpdateLeague(ctx, got))

	leagues, err := store.ListLeagues(ctx)
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, "Open division", leagues[0].Description)

	require.NoError(t, store.DeleteLeague(ctx, l.ID))
	_, err = store.GetLeague(ctx, l.ID)
	assert.ErrorIs(t, err, league.ErrLeagueNotFound)
	assert.ErrorIs(t, store.DeleteLeague(ctx, l.ID), league.ErrLeagueNotFound)
}

func TestCreateLeague_Validation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.CreateLeague(ctx, &league.League{Name: "   "})
	assert.ErrorIs(t, err, league.ErrNameRequired)

	err = store.CreateLeague(ctx, &league.League{Name: "Bad", StartDate: "2025-06-01", EndDate: "2025-01-01"})
	assert.ErrorIs(t, err, league.ErrInvalidDateRange)

	err = store.CreateLeague(ctx, &league.League{Name: "Bad", StartDate: "01/06/2025"})
	assert.ErrorIs(t, err, league.ErrInvalidDateRange)
}

func TestTeamCRUD(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "League")
	other := createLeague(t, store, "Other")
	a := createTeam(t, store, l.ID, "Alphas", 2, 1)
	createTeam(t, store, l.ID, "Betas", 3, 0)
	createTeam(t, store, other.ID, "Gammas", 0, 0)

	teams, err := store.ListTeams(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Betas", teams[0].Name, "teams are ordered by wins")

	all, err := store.ListTeams(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	a.Wins = 5
	require.NoError(t, store.UpdateTeam(ctx, a))
	got, err := store.GetTeam(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Wins)
	assert.Nil(t, got.RegistrationID)

	err = store.CreateTeam(ctx, &league.Team{Name: "Alphas", LeagueID: l.ID})
	assert.ErrorIs(t, err, league.ErrTeamNameTaken, "team names are unique within a league")
	require.NoError(t, store.CreateTeam(ctx, &league.Team{Name: "Alphas", LeagueID: other.ID}))

	renamed := *a
	renamed.Name = "Betas"
	assert.ErrorIs(t, store.UpdateTeam(ctx, &renamed), league.ErrTeamNameTaken)

	err = store.CreateTeam(ctx, &league.Team{Name: "Deltas", LeagueID: l.ID, Wins: -1})
	assert.ErrorIs(t, err, league.ErrInvalidRecord)

	require.NoError(t, store.DeleteTeam(ctx, a.ID))
	_, err = store.GetTeam(ctx, a.ID)
	assert.ErrorIs(t, err, league.ErrTeamNotFound)
}

func TestMatchCRUDAndFilters(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "League")
	home := createTeam(t, store, l.ID, "Home", 0, 0)
	away := createTeam(t, store, l.ID, "Away", 0, 0)
	third := createTeam(t, store, l.ID, "Third", 0, 0)

	march := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 2, 18, 0, 0, 0, time.UTC)

	m1 := &league.Match{LeagueID: l.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, MatchDate: march, Location: "Gym A"}
	require.NoError(t, store.CreateMatch(ctx, m1))
	assert.Equal(t, league.MatchScheduled, m1.Status)

	m2 := &league.Match{LeagueID: l.ID, HomeTeamID: away.ID, AwayTeamID: third.ID, MatchDate: april,
		Status: league.MatchCompleted, HomeScore: intPtr(70), AwayScore: intPtr(64)}
	require.NoError(t, store.CreateMatch(ctx, m2))

	got, err := store.GetMatch(ctx, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.HomeTeamName)
	assert.Equal(t, "Away", got.AwayTeamName)
	assert.Equal(t, "League", got.LeagueName)
	assert.True(t, march.Equal(got.MatchDate))
	assert.Nil(t, got.HomeScore)

	byTeam, err := store.ListMatches(ctx, league.MatchFilter{TeamID: third.ID})
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	assert.Equal(t, m2.ID, byTeam[0].ID)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	inApril, err := store.ListMatches(ctx, league.MatchFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, inApril, 1)
	assert.Equal(t, 70, *inApril[0].HomeScore)

	completed, err := store.ListMatches(ctx, league.MatchFilter{Statuses: []league.MatchStatus{league.MatchCompleted}})
	require.NoError(t, err)
	assert.Len(t, completed, 1)

	latest, err := store.ListMatches(ctx, league.MatchFilter{Descending: true, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, m2.ID, latest[0].ID)

	got.Status = league.MatchCancelled
	require.NoError(t, store.UpdateMatch(ctx, got))

	require.NoError(t, store.DeleteMatch(ctx, m1.ID))
	_, err = store.GetMatch(ctx, m1.ID)
	assert.ErrorIs(t, err, league.ErrMatchNotFound)
}

func TestCreateMatch_Validation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "League")
	team := createTeam(t, store, l.ID, "Solo", 0, 0)

	err := store.CreateMatch(ctx, &league.Match{LeagueID: l.ID, HomeTeamID: team.ID, AwayTeamID: team.ID, MatchDate: testNow})
	assert.ErrorIs(t, err, league.ErrSameTeam)

	err = store.CreateMatch(ctx, &league.Match{LeagueID: l.ID, HomeTeamID: team.ID, AwayTeamID: "x"})
	assert.ErrorIs(t, err, league.ErrMatchDateRequired)

	err = store.CreateMatch(ctx, &league.Match{LeagueID: l.ID, HomeTeamID: team.ID, AwayTeamID: "x", MatchDate: testNow, Status: "postponed"})
	assert.ErrorIs(t, err, league.ErrInvalidStatus)
}

func TestDeleteTeam_CascadesMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "League")
	home := createTeam(t, store, l.ID, "Home", 0, 0)
	away := createTeam(t, store, l.ID, "Away", 0, 0)
	m := &league.Match{LeagueID: l.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, MatchDate: testNow}
	require.NoError(t, store.CreateMatch(ctx, m))

	require.NoError(t, store.DeleteTeam(ctx, home.ID))
	_, err := store.GetMatch(ctx, m.ID)
	assert.ErrorIs(t, err, league.ErrMatchNotFound)
}

func TestStandings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	l := createLeague(t, store, "League")
	a := createTeam(t, store, l.ID, "Alphas", 2, 1)
	b := createTeam(t, store, l.ID, "Betas", 2, 1)
	createTeam(t, store, l.ID, "Gammas", 0, 0)

	require.NoError(t, store.CreateMatch(ctx, &league.Match{LeagueID: l.ID, HomeTeamID: b.ID, AwayTeamID: a.ID,
		MatchDate: testNow, Status: league.MatchCompleted, HomeScore: intPtr(80), AwayScore: intPtr(60)}))
	require.NoError(t, store.CreateMatch(ctx, &league.Match{LeagueID: l.ID, HomeTeamID: a.ID, AwayTeamID: b.ID,
		MatchDate: testNow.Add(24 * time.Hour)}))

	standings, err := store.Standings(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, "Betas", standings[0].TeamName)
	assert.Equal(t, 1, standings[0].Position)
	assert.Equal(t, 20, standings[0].PointDiff)
	assert.Equal(t, 66.7, standings[0].WinPct)
	assert.Equal(t, "Alphas", standings[1].TeamName)
	assert.Equal(t, -20, standings[1].PointDiff)
	assert.Equal(t, "Gammas", standings[2].TeamName)
	assert.Equal(t, float64(0), standings[2].WinPct)
}
