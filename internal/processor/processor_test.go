package processor_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/database"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/pubsub"
	"github.com/mauv0809/league-hub/internal/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFee = 120

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db            *sql.DB
	leagues       league.LeagueStore
	registrations registration.RegistrationStore
	profiles      identity.ProfileStore
	provider      *identity.MockProvider
	notifier      *notifier.Mock
	metrics       *metrics.Mock
	processor     *processor.Processor
	league        *league.League
}

// setupTest wires a processor against an in-memory database holding one league, L1.
// A nil ps delivers notifications directly.
func setupTest(t *testing.T, ps pubsub.PubSubClient) (*testEnv, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(testNow)
	env := &testEnv{
		db:            db,
		leagues:       league.New(db, clock),
		registrations: registration.New(db, clock),
		profiles:      identity.NewProfileStore(db, clock),
		provider:      identity.NewMockProvider(),
		notifier:      notifier.NewMock(),
		metrics:       metrics.NewMock(),
	}
	env.league = &league.League{Name: "L1", Season: "Primavera"}
	require.NoError(t, env.leagues.CreateLeague(context.Background(), env.league))

	env.processor = processor.New(
		env.registrations,
		env.leagues,
		env.profiles,
		identity.NewResolver(env.provider),
		env.notifier,
		env.metrics,
		ps,
		testFee,
	)
	teardown := func() {
		env.processor.Wait()
		dbTeardown()
		db.Close()
	}
	return env, teardown
}

func (env *testEnv) request(email string, players int) processor.RegistrationRequest {
	return processor.RegistrationRequest{
		TeamName:        "Los Tiburones",
		CaptainName:     "Ana Pérez",
		Email:           email,
		Phone:           "600000000",
		LeagueID:        env.league.ID,
		NumberOfPlayers: players,
	}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestRegister_NewIdentity(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	res, err := env.processor.Register(ctx, env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	assert.True(t, res.AccountCreated)
	assert.NotEmpty(t, res.GeneratedPassword)
	assert.Equal(t, processor.DashboardRedirect, res.Redirect)
	require.NotNil(t, res.Session)
	assert.Equal(t, "user-new@x.com", res.Session.UserID)

	require.Len(t, env.provider.SignUpCalls, 1)
	assert.Equal(t, "new@x.com", env.provider.SignUpCalls[0].Email)
	assert.Equal(t, res.GeneratedPassword, env.provider.SignUpCalls[0].Password)

	reg, err := env.registrations.GetLatestByUser(ctx, "user-new@x.com")
	require.NoError(t, err)
	assert.Equal(t, res.Registration.ID, reg.ID)
	assert.Equal(t, registration.PaymentPending, reg.PaymentStatus)
	assert.Equal(t, registration.ApprovalPending, reg.ApprovalStatus)
	assert.Equal(t, 4, reg.NumberOfPlayers)
	assert.Equal(t, 1, countRows(t, env.db, "team_registrations"))

	profile, err := env.profiles.GetProfile(ctx, "user-new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", profile.FullName)

	received := env.notifier.RegistrationReceivedCalls()
	require.Len(t, received, 1)
	assert.Equal(t, "new@x.com", received[0].To)
	assert.Equal(t, "Los Tiburones", received[0].TeamName)
	assert.Equal(t, "L1 - Primavera", received[0].LeagueName)
	assert.Equal(t, 4, received[0].PlayerCount)
	assert.Equal(t, testFee, received[0].Amount)

	welcome := env.notifier.WelcomeCalls()
	require.Len(t, welcome, 1)
	assert.Equal(t, "Ana Pérez", welcome[0].FullName)

	assert.Equal(t, 1, env.metrics.RegistrationsCreated())
	assert.Len(t, env.metrics.ProcessingDurations("register"), 1)
}

func TestRegister_ExistingSessionSkipsSignUp(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	req := env.request("ana@example.com", 3)
	req.Session = &identity.Session{AccessToken: "tok", UserID: "user-ana", Email: "ana@example.com"}

	res, err := env.processor.Register(context.Background(), req)
	require.NoError(t, err)
	env.processor.Wait()

	assert.False(t, res.AccountCreated)
	assert.Empty(t, res.GeneratedPassword)
	assert.Equal(t, "user-ana", res.Registration.UserID)
	assert.Empty(t, env.provider.SignUpCalls)
	assert.Empty(t, env.notifier.WelcomeCalls())
	assert.Len(t, env.notifier.RegistrationReceivedCalls(), 1)
}

func TestRegister_NotificationFailureDoesNotFail(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	env.notifier.SendRegistrationReceivedFunc = func(n notifier.RegistrationReceived) error {
		return errors.New("smtp down")
	}

	res, err := env.processor.Register(context.Background(), env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	assert.NotEmpty(t, res.Registration.ID)
	assert.Len(t, env.notifier.RegistrationReceivedCalls(), 1)
	assert.Equal(t, 1, countRows(t, env.db, "team_registrations"))
}

func TestRegister_PlayerCountOutOfRange(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	for _, n := range []int{-1, 0, 1, 2, 7, 12} {
		t.Run(fmt.Sprintf("players=%d", n), func(t *testing.T) {
			_, err := env.processor.Register(context.Background(), env.request("new@x.com", n))
			assert.ErrorIs(t, err, registration.ErrPlayerCountOutOfRange)
		})
	}

	assert.Equal(t, 0, countRows(t, env.db, "team_registrations"))
	assert.Empty(t, env.provider.SignUpCalls)
	assert.Empty(t, env.notifier.RegistrationReceivedCalls())
}

func TestRegister_Validation(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	tests := []struct {
		name    string
		mutate  func(r *processor.RegistrationRequest)
		wantErr error
	}{
		{"missing team name", func(r *processor.RegistrationRequest) { r.TeamName = "  " }, processor.ErrTeamNameRequired},
		{"missing captain", func(r *processor.RegistrationRequest) { r.CaptainName = "" }, processor.ErrCaptainNameRequired},
		{"missing phone", func(r *processor.RegistrationRequest) { r.Phone = "" }, processor.ErrPhoneRequired},
		{"malformed email", func(r *processor.RegistrationRequest) { r.Email = "not-an-email" }, processor.ErrInvalidEmail},
		{"email without domain dot", func(r *processor.RegistrationRequest) { r.Email = "ana@localhost" }, processor.ErrInvalidEmail},
		{"email with display name", func(r *processor.RegistrationRequest) { r.Email = "Ana <ana@x.com>" }, processor.ErrInvalidEmail},
		{"missing league", func(r *processor.RegistrationRequest) { r.LeagueID = "" }, processor.ErrLeagueRequired},
		{"unknown league", func(r *processor.RegistrationRequest) { r.LeagueID = "nope" }, processor.ErrUnknownLeague},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := env.request("new@x.com", 4)
			tt.mutate(&req)
			_, err := env.processor.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, processor.ErrValidation)
		})
	}

	assert.Equal(t, 0, countRows(t, env.db, "team_registrations"))
	assert.Empty(t, env.provider.SignUpCalls)
}

func TestRegister_IdentityErrorWritesNothing(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	env.provider.SignUpFunc = func(email, password string) (*identity.Identity, error) {
		return nil, identity.ErrAlreadyRegistered
	}
	env.provider.SignInFunc = func(email, password string) (*identity.Session, error) {
		return nil, identity.ErrEmailNotConfirmed
	}

	_, err := env.processor.Register(context.Background(), env.request("taken@x.com", 4))
	assert.ErrorIs(t, err, identity.ErrEmailNotConfirmed)
	assert.Equal(t, 0, countRows(t, env.db, "team_registrations"))
	assert.Equal(t, 0, env.metrics.RegistrationsCreated())
}

func TestRegister_PublishesToPubSub(t *testing.T) {
	ps := pubsub.NewMock("test-project")
	env, teardown := setupTest(t, ps)
	defer teardown()

	_, err := env.processor.Register(context.Background(), env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	calls := ps.Calls()
	require.Len(t, calls, 2)
	var types []notifier.EventType
	for _, c := range calls {
		assert.Equal(t, string(pubsub.TopicNotifications), c.Topic)
		e, ok := c.Data.(notifier.Event)
		require.True(t, ok)
		types = append(types, e.Type)
	}
	assert.ElementsMatch(t, []notifier.EventType{notifier.EventWelcome, notifier.EventRegistrationReceived}, types)
	assert.Empty(t, env.notifier.RegistrationReceivedCalls())
}

func TestRegister_PublishFailureFallsBack(t *testing.T) {
	ps := pubsub.NewMock("test-project")
	ps.SendMessageFunc = func(topic pubsub.Topic, data any) error {
		return errors.New("publish failed")
	}
	env, teardown := setupTest(t, ps)
	defer teardown()

	_, err := env.processor.Register(context.Background(), env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	assert.Len(t, env.notifier.RegistrationReceivedCalls(), 1)
	assert.Len(t, env.notifier.WelcomeCalls(), 1)
	assert.Equal(t, 2, env.metrics.NotifFailed("pubsub"))
}

func TestRegister_UnconfirmedPublishIsNotResent(t *testing.T) {
	ps := pubsub.NewMock("test-project")
	ps.SendMessageFunc = func(topic pubsub.Topic, data any) error {
		return fmt.Errorf("waiting for ack: %w", context.DeadlineExceeded)
	}
	env, teardown := setupTest(t, ps)
	defer teardown()

	_, err := env.processor.Register(context.Background(), env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	assert.Len(t, ps.Calls(), 2)
	assert.Empty(t, env.notifier.RegistrationReceivedCalls())
	assert.Empty(t, env.notifier.WelcomeCalls())
	assert.Equal(t, 2, env.metrics.NotifFailed("pubsub"))
}

func TestRegister_DryRunSkipsPubSub(t *testing.T) {
	ps := pubsub.NewMock("test-project")
	env, teardown := setupTest(t, ps)
	defer teardown()

	ctx := notifier.WithDryRun(context.Background(), true)
	_, err := env.processor.Register(ctx, env.request("new@x.com", 4))
	require.NoError(t, err)
	env.processor.Wait()

	assert.Empty(t, ps.Calls())
	assert.Len(t, env.notifier.RegistrationReceivedCalls(), 1)
}

func TestRoster_AddAndRemove(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	res, err := env.processor.Register(ctx, env.request("new@x.com", 3))
	require.NoError(t, err)
	userID := res.Registration.UserID

	var added []*registration.Player
	for i := 0; i < 3; i++ {
		p, err := env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: fmt.Sprintf("Player %d", i+1)})
		require.NoError(t, err)
		added = append(added, p)
	}

	_, err = env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: "One too many"})
	assert.ErrorIs(t, err, registration.ErrRosterFull)

	players, err := env.registrations.ListPlayers(ctx, res.Registration.ID)
	require.NoError(t, err)
	assert.Len(t, players, 3)

	err = env.processor.RemovePlayer(ctx, "someone-else", added[0].ID)
	assert.ErrorIs(t, err, processor.ErrForbidden)

	require.NoError(t, env.processor.RemovePlayer(ctx, userID, added[0].ID))
	players, err = env.registrations.ListPlayers(ctx, res.Registration.ID)
	require.NoError(t, err)
	assert.Len(t, players, 2)

	assert.Equal(t, 3, env.metrics.RosterChanges("add"))
	assert.Equal(t, 1, env.metrics.RosterChanges("remove"))
}

func TestAddPlayer_NoRegistration(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()

	_, err := env.processor.AddPlayer(context.Background(), "nobody", registration.PlayerInput{Name: "Ana"})
	assert.ErrorIs(t, err, processor.ErrNoRegistration)
}

func TestApprove_EndToEnd(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	res, err := env.processor.Register(ctx, env.request("new@x.com", 3))
	require.NoError(t, err)
	regID := res.Registration.ID
	userID := res.Registration.UserID
	for i := 0; i < 3; i++ {
		_, err := env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: fmt.Sprintf("Player %d", i+1)})
		require.NoError(t, err)
	}

	require.NoError(t, env.processor.SetPaymentStatus(ctx, regID, registration.PaymentPaid))
	require.NoError(t, env.processor.SetPaymentStatus(ctx, regID, registration.PaymentPaid))
	assert.Equal(t, 2, env.metrics.PaymentStatusUpdates("paid"))

	team, err := env.processor.Approve(ctx, regID)
	require.NoError(t, err)
	env.processor.Wait()

	assert.Equal(t, "Los Tiburones", team.Name)
	assert.Equal(t, env.league.ID, team.LeagueID)
	assert.Equal(t, 0, team.Wins)
	assert.Equal(t, 0, team.Losses)
	require.NotNil(t, team.RegistrationID)
	assert.Equal(t, regID, *team.RegistrationID)

	teams, err := env.leagues.ListTeams(ctx, env.league.ID)
	require.NoError(t, err)
	assert.Len(t, teams, 1)

	approvals := env.notifier.ApprovalConfirmedCalls()
	require.Len(t, approvals, 1)
	assert.Equal(t, "Ana Pérez", approvals[0].CaptainName)
	assert.Equal(t, "Los Tiburones", approvals[0].TeamName)
	assert.Equal(t, "L1 - Primavera", approvals[0].LeagueName)
	assert.Equal(t, team.ID, approvals[0].TeamID)
	assert.Equal(t, 1, env.metrics.RegistrationsApproved())

	_, err = env.processor.Approve(ctx, regID)
	assert.ErrorIs(t, err, registration.ErrAlreadyApproved)
	assert.Equal(t, 1, env.metrics.ApprovalsRejected("already_approved"))

	teams, err = env.leagues.ListTeams(ctx, env.league.ID)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestApprove_Rejections(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	res, err := env.processor.Register(ctx, env.request("new@x.com", 4))
	require.NoError(t, err)
	regID := res.Registration.ID
	userID := res.Registration.UserID

	_, err = env.processor.Approve(ctx, regID)
	assert.ErrorIs(t, err, registration.ErrPaymentNotConfirmed)

	require.NoError(t, env.processor.SetPaymentStatus(ctx, regID, registration.PaymentPaid))
	for i := 0; i < 2; i++ {
		_, err := env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: fmt.Sprintf("Player %d", i+1)})
		require.NoError(t, err)
	}

	_, err = env.processor.Approve(ctx, regID)
	var incomplete *registration.RosterIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 4, incomplete.Required)
	assert.Equal(t, 2, incomplete.Actual)

	_, err = env.processor.Approve(ctx, "missing")
	assert.ErrorIs(t, err, registration.ErrRegistrationNotFound)

	env.processor.Wait()
	assert.Equal(t, 0, countRows(t, env.db, "teams"))
	assert.Empty(t, env.notifier.ApprovalConfirmedCalls())
	assert.Equal(t, 1, env.metrics.ApprovalsRejected("payment_not_confirmed"))
	assert.Equal(t, 1, env.metrics.ApprovalsRejected("roster_incomplete"))
}

func TestApprove_NotificationFailureKeepsTeam(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	env.notifier.SendApprovalConfirmedFunc = func(n notifier.ApprovalConfirmed) error {
		return errors.New("smtp down")
	}

	res, err := env.processor.Register(ctx, env.request("new@x.com", 3))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := env.processor.AddPlayer(ctx, res.Registration.UserID, registration.PlayerInput{Name: fmt.Sprintf("P%d", i)})
		require.NoError(t, err)
	}
	require.NoError(t, env.processor.SetPaymentStatus(ctx, res.Registration.ID, registration.PaymentPaid))

	team, err := env.processor.Approve(ctx, res.Registration.ID)
	require.NoError(t, err)
	env.processor.Wait()

	_, err = env.leagues.GetTeam(ctx, team.ID)
	assert.NoError(t, err)
	assert.Len(t, env.notifier.ApprovalConfirmedCalls(), 1)
}

func TestDashboard(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	empty, err := env.processor.Dashboard(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, empty.Registration)
	assert.Nil(t, empty.Team)
	assert.False(t, empty.RosterStats.HasData)

	res, err := env.processor.Register(ctx, env.request("new@x.com", 3))
	require.NoError(t, err)
	userID := res.Registration.UserID
	jersey := 7
	guard := "Base"
	_, err = env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: "Ana", Position: &guard, JerseyNumber: &jersey})
	require.NoError(t, err)
	_, err = env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: "Luis"})
	require.NoError(t, err)

	d, err := env.processor.Dashboard(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, d.Profile)
	assert.Equal(t, "Ana Pérez", d.Profile.FullName)
	require.NotNil(t, d.Registration)
	assert.Len(t, d.Players, 2)
	assert.True(t, d.RosterStats.HasData)
	assert.Equal(t, 1, d.RosterStats.WithJersey)
	assert.Nil(t, d.Team)

	_, err = env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: "Marta"})
	require.NoError(t, err)
	require.NoError(t, env.processor.SetPaymentStatus(ctx, res.Registration.ID, registration.PaymentPaid))
	_, err = env.processor.Approve(ctx, res.Registration.ID)
	require.NoError(t, err)

	d, err = env.processor.Dashboard(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, d.Team)
	require.NotNil(t, d.TeamStats)
	assert.Equal(t, 0, d.TeamStats.GamesPlayed)
	assert.Equal(t, 0.0, d.TeamStats.WinPct)
}

func TestTeamMatches(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	out, err := env.processor.TeamMatches(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, out.Upcoming)
	assert.Empty(t, out.Completed)

	res, err := env.processor.Register(ctx, env.request("new@x.com", 3))
	require.NoError(t, err)
	userID := res.Registration.UserID
	for i := 0; i < 3; i++ {
		_, err := env.processor.AddPlayer(ctx, userID, registration.PlayerInput{Name: fmt.Sprintf("P%d", i)})
		require.NoError(t, err)
	}
	require.NoError(t, env.processor.SetPaymentStatus(ctx, res.Registration.ID, registration.PaymentPaid))
	team, err := env.processor.Approve(ctx, res.Registration.ID)
	require.NoError(t, err)

	rival := &league.Team{Name: "Rivales", LeagueID: env.league.ID}
	require.NoError(t, env.leagues.CreateTeam(ctx, rival))

	home, away := 60, 55
	played := &league.Match{
		LeagueID: env.league.ID, HomeTeamID: team.ID, AwayTeamID: rival.ID,
		MatchDate: testNow.Add(-48 * time.Hour), Status: league.MatchCompleted,
		HomeScore: &home, AwayScore: &away,
	}
	next := &league.Match{
		LeagueID: env.league.ID, HomeTeamID: rival.ID, AwayTeamID: team.ID,
		MatchDate: testNow.Add(72 * time.Hour),
	}
	require.NoError(t, env.leagues.CreateMatch(ctx, played))
	require.NoError(t, env.leagues.CreateMatch(ctx, next))

	out, err = env.processor.TeamMatches(ctx, userID)
	require.NoError(t, err)
	require.Len(t, out.Upcoming, 1)
	assert.Equal(t, next.ID, out.Upcoming[0].ID)
	require.Len(t, out.Completed, 1)
	assert.Equal(t, played.ID, out.Completed[0].ID)
}

func TestUpdateProfile(t *testing.T) {
	env, teardown := setupTest(t, nil)
	defer teardown()
	ctx := context.Background()

	p, err := env.processor.UpdateProfile(ctx, "user-1", "Nuevo Nombre")
	require.NoError(t, err)
	assert.Equal(t, "Nuevo Nombre", p.FullName)

	got, err := env.profiles.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Nuevo Nombre", got.FullName)
}
