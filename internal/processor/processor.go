package processor

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/pubsub"
	"github.com/mauv0809/league-hub/internal/registration"
)

// New creates a new Processor. pubsub may be nil, in which case notifications are
// delivered directly.
func New(
	registrations registration.RegistrationStore,
	leagues league.LeagueStore,
	profiles identity.ProfileStore,
	resolver Resolver,
	notifier notifier.Notifier,
	metrics metrics.Metrics,
	pubsub pubsub.PubSubClient,
	fee int,
) *Processor {
	return &Processor{
		registrations: registrations,
		leagues:       leagues,
		profiles:      profiles,
		resolver:      resolver,
		pubsub:        pubsub,
		notifier:      notifier,
		metrics:       metrics,
		fee:           fee,
	}
}

// Register validates the request, resolves the caller's identity, writes the
// registration and then notifies the captain.
func (p *Processor) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error) {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration("register", time.Since(startTime).Seconds())
	}()

	if err := normalizeRequest(&req); err != nil {
		return nil, err
	}
	lg, err := p.leagues.GetLeague(ctx, req.LeagueID)
	if errors.Is(err, league.ErrLeagueNotFound) {
		return nil, ErrUnknownLeague
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up league: %w", err)
	}

	res, err := p.resolver.Resolve(ctx, req.Session, req.Email, req.Password)
	if err != nil {
		log.Warn("Identity resolution failed", "error", err, "email", req.Email)
		return nil, err
	}

	if res.Created {
		profile := &identity.Profile{ID: res.Identity.ID, FullName: req.CaptainName}
		if err := p.profiles.UpsertProfile(ctx, profile); err != nil {
			log.Error("Failed to create profile", "error", err, "userID", res.Identity.ID)
		}
		p.dispatch(ctx, notifier.Event{
			Type:    notifier.EventWelcome,
			Welcome: &notifier.Welcome{To: req.Email, FullName: req.CaptainName},
		})
	}

	reg := &registration.Registration{
		UserID:          res.Identity.ID,
		TeamName:        req.TeamName,
		CaptainName:     req.CaptainName,
		Email:           req.Email,
		Phone:           req.Phone,
		LeagueID:        req.LeagueID,
		NumberOfPlayers: req.NumberOfPlayers,
		Message:         req.Message,
	}
	if err := p.registrations.Create(ctx, reg); err != nil {
		return nil, err
	}
	reg.LeagueName = lg.Name
	p.metrics.IncRegistrationsCreated()
	log.Info("Registration written", "registrationID", reg.ID, "userID", reg.UserID, "accountCreated", res.Created)

	p.dispatch(ctx, notifier.Event{
		Type: notifier.EventRegistrationReceived,
		RegistrationReceived: &notifier.RegistrationReceived{
			To:             reg.Email,
			RegistrationID: reg.ID,
			CaptainName:    reg.CaptainName,
			TeamName:       reg.TeamName,
			LeagueName:     lg.DisplayName(),
			PlayerCount:    reg.NumberOfPlayers,
			Amount:         p.fee,
		},
	})

	return &RegistrationResult{
		Registration:      reg,
		Session:           res.Session,
		GeneratedPassword: res.GeneratedPassword,
		AccountCreated:    res.Created,
		Redirect:          DashboardRedirect,
	}, nil
}

func normalizeRequest(req *RegistrationRequest) error {
	req.TeamName = strings.TrimSpace(req.TeamName)
	req.CaptainName = strings.TrimSpace(req.CaptainName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.LeagueID = strings.TrimSpace(req.LeagueID)
	req.Message = strings.TrimSpace(req.Message)

	switch {
	case req.TeamName == "":
		return ErrTeamNameRequired
	case req.CaptainName == "":
		return ErrCaptainNameRequired
	case req.Phone == "":
		return ErrPhoneRequired
	case !validEmail(req.Email):
		return ErrInvalidEmail
	case req.LeagueID == "":
		return ErrLeagueRequired
	case req.NumberOfPlayers < registration.MinPlayers || req.NumberOfPlayers > registration.MaxPlayers:
		return registration.ErrPlayerCountOutOfRange
	}
	return nil
}

// validEmail accepts a bare address only, without a display name.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}

// AddPlayer adds a player to the most recent registration of userID.
func (p *Processor) AddPlayer(ctx context.Context, userID string, in registration.PlayerInput) (*registration.Player, error) {
	reg, err := p.registrations.GetLatestByUser(ctx, userID)
	if errors.Is(err, registration.ErrRegistrationNotFound) {
		return nil, ErrNoRegistration
	}
	if err != nil {
		return nil, err
	}
	player, err := p.registrations.AddPlayer(ctx, reg.ID, in)
	if err != nil {
		if errors.Is(err, registration.ErrRosterFull) {
			log.Info("Roster full", "registrationID", reg.ID, "capacity", reg.NumberOfPlayers)
		}
		return nil, err
	}
	p.metrics.IncRosterChanges("add")
	return player, nil
}

// RemovePlayer removes a player from a registration owned by userID.
func (p *Processor) RemovePlayer(ctx context.Context, userID, playerID string) error {
	player, err := p.registrations.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	reg, err := p.registrations.Get(ctx, player.RegistrationID)
	if err != nil {
		return err
	}
	if reg.UserID != userID {
		log.Warn("Rejected roster change on foreign registration", "userID", userID, "registrationID", reg.ID)
		return ErrForbidden
	}
	if err := p.registrations.RemovePlayer(ctx, playerID); err != nil {
		return err
	}
	p.metrics.IncRosterChanges("remove")
	return nil
}

// SetPaymentStatus records the payment status chosen by an admin.
func (p *Processor) SetPaymentStatus(ctx context.Context, registrationID string, status registration.PaymentStatus) error {
	if err := p.registrations.SetPaymentStatus(ctx, registrationID, status); err != nil {
		return err
	}
	p.metrics.IncPaymentStatusUpdates(string(status))
	return nil
}

// Approve turns a paid registration with a complete roster into an official team and
// notifies the captain. It is never retried.
func (p *Processor) Approve(ctx context.Context, registrationID string) (*league.Team, error) {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveProcessingDuration("approve", time.Since(startTime).Seconds())
	}()

	reg, err := p.registrations.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	approved := registration.ApprovedTeam{
		ID:       uuid.New().String(),
		Name:     reg.TeamName,
		LeagueID: reg.LeagueID,
	}
	if err := p.registrations.Approve(ctx, reg.ID, approved); err != nil {
		p.metrics.IncApprovalsRejected(rejectionReason(err))
		log.Info("Approval rejected", "registrationID", reg.ID, "reason", err)
		return nil, err
	}
	p.metrics.IncRegistrationsApproved()

	team, err := p.leagues.GetTeam(ctx, approved.ID)
	if err != nil {
		log.Warn("Failed to reload approved team", "error", err, "teamID", approved.ID)
		team = &league.Team{ID: approved.ID, Name: approved.Name, LeagueID: approved.LeagueID, RegistrationID: &reg.ID}
	}

	leagueName := reg.LeagueName
	if lg, err := p.leagues.GetLeague(ctx, reg.LeagueID); err == nil {
		leagueName = lg.DisplayName()
	}
	p.dispatch(ctx, notifier.Event{
		Type: notifier.EventApprovalConfirmed,
		ApprovalConfirmed: &notifier.ApprovalConfirmed{
			To:             reg.Email,
			RegistrationID: reg.ID,
			TeamID:         team.ID,
			CaptainName:    reg.CaptainName,
			TeamName:       reg.TeamName,
			LeagueName:     leagueName,
		},
	})
	return team, nil
}

func rejectionReason(err error) string {
	var incomplete *registration.RosterIncompleteError
	switch {
	case errors.Is(err, registration.ErrPaymentNotConfirmed):
		return "payment_not_confirmed"
	case errors.As(err, &incomplete):
		return "roster_incomplete"
	case errors.Is(err, registration.ErrAlreadyApproved):
		return "already_approved"
	case errors.Is(err, registration.ErrRegistrationNotFound):
		return "not_found"
	}
	return "error"
}
