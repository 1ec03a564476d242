package processor

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/registration"
)

// Dashboard collects the dashboard view of userID. A user without a registration gets
// an empty dashboard rather than an error.
func (p *Processor) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	d := &Dashboard{
		Players:     []registration.Player{},
		RosterStats: registration.ComputeRosterStats(nil),
	}

	profile, err := p.profiles.GetProfile(ctx, userID)
	switch {
	case err == nil:
		d.Profile = profile
	case !errors.Is(err, identity.ErrProfileNotFound):
		return nil, err
	}

	reg, err := p.registrations.GetLatestByUser(ctx, userID)
	if errors.Is(err, registration.ErrRegistrationNotFound) {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	d.Registration = reg
	d.Players = reg.Players
	d.RosterStats = registration.ComputeRosterStats(reg.Players)

	team, err := p.leagues.GetTeamByRegistration(ctx, reg.ID)
	if errors.Is(err, league.ErrTeamNotFound) {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	d.Team = team
	d.TeamStats = &TeamStats{
		Wins:        team.Wins,
		Losses:      team.Losses,
		GamesPlayed: team.Wins + team.Losses,
		WinPct:      league.ComputeWinPct(team.Wins, team.Losses),
	}
	return d, nil
}

// TeamMatches returns the upcoming and completed matches of the official team of userID.
// Both lists are empty until the registration is approved.
func (p *Processor) TeamMatches(ctx context.Context, userID string) (*TeamMatches, error) {
	out := &TeamMatches{Upcoming: []league.Match{}, Completed: []league.Match{}}

	reg, err := p.registrations.GetLatestByUser(ctx, userID)
	if errors.Is(err, registration.ErrRegistrationNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	team, err := p.leagues.GetTeamByRegistration(ctx, reg.ID)
	if errors.Is(err, league.ErrTeamNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	out.Upcoming, err = p.leagues.ListMatches(ctx, league.MatchFilter{
		TeamID:   team.ID,
		Statuses: []league.MatchStatus{league.MatchScheduled, league.MatchInProgress},
	})
	if err != nil {
		return nil, err
	}
	out.Completed, err = p.leagues.ListMatches(ctx, league.MatchFilter{
		TeamID:     team.ID,
		Statuses:   []league.MatchStatus{league.MatchCompleted},
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("Loaded team matches", "teamID", team.ID, "upcoming", len(out.Upcoming), "completed", len(out.Completed))
	return out, nil
}

// UpdateProfile changes the display name of userID.
func (p *Processor) UpdateProfile(ctx context.Context, userID, fullName string) (*identity.Profile, error) {
	profile, err := p.profiles.GetProfile(ctx, userID)
	if errors.Is(err, identity.ErrProfileNotFound) {
		profile = &identity.Profile{ID: userID}
	} else if err != nil {
		return nil, err
	}
	profile.FullName = fullName
	if err := p.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
