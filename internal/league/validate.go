package league

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ValidateLeague trims the league fields and checks them.
func ValidateLeague(l *League) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Season = strings.TrimSpace(l.Season)
	if l.Name == "" {
		return ErrNameRequired
	}
	var start, end time.Time
	var err error
	if l.StartDate != "" {
		if start, err = time.Parse(dateLayout, l.StartDate); err != nil {
			return ErrInvalidDateRange
		}
	}
	if l.EndDate != "" {
		if end, err = time.Parse(dateLayout, l.EndDate); err != nil {
			return ErrInvalidDateRange
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// ValidateTeam trims the team fields and checks them.
func ValidateTeam(t *Team) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return ErrNameRequired
	}
	if t.LeagueID == "" {
		return ErrLeagueRequired
	}
	if t.Wins < 0 || t.Losses < 0 {
		return ErrInvalidRecord
	}
	return nil
}

// ValidateMatch checks a match and clears the scores unless it is completed.
func ValidateMatch(m *Match) error {
	if m.LeagueID == "" {
		return ErrLeagueRequired
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return ErrTeamsRequired
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeam
	}
	if m.MatchDate.IsZero() {
		return ErrMatchDateRequired
	}
	if m.Status == "" {
		m.Status = MatchScheduled
	}
	if !m.Status.Valid() {
		return ErrInvalidStatus
	}
	if m.Status != MatchCompleted {
		m.HomeScore = nil
		m.AwayScore = nil
		return nil
	}
	if (m.HomeScore != nil && *m.HomeScore < 0) || (m.AwayScore != nil && *m.AwayScore < 0) {
		return ErrInvalidScore
	}
	return nil
}
