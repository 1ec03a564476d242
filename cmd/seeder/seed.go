package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout read by the seeder.
type SeedFile struct {
	// Admins are user ids granted the admin role.
	Admins  []string     `yaml:"admins"`
	Leagues []SeedLeague `yaml:"leagues"`
}

type SeedLeague struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Season      string      `yaml:"season"`
	StartDate   string      `yaml:"start_date"`
	EndDate     string      `yaml:"end_date"`
	AgeCategory string      `yaml:"age_category"`
	Gender      string      `yaml:"gender"`
	Teams       []SeedTeam  `yaml:"teams"`
	Matches     []SeedMatch `yaml:"matches"`
}

type SeedTeam struct {
	Name    string `yaml:"name"`
	Wins    int    `yaml:"wins"`
	Losses  int    `yaml:"losses"`
	LogoURL string `yaml:"logo_url"`
}

// SeedMatch refers to its teams by name within the league.
type SeedMatch struct {
	Home      string    `yaml:"home"`
	Away      string    `yaml:"away"`
	Date      time.Time `yaml:"date"`
	Location  string    `yaml:"location"`
	Status    string    `yaml:"status"`
	HomeScore *int      `yaml:"home_score"`
	AwayScore *int      `yaml:"away_score"`
}

// SeedResult counts what a seed run created.
type SeedResult struct {
	Leagues int
	Teams   int
	Matches int
	Admins  int
}

func parseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// seed writes f through the stores. Leagues and teams that already exist by name are
// reused, so running it twice only adds the matches again if they are new.
func seed(ctx context.Context, f *SeedFile, leagues league.LeagueStore, profiles identity.ProfileStore) (SeedResult, error) {
	var res SeedResult

	for _, userID := range f.Admins {
		if err := profiles.GrantRole(ctx, userID, identity.RoleAdmin); err != nil {
			return res, fmt.Errorf("failed to grant admin to %s: %w", userID, err)
		}
		res.Admins++
	}

	existing, err := leagues.ListLeagues(ctx)
	if err != nil {
		return res, err
	}

	for _, sl := range f.Leagues {
		l := findLeague(existing, sl.Name, sl.Season)
		if l == nil {
			l = &league.League{
				Name:        sl.Name,
				Description: sl.Description,
				Season:      sl.Season,
				StartDate:   sl.StartDate,
				EndDate:     sl.EndDate,
				AgeCategory: optional(sl.AgeCategory),
				Gender:      optional(sl.Gender),
			}
			if err := leagues.CreateLeague(ctx, l); err != nil {
				return res, fmt.Errorf("failed to create league %q: %w", sl.Name, err)
			}
			res.Leagues++
		}

		teams, err := leagues.ListTeams(ctx, l.ID)
		if err != nil {
			return res, err
		}
		byName := make(map[string]string, len(teams))
		for _, t := range teams {
			byName[t.Name] = t.ID
		}

		for _, st := range sl.Teams {
			if _, ok := byName[st.Name]; ok {
				continue
			}
			t := &league.Team{Name: st.Name, LeagueID: l.ID, Wins: st.Wins, Losses: st.Losses, LogoURL: optional(st.LogoURL)}
			if err := leagues.CreateTeam(ctx, t); err != nil {
				return res, fmt.Errorf("failed to create team %q: %w", st.Name, err)
			}
			byName[t.Name] = t.ID
			res.Teams++
		}

		known, err := leagues.ListMatches(ctx, league.MatchFilter{LeagueID: l.ID})
		if err != nil {
			return res, err
		}
		for _, sm := range sl.Matches {
			homeID, ok := byName[sm.Home]
			if !ok {
				return res, fmt.Errorf("match references unknown team %q in league %q", sm.Home, sl.Name)
			}
			awayID, ok := byName[sm.Away]
			if !ok {
				return res, fmt.Errorf("match references unknown team %q in league %q", sm.Away, sl.Name)
			}
			if hasMatch(known, homeID, awayID, sm.Date) {
				continue
			}
			m := &league.Match{
				LeagueID:   l.ID,
				HomeTeamID: homeID,
				AwayTeamID: awayID,
				MatchDate:  sm.Date,
				Location:   sm.Location,
				Status:     league.MatchStatus(sm.Status),
				HomeScore:  sm.HomeScore,
				AwayScore:  sm.AwayScore,
			}
			if err := leagues.CreateMatch(ctx, m); err != nil {
				return res, fmt.Errorf("failed to create match %s vs %s: %w", sm.Home, sm.Away, err)
			}
			res.Matches++
		}
		log.Info("Seeded league", "league", l.DisplayName(), "teams", len(byName))
	}
	return res, nil
}

func findLeague(leagues []league.League, name, season string) *league.League {
	for i := range leagues {
		if leagues[i].Name == name && leagues[i].Season == season {
			return &leagues[i]
		}
	}
	return nil
}

func hasMatch(matches []league.Match, homeID, awayID string, date time.Time) bool {
	for _, m := range matches {
		if m.HomeTeamID == homeID && m.AwayTeamID == awayID && m.MatchDate.Equal(date) {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
