package league

import (
	"math"
	"sort"
)

// ComputeWinPct returns the win percentage rounded to one decimal place, or 0 when no
// games have been played.
func ComputeWinPct(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	pct := float64(wins) / float64(total) * 100
	return math.Round(pct*10) / 10
}

// BuildStandings turns teams and their completed matches into a sorted league table.
// Matches that are not completed or lack a score are ignored.
func BuildStandings(teams []Team, matches []Match) []Standing {
	byTeam := make(map[string]*Standing, len(teams))
	standings := make([]Standing, len(teams))
	for i, t := range teams {
		standings[i] = Standing{
			TeamID:      t.ID,
			TeamName:    t.Name,
			LeagueID:    t.LeagueID,
			LogoURL:     t.LogoURL,
			Wins:        t.Wins,
			Losses:      t.Losses,
			GamesPlayed: t.Wins + t.Losses,
			WinPct:      ComputeWinPct(t.Wins, t.Losses),
		}
		byTeam[t.ID] = &standings[i]
	}

	for _, m := range matches {
		if m.Status != MatchCompleted || m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		if home, ok := byTeam[m.HomeTeamID]; ok {
			home.PointsFor += *m.HomeScore
			home.PointsAgainst += *m.AwayScore
		}
		if away, ok := byTeam[m.AwayTeamID]; ok {
			away.PointsFor += *m.AwayScore
			away.PointsAgainst += *m.HomeScore
		}
	}
	for i := range standings {
		standings[i].PointDiff = standings[i].PointsFor - standings[i].PointsAgainst
	}

	SortStandings(standings)
	return standings
}

// SortStandings orders by wins, then point differential, then team name, and assigns
// positions.
func SortStandings(standings []Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointDiff != b.PointDiff {
			return a.PointDiff > b.PointDiff
		}
		return a.TeamName < b.TeamName
	})
	for i := range standings {
		standings[i].Position = i + 1
	}
}
