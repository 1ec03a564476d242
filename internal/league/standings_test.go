package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeWinPct(t *testing.T) {
	tests := []struct {
		name   string
		wins   int
		losses int
		want   float64
	}{
		{"no games", 0, 0, 0},
		{"eight of ten", 8, 2, 80.0},
		{"even", 5, 5, 50.0},
		{"rounded", 1, 2, 33.3},
		{"perfect", 4, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeWinPct(tt.wins, tt.losses))
		})
	}
}

func TestBuildStandings_TieBreaks(t *testing.T) {
	score := func(v int) *int { return &v }
	teams := []Team{
		{ID: "c", Name: "Comets", Wins: 3, Losses: 1},
		{ID: "a", Name: "Arrows", Wins: 3, Losses: 1},
		{ID: "b", Name: "Bulls", Wins: 3, Losses: 1},
		{ID: "d", Name: "Dunkers", Wins: 4, Losses: 0},
	}
	matches := []Match{
		{HomeTeamID: "b", AwayTeamID: "c", Status: MatchCompleted, HomeScore: score(90), AwayScore: score(80)},
		// ignored: not completed
		{HomeTeamID: "c", AwayTeamID: "b", Status: MatchScheduled, HomeScore: score(100), AwayScore: score(0)},
		// ignored: no score
		{HomeTeamID: "a", AwayTeamID: "c", Status: MatchCompleted},
	}

	standings := BuildStandings(teams, matches)

	names := make([]string, len(standings))
	for i, s := range standings {
		names[i] = s.TeamName
		assert.Equal(t, i+1, s.Position)
	}
	// Dunkers lead on wins. Bulls have +10, Arrows 0, Comets -10.
	assert.Equal(t, []string{"Dunkers", "Bulls", "Arrows", "Comets"}, names)
	assert.Equal(t, 90, standings[1].PointsFor)
	assert.Equal(t, 80, standings[1].PointsAgainst)
	assert.Equal(t, 4, standings[1].GamesPlayed)
}

func TestSortStandings_NameBreaksFullTie(t *testing.T) {
	standings := []Standing{
		{TeamName: "Zebras", Wins: 1},
		{TeamName: "Ants", Wins: 1},
	}
	SortStandings(standings)
	assert.Equal(t, "Ants", standings[0].TeamName)
	assert.Equal(t, 2, standings[1].Position)
}
