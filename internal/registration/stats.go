package registration

import (
	"math"
	"sort"
	"strings"
)

// UnassignedPosition is the bucket for players without a position.
const UnassignedPosition = "Sin posición"

const jerseySpreadSize = 8

// ComputeRosterStats summarizes a roster. Positions keep the order in which they first
// appear on the roster.
func ComputeRosterStats(players []Player) RosterStats {
	stats := RosterStats{
		Total:        len(players),
		Positions:    []PositionShare{},
		JerseySpread: []JerseyEntry{},
	}
	if len(players) == 0 {
		return stats
	}
	stats.HasData = true

	index := map[string]int{}
	for _, p := range players {
		pos := UnassignedPosition
		if p.Position != nil && strings.TrimSpace(*p.Position) != "" {
			pos = strings.TrimSpace(*p.Position)
		}
		i, ok := index[pos]
		if !ok {
			i = len(stats.Positions)
			index[pos] = i
			stats.Positions = append(stats.Positions, PositionShare{Position: pos})
		}
		stats.Positions[i].Count++

		if p.JerseyNumber != nil {
			stats.WithJersey++
			stats.JerseySpread = append(stats.JerseySpread, JerseyEntry{
				FirstName: firstName(p.Name),
				Number:    *p.JerseyNumber,
			})
		}
	}

	for i := range stats.Positions {
		pct := float64(stats.Positions[i].Count) / float64(stats.Total) * 100
		stats.Positions[i].Percent = math.Round(pct*10) / 10
	}

	sort.SliceStable(stats.JerseySpread, func(i, j int) bool {
		return stats.JerseySpread[i].Number < stats.JerseySpread[j].Number
	})
	if len(stats.JerseySpread) > jerseySpreadSize {
		stats.JerseySpread = stats.JerseySpread[:jerseySpreadSize]
	}
	return stats
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
