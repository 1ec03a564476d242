package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/league"
	"golang.org/x/sync/errgroup"
)

const (
	homeStandingsLimit = 5
	homeMatchesLimit   = 5
	monthLayout        = "2006-01"
	dayLayout          = "2006-01-02"
)

// HomeResponse is the public landing overview.
type HomeResponse struct {
	Leagues     []league.League   `json:"leagues"`
	Standings   []league.Standing `json:"standings"`
	NextMatches []league.Match    `json:"next_matches"`
}

// CalendarResponse groups the matches of a month by day (YYYY-MM-DD).
type CalendarResponse struct {
	Month string                    `json:"month"`
	Days  map[string][]league.Match `json:"days"`
}

func HomeHandler(store league.LeagueStore, clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp HomeResponse
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			resp.Leagues, err = store.ListLeagues(ctx)
			return err
		})
		g.Go(func() error {
			standings, err := store.Standings(ctx, r.URL.Query().Get("league_id"))
			if len(standings) > homeStandingsLimit {
				standings = standings[:homeStandingsLimit]
			}
			resp.Standings = standings
			return err
		})
		g.Go(func() error {
			now := clock.Now()
			var err error
			resp.NextMatches, err = store.ListMatches(ctx, league.MatchFilter{
				Statuses: []league.MatchStatus{league.MatchScheduled},
				From:     &now,
				Limit:    homeMatchesLimit,
			})
			return err
		})
		if err := g.Wait(); err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func ListLeaguesHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := store.ListLeagues(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, leagues)
	}
}

func GetLeagueHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := store.GetLeague(r.Context(), r.PathValue("id"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, l)
	}
}

func ListTeamsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := store.ListTeams(r.Context(), r.URL.Query().Get("league_id"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func ListMatchesHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseMatchFilter(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		matches, err := store.ListMatches(r.Context(), filter)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func CalendarHandler(store league.LeagueStore, clock clockwork.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := clock.Now().UTC()
		if m := r.URL.Query().Get("month"); m != "" {
			parsed, err := time.Parse(monthLayout, m)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "month must be YYYY-MM"})
				return
			}
			month = parsed
		}
		from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0).Add(-time.Second)

		matches, err := store.ListMatches(r.Context(), league.MatchFilter{
			LeagueID: r.URL.Query().Get("league_id"),
			From:     &from,
			To:       &to,
		})
		if err != nil {
			WriteError(w, err)
			return
		}

		resp := CalendarResponse{Month: from.Format(monthLayout), Days: map[string][]league.Match{}}
		for _, m := range matches {
			day := m.MatchDate.UTC().Format(dayLayout)
			resp.Days[day] = append(resp.Days[day], m)
		}
		log.FromContext(r.Context()).Debug("Built calendar", "month", resp.Month, "matches", len(matches), "days", len(resp.Days))
		writeJSON(w, http.StatusOK, resp)
	}
}

func StandingsHandler(store league.LeagueStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := store.Standings(r.Context(), r.URL.Query().Get("league_id"))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

// parseMatchFilter reads league_id, team_id, status (comma separated), from and to.
// Dates are YYYY-MM-DD or RFC3339; a bare "to" date includes the whole day.
func parseMatchFilter(r *http.Request) (league.MatchFilter, error) {
	q := r.URL.Query()
	filter := league.MatchFilter{
		LeagueID: q.Get("league_id"),
		TeamID:   q.Get("team_id"),
	}
	if s := q.Get("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			status := league.MatchStatus(strings.TrimSpace(part))
			if !status.Valid() {
				return filter, league.ErrInvalidStatus
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	if s := q.Get("from"); s != "" {
		from, _, err := parseDate(s)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if s := q.Get("to"); s != "" {
		to, dateOnly, err := parseDate(s)
		if err != nil {
			return filter, err
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Second)
		}
		filter.To = &to
	}
	return filter, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, errInvalidDate
	}
	return t.UTC(), false, nil
}
