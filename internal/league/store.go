package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/database"
)

// New creates a new LeagueStore.
func New(db *sql.DB, clock clockwork.Clock) LeagueStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &store{
		db:    db,
		clock: clock,
	}
}

func (s *store) ListLeagues(ctx context.Context) ([]League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, season, start_date, end_date, age_category, gender, created_at
		FROM leagues
		ORDER BY created_at DESC, name ASC
	`)
	if err != nil {
		log.Error("Failed to query leagues", "error", err)
		return nil, err
	}
	defer rows.Close()

	leagues := []League{}
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, *l)
	}
	return leagues, rows.Err()
}

func (s *store) GetLeague(ctx context.Context, id string) (*League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, season, start_date, end_date, age_category, gender, created_at
		FROM leagues WHERE id = ?
	`, id)
	l, err := scanLeague(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return l, nil
}

func (s *store) CreateLeague(ctx context.Context, l *League) error {
	if err := ValidateLeague(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	l.CreatedAt = s.clock.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leagues (id, name, description, season, start_date, end_date, age_category, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, l.ID, l.Name, l.Description, l.Season, l.StartDate, l.EndDate, l.AgeCategory, l.Gender, l.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}
	log.Info("Created league", "leagueID", l.ID, "name", l.Name)
	return nil
}

func (s *store) UpdateLeague(ctx context.Context, l *League) error {
	if err := ValidateLeague(l); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE leagues SET name = ?, description = ?, season = ?, start_date = ?, end_date = ?, age_category = ?, gender = ?
		WHERE id = ?
	`, l.Name, l.Description, l.Season, l.StartDate, l.EndDate, l.AgeCategory, l.Gender, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update league: %w", err)
	}
	return expectOne(res, ErrLeagueNotFound)
}

func (s *store) DeleteLeague(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var refs int
	err := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM teams WHERE league_id = ?) +
		(SELECT COUNT(*) FROM team_registrations WHERE league_id = ?)`, id, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check league references: %w", err)
	}
	if refs > 0 {
		return ErrLeagueInUse
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM leagues WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return expectOne(res, ErrLeagueNotFound)
}

func (s *store) ListTeams(ctx context.Context, leagueID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTeamsLocked(ctx, leagueID)
}

func (s *store) listTeamsLocked(ctx context.Context, leagueID string) ([]Team, error) {
	query := `SELECT id, name, league_id, wins, losses, logo_url, registration_id, created_at FROM teams`
	var args []any
	if leagueID != "" {
		query += " WHERE league_id = ?"
		args = append(args, leagueID)
	}
	query += " ORDER BY wins DESC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query teams", "error", err, "leagueID", leagueID)
		return nil, err
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (s *store) GetTeam(ctx context.Context, id string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTeamWhere(ctx, "id = ?", id)
}

func (s *store) GetTeamByRegistration(ctx context.Context, registrationID string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTeamWhere(ctx, "registration_id = ?", registrationID)
}

func (s *store) getTeamWhere(ctx context.Context, where string, arg any) (*Team, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, league_id, wins, losses, logo_url, registration_id, created_at
		FROM teams WHERE `+where, arg)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

func (s *store) CreateTeam(ctx context.Context, t *Team) error {
	if err := ValidateTeam(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.CreatedAt = s.clock.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, league_id, wins, losses, logo_url, registration_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.LeagueID, t.Wins, t.Losses, t.LogoURL, t.RegistrationID, t.CreatedAt.Unix())
	if database.IsUniqueViolation(err) {
		return ErrTeamNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	log.Info("Created team", "teamID", t.ID, "name", t.Name, "leagueID", t.LeagueID)
	return nil
}

func (s *store) UpdateTeam(ctx context.Context, t *Team) error {
	if err := ValidateTeam(t); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET name = ?, league_id = ?, wins = ?, losses = ?, logo_url = ?
		WHERE id = ?
	`, t.Name, t.LeagueID, t.Wins, t.Losses, t.LogoURL, t.ID)
	if database.IsUniqueViolation(err) {
		return ErrTeamNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return expectOne(res, ErrTeamNotFound)
}

func (s *store) DeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return expectOne(res, ErrTeamNotFound)
}

const matchColumns = `
	m.id, m.league_id, m.home_team_id, m.away_team_id, m.match_date, m.location, m.status,
	m.home_score, m.away_score, m.created_at,
	COALESCE(h.name, ''), COALESCE(a.name, ''), COALESCE(l.name, '')
	FROM matches m
	LEFT JOIN teams h ON h.id = m.home_team_id
	LEFT JOIN teams a ON a.id = m.away_team_id
	LEFT JOIN leagues l ON l.id = m.league_id`

func (s *store) ListMatches(ctx context.Context, filter MatchFilter) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMatchesLocked(ctx, filter)
}

func (s *store) listMatchesLocked(ctx context.Context, filter MatchFilter) ([]Match, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.LeagueID != "" {
		conditions = append(conditions, "m.league_id = ?")
		args = append(args, filter.LeagueID)
	}
	if filter.TeamID != "" {
		conditions = append(conditions, "(m.home_team_id = ? OR m.away_team_id = ?)")
		args = append(args, filter.TeamID, filter.TeamID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(st))
		}
		conditions = append(conditions, "m.status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.From != nil {
		conditions = append(conditions, "m.match_date >= ?")
		args = append(args, formatMatchDate(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "m.match_date <= ?")
		args = append(args, formatMatchDate(*filter.To))
	}

	query := "SELECT " + matchColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if filter.Descending {
		query += " ORDER BY m.match_date DESC"
	} else {
		query += " ORDER BY m.match_date ASC"
	}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (s *store) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+matchColumns+" WHERE m.id = ?", id)
	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

func (s *store) CreateMatch(ctx context.Context, m *Match) error {
	if err := ValidateMatch(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = s.clock.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, league_id, home_team_id, away_team_id, match_date, location, status, home_score, away_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.LeagueID, m.HomeTeamID, m.AwayTeamID, formatMatchDate(m.MatchDate), m.Location, string(m.Status), m.HomeScore, m.AwayScore, m.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	log.Info("Created match", "matchID", m.ID, "leagueID", m.LeagueID, "date", m.MatchDate)
	return nil
}

func (s *store) UpdateMatch(ctx context.Context, m *Match) error {
	if err := ValidateMatch(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE matches SET league_id = ?, home_team_id = ?, away_team_id = ?, match_date = ?, location = ?, status = ?, home_score = ?, away_score = ?
		WHERE id = ?
	`, m.LeagueID, m.HomeTeamID, m.AwayTeamID, formatMatchDate(m.MatchDate), m.Location, string(m.Status), m.HomeScore, m.AwayScore, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	return expectOne(res, ErrMatchNotFound)
}

func (s *store) DeleteMatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM matches WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return expectOne(res, ErrMatchNotFound)
}

func (s *store) Standings(ctx context.Context, leagueID string) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams, err := s.listTeamsLocked(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for standings: %w", err)
	}
	matches, err := s.listMatchesLocked(ctx, MatchFilter{
		LeagueID: leagueID,
		Statuses: []MatchStatus{MatchCompleted},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for standings: %w", err)
	}
	return BuildStandings(teams, matches), nil
}

type scanner interface{ Scan(...any) error }

func scanLeague(row scanner) (*League, error) {
	var l League
	var ageCategory, gender sql.NullString
	var createdAt int64
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Season, &l.StartDate, &l.EndDate, &ageCategory, &gender, &createdAt); err != nil {
		return nil, err
	}
	l.AgeCategory = nullString(ageCategory)
	l.Gender = nullString(gender)
	l.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &l, nil
}

func scanTeam(row scanner) (*Team, error) {
	var t Team
	var logoURL, registrationID sql.NullString
	var createdAt int64
	if err := row.Scan(&t.ID, &t.Name, &t.LeagueID, &t.Wins, &t.Losses, &logoURL, &registrationID, &createdAt); err != nil {
		return nil, err
	}
	t.LogoURL = nullString(logoURL)
	t.RegistrationID = nullString(registrationID)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &t, nil
}

func scanMatch(row scanner) (*Match, error) {
	var m Match
	var matchDate, status string
	var homeScore, awayScore sql.NullInt64
	var createdAt int64
	err := row.Scan(
		&m.ID, &m.LeagueID, &m.HomeTeamID, &m.AwayTeamID, &matchDate, &m.Location, &status,
		&homeScore, &awayScore, &createdAt,
		&m.HomeTeamName, &m.AwayTeamName, &m.LeagueName,
	)
	if err != nil {
		return nil, err
	}
	m.MatchDate, err = time.Parse(time.RFC3339, matchDate)
	if err != nil {
		log.Warn("Failed to parse match date", "error", err, "matchID", m.ID, "value", matchDate)
	}
	m.Status = MatchStatus(status)
	m.HomeScore = nullInt(homeScore)
	m.AwayScore = nullInt(awayScore)
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &m, nil
}

// formatMatchDate stores dates in UTC so that lexical order equals chronological order.
func formatMatchDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
