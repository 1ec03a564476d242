package registration

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

// New creates a new RegistrationStore.
func New(db *sql.DB, clock clockwork.Clock) RegistrationStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &store{
		db:    db,
		clock: clock,
	}
}

const registrationColumns = `
	r.id, r.user_id, r.team_name, r.captain_name, r.email, r.phone, r.league_id,
	r.number_of_players, r.message, r.payment_status, r.approval_status, r.approved_at, r.created_at,
	COALESCE(l.name, ''),
	(SELECT COUNT(*) FROM players p WHERE p.team_registration_id = r.id)
	FROM team_registrations r
	LEFT JOIN leagues l ON l.id = r.league_id`

func (s *store) Create(ctx context.Context, r *Registration) error {
	if r.NumberOfPlayers < MinPlayers || r.NumberOfPlayers > MaxPlayers {
		return ErrPlayerCountOutOfRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.PaymentStatus = PaymentPending
	r.ApprovalStatus = ApprovalPending
	r.ApprovedAt = nil
	r.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_registrations (id, user_id, team_name, captain_name, email, phone, league_id,
			number_of_players, message, payment_status, approval_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.UserID, r.TeamName, r.CaptainName, r.Email, r.Phone, r.LeagueID,
		r.NumberOfPlayers, r.Message, string(r.PaymentStatus), string(r.ApprovalStatus), r.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	log.Info("Created registration", "registrationID", r.ID, "team", r.TeamName, "leagueID", r.LeagueID)
	return nil
}

func (s *store) Get(ctx context.Context, id string) (*Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+" WHERE r.id = ?", id)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	if r.Players, err = s.listPlayersLocked(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *store) GetLatestByUser(ctx context.Context, userID string) (*Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+registrationColumns+`
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, r.rowid DESC
		LIMIT 1`, userID)
	r, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration for user: %w", err)
	}
	if r.Players, err = s.listPlayersLocked(ctx, r.ID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *store) List(ctx context.Context) ([]Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+registrationColumns+" ORDER BY r.created_at DESC, r.rowid DESC")
	if err != nil {
		log.Error("Failed to query registrations", "error", err)
		return nil, err
	}
	defer rows.Close()

	registrations := []Registration{}
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, *r)
	}
	return registrations, rows.Err()
}

func (s *store) SetPaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	if !status.Valid() {
		return ErrInvalidPaymentStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE team_registrations SET payment_status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRegistrationNotFound
	}
	log.Info("Updated payment status", "registrationID", id, "status", status)
	return nil
}

func (s *store) AddPlayer(ctx context.Context, registrationID string, in PlayerInput) (*Player, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity, count int
	err = tx.QueryRowContext(ctx, `
		SELECT number_of_players,
			(SELECT COUNT(*) FROM players WHERE team_registration_id = ?)
		FROM team_registrations WHERE id = ?
	`, registrationID, registrationID).Scan(&capacity, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count roster: %w", err)
	}
	if count >= capacity {
		return nil, ErrRosterFull
	}

	p := &Player{
		ID:             uuid.New().String(),
		RegistrationID: registrationID,
		Name:           name,
		JerseyNumber:   in.JerseyNumber,
		Position:       trimmedOrNil(in.Position),
		Age:            in.Age,
		Email:          trimmedOrNil(in.Email),
		CreatedAt:      s.now(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO players (id, team_registration_id, name, jersey_number, position, age, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.RegistrationID, p.Name, p.JerseyNumber, p.Position, p.Age, p.Email, p.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit player: %w", err)
	}
	log.Debug("Added player", "registrationID", registrationID, "playerID", p.ID, "roster", count+1, "capacity", capacity)
	return p, nil
}

func (s *store) RemovePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (s *store) GetPlayer(ctx context.Context, playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, team_registration_id, name, jersey_number, position, age, email, created_at
		FROM players WHERE id = ?
	`, playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

func (s *store) ListPlayers(ctx context.Context, registrationID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listPlayersLocked(ctx, registrationID)
}

func (s *store) listPlayersLocked(ctx context.Context, registrationID string) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_registration_id, name, jersey_number, position, age, email, created_at
		FROM players WHERE team_registration_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, registrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) Approve(ctx context.Context, registrationID string, team ApprovedTeam) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var payment string
	var required, actual int
	err = tx.QueryRowContext(ctx, `
		SELECT payment_status, number_of_players,
			(SELECT COUNT(*) FROM players WHERE team_registration_id = ?)
		FROM team_registrations WHERE id = ?
	`, registrationID, registrationID).Scan(&payment, &required, &actual)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load registration for approval: %w", err)
	}
	if PaymentStatus(payment) != PaymentPaid {
		return ErrPaymentNotConfirmed
	}
	if actual != required {
		return &RosterIncompleteError{Required: required, Actual: actual}
	}

	approvedAt := s.now()
	res, err := tx.ExecContext(ctx, `
		UPDATE team_registrations SET approval_status = ?, approved_at = ?
		WHERE id = ? AND approval_status = ?
	`, string(ApprovalApproved), approvedAt.Unix(), registrationID, string(ApprovalPending))
	if err != nil {
		return fmt.Errorf("failed to mark registration approved: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyApproved
	}

	createdAt := team.CreatedAt
	if createdAt.IsZero() {
		createdAt = approvedAt
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO teams (id, name, league_id, wins, losses, registration_id, created_at)
		VALUES (?, ?, ?, 0, 0, ?, ?)
	`, team.ID, team.Name, team.LeagueID, registrationID, createdAt.Unix())
	if database.IsUniqueViolation(err) {
		return ErrTeamNameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create team from registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit approval: %w", err)
	}
	log.Info("Approved registration", "registrationID", registrationID, "teamID", team.ID)
	return nil
}

func (s *store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

type scanner interface{ Scan(...any) error }

func scanRegistration(row scanner) (*Registration, error) {
	var r Registration
	var payment, approval string
	var approvedAt sql.NullInt64
	var createdAt int64
	err := row.Scan(
		&r.ID, &r.UserID, &r.TeamName, &r.CaptainName, &r.Email, &r.Phone, &r.LeagueID,
		&r.NumberOfPlayers, &r.Message, &payment, &approval, &approvedAt, &createdAt,
		&r.LeagueName, &r.PlayersCount,
	)
	if err != nil {
		return nil, err
	}
	r.PaymentStatus = PaymentStatus(payment)
	r.ApprovalStatus = ApprovalStatus(approval)
	if approvedAt.Valid {
		t := time.Unix(approvedAt.Int64, 0).UTC()
		r.ApprovedAt = &t
	}
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &r, nil
}

func scanPlayer(row scanner) (*Player, error) {
	var p Player
	var jersey, age sql.NullInt64
	var position, email sql.NullString
	var createdAt int64
	if err := row.Scan(&p.ID, &p.RegistrationID, &p.Name, &jersey, &position, &age, &email, &createdAt); err != nil {
		return nil, err
	}
	if jersey.Valid {
		v := int(jersey.Int64)
		p.JerseyNumber = &v
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if position.Valid {
		v := position.String
		p.Position = &v
	}
	if email.Valid {
		v := email.String
		p.Email = &v
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
