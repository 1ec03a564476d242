package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *sql.DB, clock clockwork.Clock) ProfileStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &profileStore{db: db, clock: clock}
}

func (s *profileStore) UpsertProfile(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		return errors.New("profile id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p.FullName = strings.TrimSpace(p.FullName)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.clock.Now().UTC().Truncate(time.Second)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, full_name, avatar_url, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET full_name = excluded.full_name, avatar_url = excluded.avatar_url
	`, p.ID, p.FullName, p.AvatarURL, p.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (s *profileStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Profile
	var fullName, avatarURL sql.NullString
	var createdAt int64
	err := s.db.QueryRowContext(ctx, "SELECT id, full_name, avatar_url, created_at FROM profiles WHERE id = ?", userID).
		Scan(&p.ID, &fullName, &avatarURL, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.FullName = fullName.String
	if avatarURL.Valid {
		v := avatarURL.String
		p.AvatarURL = &v
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func (s *profileStore) HasRole(ctx context.Context, userID string, role Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_roles WHERE user_id = ? AND role = ?", userID, string(role)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return n > 0, nil
}

func (s *profileStore) GrantRole(ctx context.Context, userID string, role Role) error {
	if role != RoleAdmin && role != RoleUser {
		return ErrInvalidRole
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)", userID, string(role))
	if err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return nil
}
