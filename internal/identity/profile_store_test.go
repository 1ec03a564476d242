package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/database"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProfileStore(t *testing.T) identity.ProfileStore {
	t.Helper()
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() {
		dbTeardown()
		db.Close()
	})
	return identity.NewProfileStore(db, clockwork.NewFakeClockAt(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestProfileStore_Upsert(t *testing.T) {
	store := setupProfileStore(t)
	ctx := context.Background()

	_, err := store.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, identity.ErrProfileNotFound)

	require.NoError(t, store.UpsertProfile(ctx, &identity.Profile{ID: "u1", FullName: " Ana Pérez "}))
	require.NoError(t, store.UpsertProfile(ctx, &identity.Profile{ID: "u1", FullName: "Ana P."}))

	p, err := store.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana P.", p.FullName)
	assert.Nil(t, p.AvatarURL)

	assert.Error(t, store.UpsertProfile(ctx, &identity.Profile{}))
}

func TestProfileStore_Roles(t *testing.T) {
	store := setupProfileStore(t)
	ctx := context.Background()

	isAdmin, err := store.HasRole(ctx, "u1", identity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, store.GrantRole(ctx, "u1", identity.RoleAdmin))
	require.NoError(t, store.GrantRole(ctx, "u1", identity.RoleAdmin), "granting twice is a no-op")

	isAdmin, err = store.HasRole(ctx, "u1", identity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	assert.ErrorIs(t, store.GrantRole(ctx, "u1", "owner"), identity.ErrInvalidRole)
}
