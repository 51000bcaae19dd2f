package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/clientguard/clientguard/internal/identity/domain"
	"github.com/clientguard/clientguard/internal/testutil"
)

func TestNewPostgreSQLSessionRepository(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLSessionRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLSessionRepository{}, repo)
}

func TestPostgreSQLSessionRepository_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSessionRepository(db)
	ctx := context.Background()

	userID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC().Truncate(time.Microsecond)
	session := &identityDomain.Session{
		ID:            uuid.NewString(),
		UserID:        &userID,
		Authenticated: true,
		Claims: map[string]any{
			"https://clientguard.io/claims/role": "Admin",
		},
		LinkedIdentities: []identityDomain.LinkedIdentity{
			{
				Provider: "auth0",
				ExtraData: map[string]any{
					"id_token_payload": map[string]any{
						"https://clientguard.io/claims/role": "Admin",
					},
				},
			},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(12 * time.Hour),
	}

	err := repo.Create(ctx, session)
	require.NoError(t, err)

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.True(t, got.Authenticated)
	assert.Equal(t, "Admin", got.Claims["https://clientguard.io/claims/role"])
	require.Len(t, got.LinkedIdentities, 1)
	assert.Equal(t, "auth0", got.LinkedIdentities[0].Provider)
	assert.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Millisecond)
}

func TestPostgreSQLSessionRepository_CreateAnonymous(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSessionRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	session := &identityDomain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	err := repo.Create(ctx, session)
	require.NoError(t, err)

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.False(t, got.Authenticated)
	assert.Nil(t, got.Claims)
	assert.Nil(t, got.LinkedIdentities)
}

func TestPostgreSQLSessionRepository_GetNotFound(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	repo := NewPostgreSQLSessionRepository(db)

	_, err := repo.Get(context.Background(), "missing-session")
	assert.ErrorIs(t, err, identityDomain.ErrSessionNotFound)
}

func TestPostgreSQLSessionRepository_Delete(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	repo := NewPostgreSQLSessionRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	session := &identityDomain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	err := repo.Delete(ctx, session.ID)
	require.NoError(t, err)

	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, identityDomain.ErrSessionNotFound)

	// Deleting an already removed session is not an error
	assert.NoError(t, repo.Delete(ctx, session.ID))
}
