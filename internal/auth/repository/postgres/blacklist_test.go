package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repo "github.com/studymodules/auth-service/internal/auth/repository/postgres"
	autherror "github.com/studymodules/auth-service/internal/errors"
)

// TestBlacklistAdd covers the Add store method.
func TestBlacklistAdd(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b := repo.NewPostgresBlacklist(mock)
	ctx := context.Background()
	expiresAt := time.Now().Add(24 * time.Hour)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO token_blacklist").
			WithArgs("some-token", expiresAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := b.Add(ctx, "some-token", expiresAt)
		assert.NoError(t, err)
	})

	t.Run("re-adding the same token is not an error", func(t *testing.T) {
		// The upsert replaces the existing row.
		mock.ExpectExec("INSERT INTO token_blacklist").
			WithArgs("some-token", expiresAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := b.Add(ctx, "some-token", expiresAt)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO token_blacklist").
			WithArgs("some-token", expiresAt).
			WillReturnError(fmt.Errorf("connection refused"))

		err := b.Add(ctx, "some-token", expiresAt)
		assert.Error(t, err)
	})
}

// TestBlacklistIsBlacklisted covers the lookup path, including the lazy
// reclamation of expired entries.
func TestBlacklistIsBlacklisted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b := repo.NewPostgresBlacklist(mock)
	ctx := context.Background()

	t.Run("unexpired entry reports revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT expires_at").
			WithArgs("revoked-token").
			WillReturnRows(pgxmock.NewRows([]string{"expires_at"}).
				AddRow(time.Now().Add(time.Hour)))

		revoked, err := b.IsBlacklisted(ctx, "revoked-token")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entry is deleted and reported as not revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT expires_at").
			WithArgs("stale-token").
			WillReturnRows(pgxmock.NewRows([]string{"expires_at"}).
				AddRow(time.Now().Add(-time.Minute)))
		mock.ExpectExec("DELETE FROM token_blacklist").
			WithArgs("stale-token").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		revoked, err := b.IsBlacklisted(ctx, "stale-token")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown token is not revoked", func(t *testing.T) {
		mock.ExpectQuery("SELECT expires_at").
			WithArgs("unknown-token").
			WillReturnError(pgx.ErrNoRows)

		revoked, err := b.IsBlacklisted(ctx, "unknown-token")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("store failure surfaces as an error", func(t *testing.T) {
		mock.ExpectQuery("SELECT expires_at").
			WithArgs("some-token").
			WillReturnError(fmt.Errorf("connection refused"))

		revoked, err := b.IsBlacklisted(ctx, "some-token")
		assert.ErrorIs(t, err, autherror.ErrBlacklistUnavailable)
		assert.False(t, revoked)
	})
}

// TestBlacklistSweepExpired covers the periodic reclamation path.
func TestBlacklistSweepExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	b := repo.NewPostgresBlacklist(mock)
	ctx := context.Background()

	t.Run("reports how many entries were removed", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM token_blacklist").
			WillReturnResult(pgxmock.NewResult("DELETE", 3))

		deleted, err := b.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM token_blacklist").
			WillReturnError(fmt.Errorf("connection refused"))

		_, err := b.SweepExpired(ctx)
		assert.Error(t, err)
	})
}
