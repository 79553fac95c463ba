package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	autherror "github.com/studymodules/auth-service/internal/errors"
)

// PostgresBlacklist stores revoked tokens in the token_blacklist table, keyed
// by the token string with the token's own expiry.
type PostgresBlacklist struct {
	db PgxIface
}

func NewPostgresBlacklist(db PgxIface) *PostgresBlacklist {
	return &PostgresBlacklist{db: db}
}

func (b *PostgresBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO token_blacklist (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token)
		DO UPDATE SET expires_at = EXCLUDED.expires_at
	`, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (b *PostgresBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	row := b.db.QueryRow(ctx, `
		SELECT expires_at
		FROM token_blacklist
		WHERE token = $1
		LIMIT 1;
	`, token)

	var expiresAt time.Time
	err := row.Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		// Lookup failures must surface as errors so the caller denies access.
		return false, fmt.Errorf("%w: %v", autherror.ErrBlacklistUnavailable, err)
	}

	if !expiresAt.After(time.Now()) {
		// The token this entry blocks is already dead; reclaim the entry.
		if _, err := b.db.Exec(ctx, `DELETE FROM token_blacklist WHERE token = $1`, token); err != nil {
			log.Printf("warn: failed to delete expired blacklist entry: %v", err)
		}
		return false, nil
	}

	return true, nil
}

func (b *PostgresBlacklist) SweepExpired(ctx context.Context) (int64, error) {
	tag, err := b.db.Exec(ctx, `DELETE FROM token_blacklist WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep token blacklist: %w", err)
	}

	return tag.RowsAffected(), nil
}
