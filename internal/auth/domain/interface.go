package domain

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/studymodules/auth-service/internal/auth/domain UserRepository,TokenBlacklist

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// TokenBlacklist records tokens that must no longer be honored. Entries carry
// the token's own expiry so a revocation never outlives the token it blocks.
type TokenBlacklist interface {
	// Add inserts or replaces an entry. Re-revoking a token is not an error.
	Add(ctx context.Context, token string, expiresAt time.Time) error
	// IsBlacklisted reports whether the token is currently revoked. An entry
	// whose expiry has passed is removed and reported as not revoked. A
	// transport failure is returned as an error, never as false.
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	// SweepExpired deletes all entries past their expiry and returns how many
	// were removed.
	SweepExpired(ctx context.Context) (int64, error)
}
