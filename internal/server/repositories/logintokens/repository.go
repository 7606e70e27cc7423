// Package logintokens declares the repository contract for one-time login
// tokens and its PostgreSQL implementation.
package logintokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/server/models"
)

// Repository stores one-time login tokens by their keyed hash.
type Repository interface {
	// Create stores a token hash for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// Find returns the token row for tokenHash, or common.ErrorNotFound.
	Find(ctx context.Context, tokenHash string) (*models.LoginToken, error)

	// MarkUsed sets used_at on an unused token. It returns
	// common.ErrTokenAlreadyUsed when no unused row matched.
	MarkUsed(ctx context.Context, tokenHash string) error

	// DeleteExpired removes tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
