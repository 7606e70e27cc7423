// Package entries declares the repository contract for knowledge base
// entries and its PostgreSQL implementation.
package entries

import (
	"context"

	"github.com/dmitrijs2005/kbclip/internal/server/models"
)

type Repository interface {
	// Create inserts e and fills in its CreatedAt.
	Create(ctx context.Context, e *models.Entry) error
	// SetArchiveKey records where the archived copy of entry id was stored.
	SetArchiveKey(ctx context.Context, id string, key string) error
	// ListByUser returns the newest entries of userID, at most limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Entry, error)
}
