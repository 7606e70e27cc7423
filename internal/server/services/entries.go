package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server/archive"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/repomanager"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// NewEntry is a capture submitted by a client.
type NewEntry struct {
	URL     string
	Title   string
	Content string
	UserID  string
}

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	archiver    archive.Archiver
	logger      logging.Logger
}

// NewEntryService builds the service. archiver may be nil, which disables archiving.
func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, archiver archive.Archiver, logger logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		archiver:    archiver,
		logger:      logger.With("module", "entry_service"),
	}
}

// Add stores in on behalf of callerID. The entry must belong to the caller.
// Archive failures are logged and do not fail the request.
func (s *EntryService) Add(ctx context.Context, callerID string, in NewEntry) (*models.Entry, error) {
	if in.UserID != callerID {
		return nil, common.ErrForbidden
	}
	if strings.TrimSpace(in.URL) == "" {
		return nil, fmt.Errorf("%w: url is required", common.ErrValidation)
	}

	e := &models.Entry{
		ID:      uuid.NewString(),
		UserID:  in.UserID,
		URL:     in.URL,
		Title:   in.Title,
		Content: in.Content,
	}

	repo := s.repomanager.Entries(s.db)
	if err := repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, e)
		if err != nil {
			s.logger.Warn(ctx, "entry archive failed", "entry_id", e.ID, "error", err)
			return e, nil
		}
		if err := repo.SetArchiveKey(ctx, e.ID, key); err != nil {
			s.logger.Warn(ctx, "entry archive key not saved", "entry_id", e.ID, "error", err)
			return e, nil
		}
		e.ArchiveKey = key
	}

	return e, nil
}

// List returns the newest entries of userID. limit is clamped to
// [1, MaxListLimit]; zero or less means DefaultListLimit.
func (s *EntryService) List(ctx context.Context, userID string, limit int) ([]models.Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	out, err := s.repomanager.Entries(s.db).ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return out, nil
}
