package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kbclip/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/logging"
)

// MetadataStore keeps the session in the client's SQLite metadata table.
// A nil *sql.DB stands for a host without persistent storage.
type MetadataStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewMetadataStore(db *sql.DB, logger logging.Logger) *MetadataStore {
	return &MetadataStore{db: db, logger: logger.With("module", "session_store")}
}

// Load reads the record and classifies it: a valid Session, or one of
// ErrSessionAbsent, ErrStorageInconsistent, ErrStorageUnavailable.
func (s *MetadataStore) Load(ctx context.Context) (Session, error) {
	if s.db == nil {
		return Session{}, ErrStorageUnavailable
	}

	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, KeyCredential, KeyUserID)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return classify(string(values[KeyCredential]), string(values[KeyUserID]))
}

func (s *MetadataStore) Read(ctx context.Context) (Session, bool) {
	sess, err := s.Load(ctx)
	if err == nil {
		return sess, true
	}
	if !errors.Is(err, ErrSessionAbsent) {
		s.logger.Warn(ctx, "session treated as absent", "error", err)
	}
	return Session{}, false
}

func (s *MetadataStore) Write(ctx context.Context, sess Session) error {
	if !sess.Valid() {
		return fmt.Errorf("%w: session requires both credential and user id", common.ErrValidation)
	}
	if s.db == nil {
		return ErrStorageUnavailable
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyCredential, []byte(sess.Credential)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserID, []byte(sess.UserID))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info(ctx, "session stored", "user_id", sess.UserID)
	return nil
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	if s.db == nil {
		return ErrStorageUnavailable
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, KeyCredential, KeyUserID)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info(ctx, "session removed")
	return nil
}
