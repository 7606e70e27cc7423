package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/entries"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/logintokens"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeLoginTokensRepo struct {
	tokens map[string]*models.LoginToken

	createErr  error
	findErr    error
	markErr    error
	deleteErr  error
	deleted    int64
	deleteTime time.Time
}

func newFakeLoginTokensRepo() *fakeLoginTokensRepo {
	return &fakeLoginTokensRepo{tokens: map[string]*models.LoginToken{}}
}

func (f *fakeLoginTokensRepo) Create(_ context.Context, userID, tokenHash string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[tokenHash] = &models.LoginToken{TokenHash: tokenHash, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeLoginTokensRepo) Find(_ context.Context, tokenHash string) (*models.LoginToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeLoginTokensRepo) MarkUsed(_ context.Context, tokenHash string) error {
	if f.markErr != nil {
		return f.markErr
	}
	t, ok := f.tokens[tokenHash]
	if !ok || t.UsedAt != nil {
		return common.ErrTokenAlreadyUsed
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}

func (f *fakeLoginTokensRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.deleteTime = now
	return f.deleted, f.deleteErr
}

type fakeEntriesRepo struct {
	created []*models.Entry
	keys    map[string]string

	createErr error
	setKeyErr error
	listOut   []models.Entry
	listErr   error
	listLimit int
}

func (f *fakeEntriesRepo) Create(_ context.Context, e *models.Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.CreatedAt = time.Now()
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEntriesRepo) SetArchiveKey(_ context.Context, id, key string) error {
	if f.setKeyErr != nil {
		return f.setKeyErr
	}
	if f.keys == nil {
		f.keys = map[string]string{}
	}
	f.keys[id] = key
	return nil
}

func (f *fakeEntriesRepo) ListByUser(_ context.Context, _ string, limit int) ([]models.Entry, error) {
	f.listLimit = limit
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	tokens  *fakeLoginTokensRepo
	entries *fakeEntriesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) LoginTokens(dbx.DBTX) logintokens.Repository { return m.tokens }

func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository { return m.entries }
