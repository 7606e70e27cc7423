package httpapi

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/entries"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/logintokens"
)

// memRepoManager keeps everything in maps and ignores the DBTX it is given.
type memRepoManager struct {
	mu      sync.Mutex
	tokens  map[string]*models.LoginToken
	entries []models.Entry
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{tokens: map[string]*models.LoginToken{}}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) LoginTokens(dbx.DBTX) logintokens.Repository { return memTokens{m} }

func (m *memRepoManager) Entries(dbx.DBTX) entries.Repository { return memEntries{m} }

func (m *memRepoManager) entryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type memTokens struct{ m *memRepoManager }

func (r memTokens) Create(_ context.Context, userID, tokenHash string, validity time.Duration) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[tokenHash] = &models.LoginToken{TokenHash: tokenHash, UserID: userID, Expires: time.Now().Add(validity)}
	return nil
}

func (r memTokens) Find(_ context.Context, tokenHash string) (*models.LoginToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[tokenHash]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTokens) MarkUsed(_ context.Context, tokenHash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[tokenHash]
	if !ok || t.UsedAt != nil {
		return common.ErrTokenAlreadyUsed
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}

func (r memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, t := range r.m.tokens {
		if t.Expired(now) {
			delete(r.m.tokens, k)
			n++
		}
	}
	return n, nil
}

type memEntries struct{ m *memRepoManager }

func (r memEntries) Create(_ context.Context, e *models.Entry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e.CreatedAt = time.Now()
	r.m.entries = append(r.m.entries, *e)
	return nil
}

func (r memEntries) SetArchiveKey(_ context.Context, id, key string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.entries {
		if r.m.entries[i].ID == id {
			r.m.entries[i].ArchiveKey = key
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memEntries) ListByUser(_ context.Context, userID string, limit int) ([]models.Entry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []models.Entry
	for _, e := range r.m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
