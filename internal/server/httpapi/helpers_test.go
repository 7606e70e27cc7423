package httpapi

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server/config"
	"github.com/dmitrijs2005/kbclip/internal/server/services"
)

const testSecret = "test-secret"

type backend struct {
	repos   *memRepoManager
	tokens  *services.TokenService
	entries *services.EntryService
	server  *HTTPServer
	http    *httptest.Server
}

// newBackend wires the real services over in-memory repositories. The SQLite
// database only provides transactions; no tables are used.
func newBackend(t *testing.T) *backend {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:                  testSecret,
		SessionValidityDuration:    time.Hour,
		LoginTokenValidityDuration: 15 * time.Minute,
	}
	repos := newMemRepoManager()
	logger := logging.NewDiscardLogger()

	b := &backend{
		repos:   repos,
		tokens:  services.NewTokenService(db, repos, cfg),
		entries: services.NewEntryService(db, repos, nil, logger),
	}
	b.server = NewHTTPServer("127.0.0.1:0", logger, b.tokens, b.entries)
	b.http = httptest.NewServer(b.server.Handler())
	t.Cleanup(b.http.Close)
	return b
}

func (b *backend) issue(t *testing.T, userID string) string {
	t.Helper()
	tok, err := b.tokens.Issue(context.Background(), userID)
	require.NoError(t, err)
	return tok
}
