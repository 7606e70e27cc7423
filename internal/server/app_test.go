package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/dmitrijs2005/kbclip/internal/server/config"

	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/logging"
	"github.com/dmitrijs2005/kbclip/internal/server/archive"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/entries"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/logintokens"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/repomanager"
)

type fakeTokensRepo struct {
	created map[string]string
	purged  chan struct{}
}

func (f *fakeTokensRepo) Create(_ context.Context, userID, hash string, _ time.Duration) error {
	f.created[hash] = userID
	return nil
}
func (f *fakeTokensRepo) Find(context.Context, string) (*models.LoginToken, error) { return nil, nil }
func (f *fakeTokensRepo) MarkUsed(context.Context, string) error { return nil }
func (f *fakeTokensRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	select {
	case f.purged <- struct{}{}:
	default:
	}
	return 1, nil
}

type fakeRepoManager struct {
	migrateErr error
	tokens     *fakeTokensRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return m.migrateErr }
func (m *fakeRepoManager) LoginTokens(dbx.DBTX) logintokens.Repository { return m.tokens }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository { return nil }

type nopArchiver struct{}

func (nopArchiver) Archive(context.Context, *models.Entry) (string, error) { return "k", nil }

func withSeams(t *testing.T, rm *fakeRepoManager, dbErr error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	oldOpen, oldRM, oldArch := openDB, newRepoManager, newArchiver
	t.Cleanup(func() { openDB, newRepoManager, newArchiver = oldOpen, oldRM, oldArch })

	openDB = func(context.Context, string) (*sql.DB, error) {
		if dbErr != nil {
			return nil, dbErr
		}
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return rm }
	return mock
}

func testConfig() *sc.Config {
	c := &sc.Config{}
	c.LoadDefaults()
	c.ListenAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_DBError(t *testing.T) {
	withSeams(t, &fakeRepoManager{}, errors.New("no db"))
	_, err := NewApp(context.Background(), testConfig(), logging.NewDiscardLogger())
	require.ErrorContains(t, err, "db init error")
}

func TestNewApp_MigrationError(t *testing.T) {
	mock := withSeams(t, &fakeRepoManager{migrateErr: errors.New("bad sql")}, nil)
	mock.ExpectClose()

	_, err := NewApp(context.Background(), testConfig(), logging.NewDiscardLogger())
	require.ErrorContains(t, err, "migration error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_ArchiveSeam(t *testing.T) {
	withSeams(t, &fakeRepoManager{}, nil)

	called := false
	newArchiver = func(context.Context, *sc.Config) (archive.Archiver, error) {
		called = true
		return nopArchiver{}, nil
	}

	cfg := testConfig()
	_, err := NewApp(context.Background(), cfg, logging.NewDiscardLogger())
	require.NoError(t, err)
	assert.False(t, called)

	cfg.ArchiveEnabled = true
	_, err = NewApp(context.Background(), cfg, logging.NewDiscardLogger())
	require.NoError(t, err)
	assert.True(t, called)
}

func TestNewApp_ArchiveError(t *testing.T) {
	mock := withSeams(t, &fakeRepoManager{}, nil)
	mock.ExpectClose()
	newArchiver = func(context.Context, *sc.Config) (archive.Archiver, error) {
		return nil, errors.New("no s3")
	}

	cfg := testConfig()
	cfg.ArchiveEnabled = true
	_, err := NewApp(context.Background(), cfg, logging.NewDiscardLogger())
	require.ErrorContains(t, err, "archive init error")
}

func TestApp_IssueToken(t *testing.T) {
	repo := &fakeTokensRepo{created: map[string]string{}}
	withSeams(t, &fakeRepoManager{tokens: repo}, nil)

	app, err := NewApp(context.Background(), testConfig(), logging.NewDiscardLogger())
	require.NoError(t, err)

	tok, err := app.IssueToken(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	require.Len(t, repo.created, 1)
	for hash, user := range repo.created {
		assert.NotEqual(t, tok, hash)
		assert.Equal(t, "alice", user)
	}
}

func TestApp_RunPurgesAndStops(t *testing.T) {
	repo := &fakeTokensRepo{created: map[string]string{}, purged: make(chan struct{}, 1)}
	withSeams(t, &fakeRepoManager{tokens: repo}, nil)

	cfg := testConfig()
	cfg.LoginTokenValidityDuration = 10 * time.Millisecond
	app, err := NewApp(context.Background(), cfg, logging.NewDiscardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	select {
	case <-repo.purged:
	case <-time.After(5 * time.Second):
		t.Fatal("expired tokens were not purged")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
