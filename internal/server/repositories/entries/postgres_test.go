package entries

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kbclip/internal/common"
	"github.com/dmitrijs2005/kbclip/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+knowledge_base\s+\(id,\s*user_id,\s*url,\s*title,\s*content\)\s+VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s+RETURNING\s+created_at\s*$`
	archQ   = `(?s)^UPDATE\s+knowledge_base\s+SET\s+archive_key\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1\s*$`
	listQ   = `(?s)^SELECT\s+id,\s*user_id,\s*url,\s*title,\s*content,\s*archive_key,\s*created_at\s+FROM\s+knowledge_base\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+\$2\s*$`
)

func TestCreate(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	created := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(insertQ).
		WithArgs("id-1", "u1", "https://example.com", "Example", "Simulated page content for: Example").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	e := &models.Entry{ID: "id-1", UserID: "u1", URL: "https://example.com", Title: "Example", Content: "Simulated page content for: Example"}
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, created, e.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Entry{ID: "id-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error performing sql request: db down")
}

func TestSetArchiveKey(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(archQ).WithArgs("id-1", "kb/u1/id-1.json").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetArchiveKey(context.Background(), "id-1", "kb/u1/id-1.json"))

	mock.ExpectExec(archQ).WithArgs("nope", "k").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetArchiveKey(context.Background(), "nope", "k"), common.ErrorNotFound)

	mock.ExpectExec(archQ).WithArgs("id-2", "k").WillReturnError(errors.New("boom"))
	assert.EqualError(t, repo.SetArchiveKey(context.Background(), "id-2", "k"), "db error: boom")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	t1 := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "url", "title", "content", "archive_key", "created_at"}).
		AddRow("id-2", "u1", "https://b", "B", "cb", "", t1).
		AddRow("id-1", "u1", "https://a", "A", "ca", "kb/u1/id-1.json", t0)
	mock.ExpectQuery(listQ).WithArgs("u1", 10).WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Entry{
		{ID: "id-2", UserID: "u1", URL: "https://b", Title: "B", Content: "cb", CreatedAt: t1},
		{ID: "id-1", UserID: "u1", URL: "https://a", Title: "A", Content: "ca", ArchiveKey: "kb/u1/id-1.json", CreatedAt: t0},
	}, got)
}

func TestListByUser_Errors(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WithArgs("u1", 5).WillReturnError(errors.New("boom"))
	_, err := repo.ListByUser(context.Background(), "u1", 5)
	assert.EqualError(t, err, "db error: boom")

	rows := sqlmock.NewRows([]string{"id", "user_id", "url", "title", "content", "archive_key", "created_at"}).
		AddRow("id-1", "u1", "u", "t", "c", "", time.Now()).
		RowError(0, errors.New("row broken"))
	mock.ExpectQuery(listQ).WithArgs("u1", 5).WillReturnRows(rows)
	_, err = repo.ListByUser(context.Background(), "u1", 5)
	require.Error(t, err)
}
