// Package repomanager vends repository implementations bound to a pool or
// a transaction, plus the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kbclip/internal/dbx"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/entries"
	"github.com/dmitrijs2005/kbclip/internal/server/repositories/logintokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	LoginTokens(db dbx.DBTX) logintokens.Repository
	Entries(db dbx.DBTX) entries.Repository
}
