// Package repomanager vends repository implementations bound to a DBTX,
// so services can run the same queries on a bare connection or inside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pokedex/internal/dbx"
	"github.com/dmitrijs2005/pokedex/internal/server/repositories/records"
	"github.com/dmitrijs2005/pokedex/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Records(db dbx.DBTX) records.Repository
	Users(db dbx.DBTX) users.Repository
}
