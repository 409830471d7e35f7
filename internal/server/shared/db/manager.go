package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Notes() notes.Repository
}
