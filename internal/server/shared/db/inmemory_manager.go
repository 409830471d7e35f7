package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

// InMemoryRepositoryManager backs the repositories with process-local maps.
// Used by tests and database-less local runs.
type InMemoryRepositoryManager struct {
	notes notes.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Notes() notes.Repository {
	return m.notes
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{notes: notes.NewInMemoryRepository()}
}
