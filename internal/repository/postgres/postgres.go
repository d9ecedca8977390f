package postgres

import (
	"database/sql"

	"cyclerent-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles the Postgres-backed repositories behind one handle.
type Store struct {
	db        *sql.DB
	Contracts repository.ContractRepository
	Catalog   repository.CatalogRepository
	Operators repository.OperatorRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		Contracts: NewContractRepository(db),
		Catalog:   NewCatalogRepository(db),
		Operators: NewOperatorRepository(db),
	}
}
