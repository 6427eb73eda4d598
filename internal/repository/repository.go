package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository owns the interviews table. Every operation is a single SQL
// statement (or a short fixed sequence ending in one), so the store's
// per-statement atomicity is all the concurrency control needed.
type Repository struct {
	db  *pgxpool.Pool
	loc *time.Location
	now func() time.Time
}

func NewRepository(db *pgxpool.Pool, loc *time.Location) *Repository {
	return &Repository{
		db:  db,
		loc: loc,
		now: time.Now,
	}
}
