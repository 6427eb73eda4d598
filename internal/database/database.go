package database

import (
	"context"
	"fmt"

	"github.com/WST-T/pweaseHiredMe/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dbCfg config.DBConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbCfg.DSN)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = dbCfg.MaxConns
	cfg.MaxConnLifetime = dbCfg.MaxConnLife
	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the interviews table on first start and upgrades older
// deployments that predate the interview_time column. Existing rows are never
// touched; the added column stays null for them.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS interviews (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id BIGINT NOT NULL,
	user_name TEXT NOT NULL,
	interview_date TEXT NOT NULL,
	interview_time TEXT,
	interview_type TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("create interviews table: %w", err)
	}

	// No-op on fresh databases; upgrades tables created before the time
	// column existed.
	const addTimeColumn = `ALTER TABLE interviews ADD COLUMN IF NOT EXISTS interview_time TEXT`
	if _, err := pool.Exec(ctx, addTimeColumn); err != nil {
		return fmt.Errorf("add interview_time column: %w", err)
	}

	return nil
}
