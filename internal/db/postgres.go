package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/prudhivi99/storefront/internal/config"
)

type PostgresDB struct {
	Conn *sql.DB
}

func NewPostgresDB(cfg config.DatabaseConfig) (*PostgresDB, error) {
	conn, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
	return &PostgresDB{Conn: conn}, nil
}

// Migrate creates the schema when it does not exist yet.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if _, err := db.Conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping reports connectivity, used by the health endpoint.
func (db *PostgresDB) Ping() error {
	return db.Conn.Ping()
}

func (db *PostgresDB) Close() error {
	return db.Conn.Close()
}
