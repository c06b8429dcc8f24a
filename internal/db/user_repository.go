package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/prudhivi99/storefront/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(database *PostgresDB) *UserRepository {
	return &UserRepository{db: database.Conn}
}

// GetByUsername returns nil when no such user exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := "SELECT id, username, password_hash, created_at FROM users WHERE username = $1"

	var u models.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// Create inserts a user with an already-hashed password.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at
	`

	var u models.User
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}
