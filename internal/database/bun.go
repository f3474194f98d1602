package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// NewBunDB creates a new Bun DB instance from an existing sql.DB connection
func NewBunDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, pgdialect.New())
}

// InitSchema creates the tables the service depends on if they do not exist.
// Unique indexes on users (email, phone) and revoked_tokens (token) are part
// of the model definitions; they provide the atomicity for check-then-insert
// races.
func InitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*RevokedToken)(nil),
		(*Cafeteria)(nil),
		(*Item)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	return nil
}
