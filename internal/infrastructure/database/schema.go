package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// schemaStatements create the library tables.
// books_authors has no ON DELETE CASCADE; services remove link rows before the owning row.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(255),
		last_name  VARCHAR(255),
		birthdate  DATE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id                  BIGSERIAL PRIMARY KEY,
		title               VARCHAR(255),
		publication_date    DATE,
		online_availability BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS books_authors (
		book_id   BIGINT NOT NULL REFERENCES books (id),
		author_id BIGINT NOT NULL REFERENCES authors (id),
		PRIMARY KEY (book_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_authors_author_id ON books_authors (author_id)`,
}

// EnsureSchema creates missing tables. Existing tables are left untouched.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("[DATABASE] Schema ensured")
	return nil
}
