package store

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sellers/*.sql migrations/buyers/*.sql
var migrations embed.FS

// Migrate runs all pending migrations on both databases.
func (s *Store) Migrate() error {
	if err := migrate(s.sellers, "migrations/sellers"); err != nil {
		return fmt.Errorf("failed to migrate sellers database: %w", err)
	}
	if err := migrate(s.buyers, "migrations/buyers"); err != nil {
		return fmt.Errorf("failed to migrate buyers database: %w", err)
	}
	return nil
}

func migrate(db *sql.DB, dir string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
