package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations. The database URL must use
// the pgx5 scheme understood by golang-migrate, which MigrateURL produces
// from a standard postgres URL.
func Migrate(databaseURL string) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, MigrateURL(databaseURL))
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// MigrateURL rewrites a postgres:// URL to the pgx5:// scheme golang-migrate
// routes to its pgx/v5 driver. URLs already using another scheme pass through.
func MigrateURL(databaseURL string) string {
	const postgres = "postgres://"
	const postgresql = "postgresql://"

	switch {
	case len(databaseURL) >= len(postgres) && databaseURL[:len(postgres)] == postgres:
		return "pgx5://" + databaseURL[len(postgres):]
	case len(databaseURL) >= len(postgresql) && databaseURL[:len(postgresql)] == postgresql:
		return "pgx5://" + databaseURL[len(postgresql):]
	}
	return databaseURL
}
