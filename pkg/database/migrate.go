package database

import (
	"errors"
	"fmt"
	"net/url"

	"review-hub/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations from sourcePath
// (e.g. "file://migrations"). A database that is already up to date is
// not an error.
func RunMigrations(config utils.DatabaseConfig, sourcePath string) error {
	u := &url.URL{
		Scheme: "pgx5",
		Host:   fmt.Sprintf("%s:%s", config.Host, config.Port),
		User:   url.UserPassword(config.User, config.Password),
		Path:   config.Name,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()

	m, err := migrate.New(sourcePath, u.String())
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
