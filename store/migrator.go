package store

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"github.com/pkg/errors"
)

// Schema bootstrap overview:
//
// SQL drivers (postgres, sqlite) are initialized from
// store/migration/{driver}/LATEST.sql when the conversation table is missing.
// Existing databases are left untouched.
//
// Document drivers (mongo) create their collections lazily and only need
// their indexes ensured, which is idempotent and runs on every start.

//go:embed migration
var migrationFS embed.FS

const (
	// LatestSchemaFileName is the name of the latest schema file.
	LatestSchemaFileName = "LATEST.sql"
)

// Migrate prepares the underlying database for use.
func (s *Store) Migrate(ctx context.Context) error {
	switch driver := s.driver.(type) {
	case IndexDriver:
		if err := driver.EnsureIndexes(ctx); err != nil {
			return errors.Wrap(err, "failed to ensure indexes")
		}
		slog.Info("document store indexes ensured", slog.String("driver", s.profile.Driver))
		return nil
	case SQLDriver:
		return s.preMigrate(ctx, driver)
	default:
		return errors.Errorf("driver %T does not support migration", s.driver)
	}
}

// preMigrate checks if the database is initialized and applies the latest schema if not.
func (s *Store) preMigrate(ctx context.Context, driver SQLDriver) error {
	initialized, err := driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}
	if initialized {
		return nil
	}

	filePath := s.getMigrationBasePath() + LatestSchemaFileName
	bytes, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Errorf("failed to read latest schema file: %s", err)
	}
	// Start a transaction to apply the latest schema.
	tx, err := driver.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()
	slog.Info("initializing new database with latest schema", slog.String("file", filePath))
	if err := s.execute(ctx, tx, string(bytes)); err != nil {
		return errors.Errorf("failed to execute SQL file %s, err %s", filePath, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	slog.Info("database initialized successfully", slog.String("driver", s.profile.Driver))
	return nil
}

func (s *Store) getMigrationBasePath() string {
	return "migration/" + s.profile.Driver + "/"
}

// execute runs a SQL statement within a transaction.
func (*Store) execute(ctx context.Context, tx *sql.Tx, stmt string) error {
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}
