package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/chatrelay/internal/profile"
	"github.com/hrygo/chatrelay/store"
	"github.com/hrygo/chatrelay/store/db/mongo"
	"github.com/hrygo/chatrelay/store/db/postgres"
	"github.com/hrygo/chatrelay/store/db/sqlite"
)

// ============================================================================
// DATABASE SUPPORT POLICY
// ============================================================================
// MongoDB: the production document store, compatible with the collections
// ("usuarios", "conversas") of the original deployment.
// PostgreSQL: supported for deployments that already run Postgres.
// SQLite: development and tests only.
// ============================================================================

// NewDBDriver creates new db driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "mongo":
		driver, err = mongo.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver: %s", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
