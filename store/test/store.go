package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hrygo/chatrelay/internal/profile"
	"github.com/hrygo/chatrelay/store"
	"github.com/hrygo/chatrelay/store/db"
)

// NewTestingStore creates a migrated store for the driver named by the DRIVER
// environment variable (sqlite by default). The store is closed on cleanup.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()
	st, _ := newTestingStore(ctx, t, getUnitTestDriver())
	return st
}

func newTestingStore(ctx context.Context, t *testing.T, driver string) (*store.Store, *profile.Profile) {
	t.Helper()
	profile := getTestingProfile(t, driver)
	dbDriver, err := db.NewDBDriver(profile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	st := store.New(dbDriver, profile)
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("failed to close store: %v", err)
		}
	})
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return st, profile
}

func getTestingProfile(t *testing.T, driver string) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		Mode:    "dev",
		Driver:  driver,
		Version: "test",
	}

	switch driver {
	case profile.DriverSQLite:
		dir := t.TempDir()
		p.Data = dir
		p.DSN = filepath.Join(dir, "chatrelay_test.db")
	case profile.DriverPostgres:
		p.DSN = GetPostgresDSN(t)
	case profile.DriverMongo:
		p.DSN = GetMongoURL(t)
		// A fresh database per test keeps "latest conversation" lookups isolated.
		p.Database = "chatrelay_test_" + shortuuid.New()
		t.Cleanup(func() { dropMongoDatabase(t, p.DSN, p.Database) })
	default:
		t.Fatalf("unknown test driver %q", driver)
	}
	return p
}

// dropMongoDatabase removes a per-test database. It runs before the container
// is terminated and matters when MONGODB_TEST_URL points to a shared server.
func dropMongoDatabase(t *testing.T, url, database string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		t.Logf("failed to connect to mongo for cleanup: %v", err)
		return
	}
	defer func() { _ = client.Disconnect(ctx) }()

	if err := client.Database(database).Drop(ctx); err != nil {
		t.Logf("failed to drop database %s: %v", database, err)
	}
}

func getUnitTestDriver() string {
	driver := os.Getenv("DRIVER")
	if driver == "" {
		return profile.DriverSQLite
	}
	return driver
}
