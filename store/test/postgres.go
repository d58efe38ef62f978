package test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "testuser"
	testPassword = "testpassword"

	postgresImage = "postgres:16-alpine"
	mongoImage    = "mongo:7"
)

// GetPostgresDSN returns a DSN for PostgreSQL testing.
// It uses testcontainers to create a fresh PostgreSQL instance for each test.
func GetPostgresDSN(t *testing.T) string {
	t.Helper()
	// Check if a custom DSN is provided via environment variable
	if dsn := os.Getenv("POSTGRES_TEST_DSN"); dsn != "" {
		return dsn
	}

	pgContainer, err := postgres.Run(context.Background(),
		postgresImage,
		postgres.WithDatabase("chatrelay_test"),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	// t.Context is already canceled when cleanups run.
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return connStr
}

// GetMongoURL returns a connection URL for MongoDB testing.
// It uses testcontainers unless MONGODB_TEST_URL points to a running instance.
func GetMongoURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("MONGODB_TEST_URL"); url != "" {
		return url
	}

	mongoContainer, err := mongodb.Run(context.Background(), mongoImage)
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	url, err := mongoContainer.ConnectionString(context.Background())
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return url
}
