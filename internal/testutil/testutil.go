package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/division-gg/division-api/internal/migrate"
	"github.com/redis/go-redis/v9"
)

// TestingTB is an interface that covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// TestDBConfig holds configuration for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig returns default test database configuration.
// Defaults to port 55432 (local test DB from docker-compose test profile).
// CI/CD environments should set TEST_DB_PORT=5432 explicitly.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "division"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "division"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "division"),
	}
}

func (c TestDBConfig) dsn() string {
	hostPort := net.JoinHostPort(c.Host, c.Port)
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		c.User, c.Password, hostPort, c.DBName)
}

// SetupTestDB creates a test database connection and runs migrations.
// Tests are skipped when no test database is reachable, unless
// TEST_REQUIRE_DB is set (CI), in which case they fail.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	cfg := DefaultTestDBConfig()
	db, err := sql.Open("pgx", cfg.dsn())
	if err != nil {
		skipOrFatal(t, requireDB(), "Test database not available:", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		skipOrFatal(t, requireDB(), "Test database not available:", pingErr)
		return nil
	}

	// Run production migrations so the test schema matches the application.
	if migrateErr := migrate.Run(ctx, db); migrateErr != nil {
		t.Fatal("Failed to run migrations:", migrateErr)
	}

	CleanupTestDB(t, db)
	return db
}

// CleanupTestDB removes all rows from application tables.
func CleanupTestDB(t TestingTB, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, table := range []string{"verifications", "captured_emails"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("Failed to clean up table %s: %v", table, err)
		}
	}
}

// TeardownTestDB cleans and closes the database connection.
func TeardownTestDB(t TestingTB, db *sql.DB) {
	t.Helper()
	if db != nil {
		CleanupTestDB(t, db)
		if err := db.Close(); err != nil {
			t.Fatal("Failed to close database:", err)
		}
	}
}

// SetupTestRedis creates a Redis client for testing against a dedicated DB
// index. Tests are skipped if Redis is not available, unless
// TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15, // keep test data away from any local dev instance
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		skipOrFatal(t, requireRedis(), fmt.Sprintf("Redis not available for testing at %s:", addr), err)
		return nil
	}

	client.FlushDB(ctx)
	return client
}

func skipOrFatal(t TestingTB, required bool, args ...interface{}) {
	t.Helper()
	if required {
		t.Fatal(args...)
	}
	t.Skip(args...)
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") }

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes"
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
