package db

import (
	"testing"

	"github.com/budget-tracker/backend/config"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver: DriverSQLite,
		URL:    ":memory:",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		t.Fatalf("expected migration to succeed, got %v", err)
	}

	for _, table := range []string{"users", "refresh_tokens", "categories", "transactions", "budgets", "email_queue"} {
		if !database.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	if !database.HealthCheck() {
		t.Error("expected health check to pass")
	}
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "mysql", URL: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("expected embedded migrations, got %v", err)
	}
	if len(entries)%2 != 0 {
		t.Errorf("expected up/down pairs, got %d files", len(entries))
	}
}
