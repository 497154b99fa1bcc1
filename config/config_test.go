package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.RateLimit.LoginAttempts != 5 {
		t.Errorf("expected 5 login attempts, got %d", cfg.RateLimit.LoginAttempts)
	}
	if cfg.RateLimit.LoginWindow != time.Minute {
		t.Errorf("expected 1m window, got %s", cfg.RateLimit.LoginWindow)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_MIGRATE", "false")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Migrate {
		t.Error("expected migrations to be disabled")
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis to be enabled")
	}
	if cfg.JWT.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("expected 30m expiry, got %s", cfg.JWT.AccessTokenExpiry)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("DB_MIGRATE", "maybe")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
	if !cfg.Database.Migrate {
		t.Error("expected fallback to migrate=true")
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected fallback 15s, got %s", cfg.Server.ReadTimeout)
	}
}
