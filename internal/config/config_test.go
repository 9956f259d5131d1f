package config

import (
	"os"
	"testing"
	"time"
)

// unsetenv снимает переменные на время теста; t.Setenv восстановит их после.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDBConfig_Defaults(t *testing.T) {
	unsetenv(t, "DB_DRIVER", "DB_HOST", "DB_PORT")

	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Driver != DriverPostgres || cfg.Host != "postgres" || cfg.Port != 5432 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadDBConfig_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/booking.db")

	cfg, err := LoadDBConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Driver != DriverSQLite || cfg.SQLitePath != "/tmp/booking.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDBConfig_UnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := LoadDBConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	unsetenv(t, "JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_App(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SCHEDULE_TIMEZONE", "Europe/Moscow")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("AVAILABILITY_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loc, err := cfg.App.Location()
	if err != nil || loc.String() != "Europe/Moscow" {
		t.Fatalf("unexpected location %v err=%v", loc, err)
	}
	if len(cfg.App.CORSOrigins) != 2 || cfg.App.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SCHEDULE_TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid time zone")
	}
}
