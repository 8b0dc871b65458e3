package config_test

import (
	"testing"
	"time"

	"github.com/deppfellow/hr-manager/internal/config"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HRMANAGER_DATABASE.USER", "hr")
	t.Setenv("HRMANAGER_DATABASE.NAME", "hr_manager")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("expected default database port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Observability.ServiceName != config.ServiceName {
		t.Fatalf("expected service name %q, got %q", config.ServiceName, cfg.Observability.ServiceName)
	}
	if cfg.Observability.Environment != cfg.Primary.Env {
		t.Fatalf("observability environment %q does not follow primary env %q", cfg.Observability.Environment, cfg.Primary.Env)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected CORS to allow every origin, got %v", cfg.Server.CORSAllowedOrigins)
	}
}

func TestLoadConfig_PrefixedOverrides(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("HRMANAGER_SERVER.PORT", "9090")
	t.Setenv("HRMANAGER_RATE_LIMIT.WINDOW", "30s")
	t.Setenv("HRMANAGER_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Fatalf("expected window 30s, got %s", cfg.RateLimit.Window)
	}
	if cfg.Observability.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Fatalf("expected slow query threshold 250ms, got %s", cfg.Observability.Logging.SlowQueryThreshold)
	}
}

func TestLoadConfig_LegacyVariables(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "3000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "roster")
	t.Setenv("DB_LOGIN", "legacy")
	t.Setenv("DB_PASSWORD", "p@ss:word")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got := cfg.Server.Addr(); got != "127.0.0.1:3000" {
		t.Fatalf("expected addr 127.0.0.1:3000, got %q", got)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Fatalf("unexpected database endpoint %s:%d", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.User != "legacy" || cfg.Database.Name != "roster" || cfg.Database.Password != "p@ss:word" {
		t.Fatalf("legacy database credentials not applied: %+v", cfg.Database)
	}
}

func TestLoadConfig_PrefixedWinsOverLegacy(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("APP_PORT", "3000")
	t.Setenv("HRMANAGER_SERVER.PORT", "4000")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Fatalf("expected HRMANAGER_SERVER.PORT to win, got %q", cfg.Server.Port)
	}
}

func TestLoadConfig_MissingDatabaseUser(t *testing.T) {
	t.Setenv("HRMANAGER_DATABASE.NAME", "hr_manager")

	if _, err := config.LoadConfig(); err == nil {
		t.Fatalf("expected an error when database.user is missing")
	}
}

func TestValidate_RejectsUnknownEnv(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.User = "hr"
	cfg.Database.Name = "hr_manager"
	cfg.Primary.Env = "qa"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject env %q", cfg.Primary.Env)
	}
}

func TestValidate_RedisAddressRequiredWhenEnabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.User = "hr"
	cfg.Database.Name = "hr_manager"
	cfg.Redis.Enabled = true
	cfg.Redis.Address = ""

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to require redis.address")
	}
}

func TestObservability_LogLevelAndChecks(t *testing.T) {
	obs := config.DefaultObservabilityConfig()

	obs.Logging.Level = ""
	obs.Environment = "production"
	if got := obs.GetLogLevel(); got != "info" {
		t.Fatalf("expected info in production, got %q", got)
	}
	obs.Environment = "local"
	if got := obs.GetLogLevel(); got != "debug" {
		t.Fatalf("expected debug in local, got %q", got)
	}

	if !obs.HasCheck("database") || !obs.HasCheck("redis") {
		t.Fatalf("expected default checks to include database and redis")
	}
	obs.HealthChecks.Enabled = false
	if obs.HasCheck("database") {
		t.Fatalf("disabled health checks must not report any check")
	}

	obs.Logging.Level = "verbose"
	if err := obs.Validate(); err == nil {
		t.Fatalf("expected invalid level to fail validation")
	}
}
